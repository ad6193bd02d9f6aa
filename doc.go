// Package rsa is a pure-Go RSA engine: key-pair generation, PKCS#1 v1.5
// encryption and decryption, and hash-based signatures whose byte layouts
// interoperate with other RSA implementations.
//
// Keys are immutable values; every operation is a plain function of a key and
// its input, so keys can be shared freely between goroutines.
//
// Basic usage:
//
//	pub, priv, err := rsa.NewKeys(ctx, 2048, rsa.WithPoolSize(4))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ciphertext, err := rsa.Encrypt([]byte("hello"), pub)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	plaintext, err := rsa.Decrypt(ciphertext, priv)
//
//	signature, err := rsa.Sign([]byte("hello"), priv, rsa.SHA256)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	hashName, err := rsa.Verify([]byte("hello"), signature, pub)
//
// Prime generation lives in package prime, the integer and byte codecs in
// package transform. Nothing is logged until the application calls
// logging.Init.
package rsa
