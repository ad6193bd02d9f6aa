package hashes

import (
	"hash"

	"github.com/cloudflare/circl/xof"
)

// xofHash adapts an extendable-output function to hash.Hash with a fixed
// output length.
type xofHash struct {
	x         xof.XOF
	size      int
	blockSize int
}

func newXOF(id xof.ID, size, blockSize int) func() hash.Hash {
	return func() hash.Hash {
		return &xofHash{x: id.New(), size: size, blockSize: blockSize}
	}
}

func (h *xofHash) Write(p []byte) (int, error) {
	return h.x.Write(p)
}

// Sum squeezes a clone so the running state can keep absorbing.
func (h *xofHash) Sum(b []byte) []byte {
	out := make([]byte, h.size)
	// Reading from a SHAKE state never fails.
	_, _ = h.x.Clone().Read(out)
	return append(b, out...)
}

func (h *xofHash) Reset() {
	h.x.Reset()
}

func (h *xofHash) Size() int {
	return h.size
}

func (h *xofHash) BlockSize() int {
	return h.blockSize
}
