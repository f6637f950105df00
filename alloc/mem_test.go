package alloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/outofforest/xorlist/types"
)

func TestAllocate(t *testing.T) {
	const size = 1000

	requireT := require.New(t)

	p, deallocF, err := Allocate(size, false)
	requireT.NoError(err)
	t.Cleanup(deallocF)

	requireT.Zero(uintptr(p) % types.UInt64Length)

	b := unsafe.Slice((*byte)(p), size)
	for i := range size {
		requireT.Zero(b[i])
		b[i] = byte(i)
	}
	for i := range size {
		requireT.Equal(byte(i), b[i])
	}
}
