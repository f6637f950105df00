package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestXor(t *testing.T) {
	requireT := require.New(t)

	requireT.Equal(NodeAddress(0), Xor(0, 0))
	requireT.Equal(NodeAddress(7), Xor(7, 0))
	requireT.Equal(NodeAddress(7), Xor(0, 7))

	link := Xor(3, 12)
	requireT.Equal(NodeAddress(12), Xor(link, 3))
	requireT.Equal(NodeAddress(3), Xor(link, 12))
}

func TestAlign(t *testing.T) {
	requireT := require.New(t)

	requireT.Equal(uint64(0), Align(0))
	requireT.Equal(uint64(8), Align(1))
	requireT.Equal(uint64(8), Align(8))
	requireT.Equal(uint64(16), Align(9))
	requireT.Equal(uint64(24), Align(17))
}
