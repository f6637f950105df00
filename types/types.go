package types

const (
	// UInt64Length is the number of bytes taken by uint64.
	UInt64Length = 8

	// LinkLength is the number of bytes taken by the link word stored at the beginning of each node.
	LinkLength = UInt64Length
)

// NodeAddress represents the address of a node in the arena.
// Addresses are 1-based node indices, 0 means "no node".
type NodeAddress uint64

// Xor combines two node addresses into one link value.
func Xor(a, b NodeAddress) NodeAddress {
	return a ^ b
}

// Align rounds size up to the multiple of UInt64Length.
func Align(size uint64) uint64 {
	return (size + UInt64Length - 1) / UInt64Length * UInt64Length
}
