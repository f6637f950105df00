package list

import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/outofforest/photon"
	"github.com/outofforest/xorlist/alloc"
	"github.com/outofforest/xorlist/types"
)

// NodeSize returns the size of the node storing item of the given size.
func NodeSize(itemSize uint64) uint64 {
	return types.LinkLength + itemSize
}

// NewNodeAssistant creates new list node assistant.
func NewNodeAssistant(state *alloc.State, itemSize uint64) (*NodeAssistant, error) {
	headerSize := uint64(unsafe.Sizeof(NodeHeader{}))
	if headerSize+itemSize > state.NodeSize() {
		return nil, errors.New("node size is too small")
	}

	return &NodeAssistant{
		state:    state,
		itemSize: itemSize,
	}, nil
}

// NodeAssistant converts nodes from bytes to list objects.
type NodeAssistant struct {
	state    *alloc.State
	itemSize uint64
}

// Allocate allocates new node. Link of the node is zeroed.
func (na *NodeAssistant) Allocate() (types.NodeAddress, error) {
	return na.state.Allocate()
}

// Deallocate returns node to the arena.
func (na *NodeAssistant) Deallocate(nodeAddress types.NodeAddress) {
	na.state.Deallocate(nodeAddress)
}

// Header projects node bytes to its header.
func (na *NodeAssistant) Header(nodeAddress types.NodeAddress) *NodeHeader {
	return photon.FromPointer[NodeHeader](na.state.Node(nodeAddress))
}

// SetLink overwrites the link of the node.
func (na *NodeAssistant) SetLink(nodeAddress, link types.NodeAddress) {
	na.Header(nodeAddress).Link = link
}

// Next decodes the neighbour of the node which is not the previous one.
// previous might be 0 to decode the only neighbour of the edge node.
func (na *NodeAssistant) Next(nodeAddress, previous types.NodeAddress) types.NodeAddress {
	return types.Xor(na.Header(nodeAddress).Link, previous)
}

// ReplaceNeighbour replaces oldNeighbour with newNeighbour in the link of the node.
func (na *NodeAssistant) ReplaceNeighbour(nodeAddress, oldNeighbour, newNeighbour types.NodeAddress) {
	header := na.Header(nodeAddress)
	header.Link = types.Xor(types.Xor(header.Link, oldNeighbour), newNeighbour)
}

// ItemPointer returns pointer to the item stored in the node.
func (na *NodeAssistant) ItemPointer(nodeAddress types.NodeAddress) unsafe.Pointer {
	return unsafe.Add(na.state.Node(nodeAddress), types.LinkLength)
}

// Item returns bytes of the item stored in the node.
func (na *NodeAssistant) Item(nodeAddress types.NodeAddress) []byte {
	return photon.SliceFromPointer[byte](na.ItemPointer(nodeAddress), int(na.itemSize))
}

// NodeHeader is the header of the list node.
type NodeHeader struct {
	// Link is the XOR of addresses of both neighbours.
	Link types.NodeAddress
}
