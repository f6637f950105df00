package list

import (
	"math"
	"unsafe"

	"github.com/cespare/xxhash"
	"github.com/pkg/errors"

	"github.com/outofforest/xorlist/alloc"
	"github.com/outofforest/xorlist/types"
)

// RecordSize is the size of the list record, reported as part of TotalSize.
const RecordSize = uint64(unsafe.Sizeof(record{}))

// MaxItemSize is the largest item size for which the aligned node size still fits in int.
const MaxItemSize = uint64(math.MaxInt - 2*types.LinkLength)

// Config stores list configuration.
type Config struct {
	// ItemSize is the size of each item, in bytes. It is fixed for the lifetime of the list.
	ItemSize uint64

	// NodesPerSegment is the number of nodes the arena maps at once.
	NodesPerSegment uint64

	// MaxNodes limits the number of elements the list may store. 0 means no limit.
	MaxNodes uint64

	UseHugePages bool

	// Cleanup, if set, is called for every item right before its node is released.
	Cleanup func(item []byte)
}

// Visitor is called for each item during traversal. Returning non-zero value stops the traversal.
type Visitor func(item []byte, data any) int

// New creates new empty list.
func New(config Config) (*List, error) {
	if config.ItemSize == 0 || config.ItemSize > MaxItemSize {
		return nil, errors.Wrapf(ErrInvalidItemSize, "item size %d", config.ItemSize)
	}

	state, err := alloc.NewState(alloc.Config{
		NodeSize:        types.Align(NodeSize(config.ItemSize)),
		NodesPerSegment: config.NodesPerSegment,
		MaxNodes:        config.MaxNodes,
		UseHugePages:    config.UseHugePages,
	})
	if err != nil {
		if errors.Is(err, alloc.ErrSegmentTooLarge) {
			return nil, errors.Wrapf(ErrInvalidItemSize, "item size %d: %s", config.ItemSize, err)
		}
		return nil, err
	}

	nodes, err := NewNodeAssistant(state, config.ItemSize)
	if err != nil {
		return nil, err
	}

	return &List{
		config: config,
		state:  state,
		nodes:  nodes,
		record: record{
			ItemSize: config.ItemSize,
		},
	}, nil
}

type record struct {
	Front    types.NodeAddress
	Back     types.NodeAddress
	ItemSize uint64
	Count    uint64
}

// List is the doubly-linked list storing both links of the node in one word.
type List struct {
	config Config
	state  *alloc.State
	nodes  *NodeAssistant
	record record
}

// Destroy releases all the items and the memory of the list. After that the list is no longer valid.
func (l *List) Destroy() error {
	if !l.IsValid() {
		return errors.WithStack(ErrInvalidHandle)
	}

	l.popAll()
	l.state.Close()
	l.state = nil
	l.nodes = nil

	return nil
}

// PushFront inserts new zeroed item at the front of the list and returns its bytes.
func (l *List) PushFront() ([]byte, error) {
	if !l.IsValid() {
		return nil, errors.WithStack(ErrInvalidHandle)
	}

	nodeAddress, err := l.pushEdge(&l.record.Front)
	if err != nil {
		return nil, err
	}
	return l.nodes.Item(nodeAddress), nil
}

// PushBack inserts new zeroed item at the back of the list and returns its bytes.
func (l *List) PushBack() ([]byte, error) {
	if !l.IsValid() {
		return nil, errors.WithStack(ErrInvalidHandle)
	}

	nodeAddress, err := l.pushEdge(&l.record.Back)
	if err != nil {
		return nil, err
	}
	return l.nodes.Item(nodeAddress), nil
}

// PushAt inserts new zeroed item so it is found at the index afterwards.
// Negative index counts from the back, -1 appends the item.
func (l *List) PushAt(index int) ([]byte, error) {
	if !l.IsValid() {
		return nil, errors.WithStack(ErrInvalidHandle)
	}

	count := l.Count()
	if index > count || index < -count-1 {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "insertion index %d, count %d", index, count)
	}
	if index < 0 {
		index += count + 1
	}

	var nodeAddress types.NodeAddress
	var err error
	switch index {
	case 0:
		nodeAddress, err = l.pushEdge(&l.record.Front)
	case count:
		nodeAddress, err = l.pushEdge(&l.record.Back)
	default:
		nodeAddress, err = l.insertBefore(l.locate(index))
	}
	if err != nil {
		return nil, err
	}
	return l.nodes.Item(nodeAddress), nil
}

// GetFront returns bytes of the first item.
func (l *List) GetFront() ([]byte, error) {
	if err := l.checkNotEmpty(); err != nil {
		return nil, err
	}
	return l.nodes.Item(l.record.Front), nil
}

// GetBack returns bytes of the last item.
func (l *List) GetBack() ([]byte, error) {
	if err := l.checkNotEmpty(); err != nil {
		return nil, err
	}
	return l.nodes.Item(l.record.Back), nil
}

// GetAt returns bytes of the item at the index. Negative index counts from the back, -1 is the last item.
func (l *List) GetAt(index int) ([]byte, error) {
	index, err := l.resolveIndex(index)
	if err != nil {
		return nil, err
	}

	switch index {
	case 0:
		return l.nodes.Item(l.record.Front), nil
	case l.Count() - 1:
		return l.nodes.Item(l.record.Back), nil
	default:
		_, nodeAddress := l.locate(index)
		return l.nodes.Item(nodeAddress), nil
	}
}

// PopFront removes the first item.
func (l *List) PopFront() error {
	if err := l.checkNotEmpty(); err != nil {
		return err
	}
	l.popEdge(&l.record.Front)
	return nil
}

// PopBack removes the last item.
func (l *List) PopBack() error {
	if err := l.checkNotEmpty(); err != nil {
		return err
	}
	l.popEdge(&l.record.Back)
	return nil
}

// PopAt removes the item at the index. Negative index counts from the back, -1 is the last item.
func (l *List) PopAt(index int) error {
	index, err := l.resolveIndex(index)
	if err != nil {
		return err
	}

	switch index {
	case 0:
		l.popEdge(&l.record.Front)
	case l.Count() - 1:
		l.popEdge(&l.record.Back)
	default:
		l.unlink(l.locate(index))
	}
	return nil
}

// PopAll removes all the items.
func (l *List) PopAll() error {
	if !l.IsValid() {
		return errors.WithStack(ErrInvalidHandle)
	}
	l.popAll()
	return nil
}

// ForEach calls visit for each item, starting at the front.
// If visit returns non-zero value, traversal stops and the value is returned.
// Items must not be pushed or popped by visit.
func (l *List) ForEach(visit Visitor, data any) (int, error) {
	if err := l.checkVisitor(visit); err != nil {
		return 0, err
	}
	return l.forEach(l.record.Front, visit, data), nil
}

// ForEachReversed calls visit for each item, starting at the back.
// If visit returns non-zero value, traversal stops and the value is returned.
// Items must not be pushed or popped by visit.
func (l *List) ForEachReversed(visit Visitor, data any) (int, error) {
	if err := l.checkVisitor(visit); err != nil {
		return 0, err
	}
	return l.forEach(l.record.Back, visit, data), nil
}

// Iterator iterates over items from the front to the back.
func (l *List) Iterator() func(func([]byte) bool) {
	return l.iterator(false)
}

// ReverseIterator iterates over items from the back to the front.
func (l *List) ReverseIterator() func(func([]byte) bool) {
	return l.iterator(true)
}

// Fingerprint returns hash of all the items, in order.
func (l *List) Fingerprint() (uint64, error) {
	if !l.IsValid() {
		return 0, errors.WithStack(ErrInvalidHandle)
	}

	h := xxhash.New()
	for item := range l.Iterator() {
		if _, err := h.Write(item); err != nil {
			return 0, errors.WithStack(err)
		}
	}
	return h.Sum64(), nil
}

// IsValid returns true if list hasn't been destroyed.
func (l *List) IsValid() bool {
	return l != nil && l.state != nil
}

// IsEmpty returns true if there are no items in the list.
func (l *List) IsEmpty() bool {
	return l.Count() == 0
}

// Count returns the number of items in the list.
func (l *List) Count() int {
	if !l.IsValid() {
		return 0
	}
	return int(l.record.Count)
}

// ItemSize returns the size of item.
func (l *List) ItemSize() uint64 {
	if l == nil {
		return 0
	}
	return l.record.ItemSize
}

// NodeSize returns the size of the node storing one item.
func (l *List) NodeSize() uint64 {
	if l == nil {
		return 0
	}
	return NodeSize(l.record.ItemSize)
}

// TotalSize returns the size of the list record and all its nodes.
func (l *List) TotalSize() uint64 {
	if !l.IsValid() {
		return 0
	}
	return RecordSize + l.record.Count*l.NodeSize()
}

func (l *List) checkNotEmpty() error {
	if !l.IsValid() {
		return errors.WithStack(ErrInvalidHandle)
	}
	if l.record.Count == 0 {
		return errors.WithStack(ErrEmpty)
	}
	return nil
}

func (l *List) checkVisitor(visit Visitor) error {
	if !l.IsValid() {
		return errors.WithStack(ErrInvalidHandle)
	}
	if visit == nil {
		return errors.WithStack(ErrNilVisitor)
	}
	return nil
}

func (l *List) resolveIndex(index int) (int, error) {
	if !l.IsValid() {
		return 0, errors.WithStack(ErrInvalidHandle)
	}

	count := l.Count()
	if index >= count || index < -count {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "index %d, count %d", index, count)
	}
	if index < 0 {
		index += count
	}
	return index, nil
}

// locate walks from the closer edge to the node at the index.
// It returns the node preceding the found one in the front-to-back order.
func (l *List) locate(index int) (types.NodeAddress, types.NodeAddress) {
	count := l.Count()
	fromFront := index < count/2

	nodeAddress := l.record.Front
	steps := index
	if !fromFront {
		nodeAddress = l.record.Back
		steps = count - index - 1
	}

	var previous types.NodeAddress
	for range steps {
		previous, nodeAddress = nodeAddress, l.nodes.Next(nodeAddress, previous)
	}

	if fromFront {
		return previous, nodeAddress
	}
	return l.nodes.Next(nodeAddress, previous), nodeAddress
}

func (l *List) pushEdge(edge *types.NodeAddress) (types.NodeAddress, error) {
	newNodeAddress, err := l.nodes.Allocate()
	if err != nil {
		return 0, err
	}

	if l.record.Count == 0 {
		l.nodes.SetLink(newNodeAddress, 0)
		l.record.Front = newNodeAddress
		l.record.Back = newNodeAddress
	} else {
		oldEdge := *edge
		l.nodes.SetLink(newNodeAddress, oldEdge)
		l.nodes.ReplaceNeighbour(oldEdge, 0, newNodeAddress)
		*edge = newNodeAddress
	}
	l.record.Count++

	return newNodeAddress, nil
}

func (l *List) popEdge(edge *types.NodeAddress) {
	oldEdge := *edge
	if l.record.Count == 1 {
		l.record.Front = 0
		l.record.Back = 0
	} else {
		newEdge := l.nodes.Next(oldEdge, 0)
		l.nodes.ReplaceNeighbour(newEdge, oldEdge, 0)
		*edge = newEdge
	}
	l.record.Count--
	l.release(oldEdge)
}

// insertBefore inserts new node between two neighbours. None of them might be 0.
func (l *List) insertBefore(previous, nodeAddress types.NodeAddress) (types.NodeAddress, error) {
	newNodeAddress, err := l.nodes.Allocate()
	if err != nil {
		return 0, err
	}

	l.nodes.ReplaceNeighbour(previous, nodeAddress, newNodeAddress)
	l.nodes.ReplaceNeighbour(nodeAddress, previous, newNodeAddress)
	l.nodes.SetLink(newNodeAddress, types.Xor(previous, nodeAddress))
	l.record.Count++

	return newNodeAddress, nil
}

// unlink removes node having both neighbours.
func (l *List) unlink(previous, nodeAddress types.NodeAddress) {
	next := l.nodes.Next(nodeAddress, previous)
	l.nodes.ReplaceNeighbour(previous, nodeAddress, next)
	l.nodes.ReplaceNeighbour(next, nodeAddress, previous)
	l.record.Count--
	l.release(nodeAddress)
}

func (l *List) popAll() {
	var previous types.NodeAddress
	nodeAddress := l.record.Front
	for nodeAddress != 0 {
		next := l.nodes.Next(nodeAddress, previous)
		l.release(nodeAddress)
		previous, nodeAddress = nodeAddress, next
	}

	l.record.Front = 0
	l.record.Back = 0
	l.record.Count = 0
}

func (l *List) release(nodeAddress types.NodeAddress) {
	if l.config.Cleanup != nil {
		l.config.Cleanup(l.nodes.Item(nodeAddress))
	}
	l.nodes.Deallocate(nodeAddress)
}

func (l *List) forEach(start types.NodeAddress, visit Visitor, data any) int {
	var previous types.NodeAddress
	nodeAddress := start
	for nodeAddress != 0 {
		item := l.nodes.Item(nodeAddress)
		previous, nodeAddress = nodeAddress, l.nodes.Next(nodeAddress, previous)

		if result := visit(item, data); result != 0 {
			return result
		}
	}
	return 0
}

func (l *List) iterator(reversed bool) func(func([]byte) bool) {
	return func(yield func([]byte) bool) {
		if !l.IsValid() {
			return
		}

		var previous types.NodeAddress
		nodeAddress := l.record.Front
		if reversed {
			nodeAddress = l.record.Back
		}
		for nodeAddress != 0 {
			item := l.nodes.Item(nodeAddress)
			previous, nodeAddress = nodeAddress, l.nodes.Next(nodeAddress, previous)

			if !yield(item) {
				return
			}
		}
	}
}
