package xorlist

import (
	"unsafe"

	"github.com/outofforest/photon"
	"github.com/outofforest/xorlist/list"
)

// Config stores configuration of the typed list.
type Config struct {
	// NodesPerSegment is the number of nodes the arena maps at once.
	NodesPerSegment uint64

	// MaxNodes limits the number of elements the list may store. 0 means no limit.
	MaxNodes uint64

	UseHugePages bool
}

// New creates new list storing values of type T.
// T must be a fixed-size type without pointers because items are stored outside the Go heap.
// If cleanup is not nil, it is called for every item before it is removed from the list.
func New[T comparable](config Config, cleanup func(item *T)) (*List[T], error) {
	if err := checkType[T](); err != nil {
		return nil, err
	}

	var listCleanup func(item []byte)
	if cleanup != nil {
		listCleanup = func(item []byte) {
			cleanup(project[T](item))
		}
	}

	var t T
	l, err := list.New(list.Config{
		ItemSize:        uint64(unsafe.Sizeof(t)),
		NodesPerSegment: config.NodesPerSegment,
		MaxNodes:        config.MaxNodes,
		UseHugePages:    config.UseHugePages,
		Cleanup:         listCleanup,
	})
	if err != nil {
		return nil, err
	}

	return &List[T]{
		list: l,
	}, nil
}

// List is the XOR-linked list of values of type T.
type List[T comparable] struct {
	list *list.List
}

// Destroy releases all the items and the memory of the list.
func (l *List[T]) Destroy() error {
	return l.inner().Destroy()
}

// PushFront inserts zero value at the front of the list and returns pointer to it.
func (l *List[T]) PushFront() (*T, error) {
	return projectResult[T](l.inner().PushFront())
}

// PushBack inserts zero value at the back of the list and returns pointer to it.
func (l *List[T]) PushBack() (*T, error) {
	return projectResult[T](l.inner().PushBack())
}

// PushAt inserts zero value so it is found at the index afterwards and returns pointer to it.
func (l *List[T]) PushAt(index int) (*T, error) {
	return projectResult[T](l.inner().PushAt(index))
}

// Prepend inserts value at the front of the list.
func (l *List[T]) Prepend(value T) error {
	return store[T](l.PushFront())(value)
}

// Append inserts value at the back of the list.
func (l *List[T]) Append(value T) error {
	return store[T](l.PushBack())(value)
}

// Insert inserts value so it is found at the index afterwards.
func (l *List[T]) Insert(index int, value T) error {
	return store[T](l.PushAt(index))(value)
}

// GetFront returns pointer to the first value.
func (l *List[T]) GetFront() (*T, error) {
	return projectResult[T](l.inner().GetFront())
}

// GetBack returns pointer to the last value.
func (l *List[T]) GetBack() (*T, error) {
	return projectResult[T](l.inner().GetBack())
}

// GetAt returns pointer to the value at the index.
func (l *List[T]) GetAt(index int) (*T, error) {
	return projectResult[T](l.inner().GetAt(index))
}

// PopFront removes the first value.
func (l *List[T]) PopFront() error {
	return l.inner().PopFront()
}

// PopBack removes the last value.
func (l *List[T]) PopBack() error {
	return l.inner().PopBack()
}

// PopAt removes the value at the index.
func (l *List[T]) PopAt(index int) error {
	return l.inner().PopAt(index)
}

// PopAll removes all the values.
func (l *List[T]) PopAll() error {
	return l.inner().PopAll()
}

// ForEach calls visit for each value, starting at the front.
// If visit returns non-zero value, traversal stops and the value is returned.
func (l *List[T]) ForEach(visit func(item *T, data any) int, data any) (int, error) {
	return l.inner().ForEach(visitor(visit), data)
}

// ForEachReversed calls visit for each value, starting at the back.
// If visit returns non-zero value, traversal stops and the value is returned.
func (l *List[T]) ForEachReversed(visit func(item *T, data any) int, data any) (int, error) {
	return l.inner().ForEachReversed(visitor(visit), data)
}

// All iterates over values from the front to the back.
func (l *List[T]) All() func(func(*T) bool) {
	return iterator[T](l.inner().Iterator())
}

// Backward iterates over values from the back to the front.
func (l *List[T]) Backward() func(func(*T) bool) {
	return iterator[T](l.inner().ReverseIterator())
}

// Values returns copy of all the values, from the front to the back.
func (l *List[T]) Values() []T {
	values := make([]T, 0, l.Count())
	for v := range l.All() {
		values = append(values, *v)
	}
	return values
}

// Fingerprint returns hash of all the values, in order.
func (l *List[T]) Fingerprint() (uint64, error) {
	return l.inner().Fingerprint()
}

// IsValid returns true if list hasn't been destroyed.
func (l *List[T]) IsValid() bool {
	return l.inner().IsValid()
}

// IsEmpty returns true if there are no values in the list.
func (l *List[T]) IsEmpty() bool {
	return l.inner().IsEmpty()
}

// Count returns the number of values in the list.
func (l *List[T]) Count() int {
	return l.inner().Count()
}

// ItemSize returns the size of T.
func (l *List[T]) ItemSize() uint64 {
	return l.inner().ItemSize()
}

// NodeSize returns the size of the node storing one value.
func (l *List[T]) NodeSize() uint64 {
	return l.inner().NodeSize()
}

// TotalSize returns the size of the list record and all its nodes.
func (l *List[T]) TotalSize() uint64 {
	return l.inner().TotalSize()
}

func (l *List[T]) inner() *list.List {
	if l == nil {
		return nil
	}
	return l.list
}

func project[T comparable](item []byte) *T {
	return photon.FromBytes[T](item)
}

func projectResult[T comparable](item []byte, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	return project[T](item), nil
}

func store[T comparable](item *T, err error) func(value T) error {
	return func(value T) error {
		if err != nil {
			return err
		}
		*item = value
		return nil
	}
}

func visitor[T comparable](visit func(item *T, data any) int) list.Visitor {
	if visit == nil {
		return nil
	}
	return func(item []byte, data any) int {
		return visit(project[T](item), data)
	}
}

func iterator[T comparable](it func(func([]byte) bool)) func(func(*T) bool) {
	return func(yield func(*T) bool) {
		for item := range it {
			if !yield(project[T](item)) {
				return
			}
		}
	}
}
