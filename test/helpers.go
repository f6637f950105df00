package test

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/outofforest/xorlist/list"
)

// NewList creates list destroyed when test finishes.
func NewList(t *testing.T, config list.Config) *list.List {
	l, err := list.New(config)
	require.NoError(t, err)
	t.Cleanup(func() {
		if l.IsValid() {
			require.NoError(t, l.Destroy())
		}
	})
	return l
}

// NewByteList creates list of one-byte items and appends each byte of values to it.
func NewByteList(t *testing.T, values string) *list.List {
	l := NewList(t, list.Config{ItemSize: 1})
	for _, v := range []byte(values) {
		item, err := l.PushBack()
		require.NoError(t, err)
		item[0] = v
	}
	return l
}

// CollectListItems collects copies of items available in list, from the front to the back.
func CollectListItems(l *list.List) [][]byte {
	items := [][]byte{}
	for item := range l.Iterator() {
		items = append(items, append([]byte{}, item...))
	}
	return items
}

// CollectListItemsReversed collects copies of items available in list, from the back to the front.
func CollectListItemsReversed(l *list.List) [][]byte {
	items := [][]byte{}
	for item := range l.ReverseIterator() {
		items = append(items, append([]byte{}, item...))
	}
	return items
}

// CollectString concatenates items of the list, from the front to the back.
func CollectString(l *list.List) string {
	return string(lo.Flatten(CollectListItems(l)))
}

// CollectStringReversed concatenates items of the list, from the back to the front.
func CollectStringReversed(l *list.List) string {
	return string(lo.Flatten(CollectListItemsReversed(l)))
}
