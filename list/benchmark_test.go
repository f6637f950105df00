package list_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outofforest/xorlist/list"
)

// go test -benchtime=100x -bench=. -run=^$ -cpuprofile profile.out
// go tool pprof -http="localhost:8000" pprofbin ./profile.out

const numOfItems = 10000

func BenchmarkPushPopEdges(b *testing.B) {
	b.StopTimer()
	b.ResetTimer()

	l, err := list.New(list.Config{ItemSize: 8})
	require.NoError(b, err)
	b.Cleanup(func() {
		_ = l.Destroy()
	})

	b.StartTimer()
	for range b.N {
		for i := range uint64(numOfItems) {
			item, err := l.PushBack()
			if err != nil {
				b.Fatal(err)
			}
			binary.LittleEndian.PutUint64(item, i)
		}
		for range numOfItems {
			if err := l.PopFront(); err != nil {
				b.Fatal(err)
			}
		}
	}
	b.StopTimer()
}

func BenchmarkGetAtMiddle(b *testing.B) {
	b.StopTimer()
	b.ResetTimer()

	l, err := list.New(list.Config{ItemSize: 8})
	require.NoError(b, err)
	b.Cleanup(func() {
		_ = l.Destroy()
	})

	for range numOfItems {
		_, err := l.PushBack()
		require.NoError(b, err)
	}

	b.StartTimer()
	for range b.N {
		for _, index := range []int{numOfItems / 4, numOfItems / 2, -numOfItems / 4} {
			if _, err := l.GetAt(index); err != nil {
				b.Fatal(err)
			}
		}
	}
	b.StopTimer()
}

func BenchmarkIterator(b *testing.B) {
	b.StopTimer()
	b.ResetTimer()

	l, err := list.New(list.Config{ItemSize: 8})
	require.NoError(b, err)
	b.Cleanup(func() {
		_ = l.Destroy()
	})

	for i := range uint64(numOfItems) {
		item, err := l.PushBack()
		require.NoError(b, err)
		binary.LittleEndian.PutUint64(item, i)
	}

	var sum uint64
	b.StartTimer()
	for range b.N {
		for item := range l.Iterator() {
			sum += binary.LittleEndian.Uint64(item)
		}
	}
	b.StopTimer()

	require.Equal(b, uint64(b.N)*numOfItems*(numOfItems-1)/2, sum)
}
