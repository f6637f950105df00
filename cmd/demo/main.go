package main

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/outofforest/logger"
	"github.com/outofforest/parallel"
	"github.com/outofforest/xorlist/list"
)

func main() {
	ctx := logger.WithLogger(context.Background(), logger.New(logger.DefaultConfig))
	err := parallel.Run(ctx, func(ctx context.Context, spawn parallel.SpawnFn) error {
		spawn("demo", parallel.Exit, run)
		return nil
	})
	if err != nil {
		logger.Get(ctx).Fatal("Demo failed", zap.Error(err))
	}
}

func run(ctx context.Context) error {
	log := logger.Get(ctx)

	l, err := list.New(list.Config{ItemSize: 1})
	if err != nil {
		return err
	}

	for c := byte('a'); c <= 'z'; c++ {
		item, err := l.PushBack()
		if err != nil {
			return err
		}
		item[0] = c
	}
	items, err := collect(l, false)
	if err != nil {
		return err
	}
	log.Info("List filled with characters from 'a' to 'z'", zap.String("items", items))

	reversed, err := collect(l, true)
	if err != nil {
		return err
	}
	log.Info("List info",
		zap.Bool("valid", l.IsValid()),
		zap.Bool("empty", l.IsEmpty()),
		zap.Int("count", l.Count()),
		zap.Uint64("itemSize", l.ItemSize()),
		zap.Uint64("nodeSize", l.NodeSize()),
		zap.Uint64("totalSize", l.TotalSize()),
		zap.String("reversed", reversed),
	)

	for range 3 {
		if err := l.PopFront(); err != nil {
			return err
		}
		if err := l.PopBack(); err != nil {
			return err
		}
	}
	if items, err = collect(l, false); err != nil {
		return err
	}
	log.Info("Popped 3 items from the front and 3 from the back", zap.String("items", items))

	for _, index := range []int{2, -3} {
		item, err := l.PushAt(index)
		if err != nil {
			return err
		}
		item[0] = '0'
	}
	if items, err = collect(l, false); err != nil {
		return err
	}
	log.Info("Pushed '0' at indexes 2 and -3", zap.String("items", items))

	values := make([]byte, 0, 2)
	for _, index := range []int{1, -2} {
		item, err := l.GetAt(index)
		if err != nil {
			return err
		}
		values = append(values, item[0])
	}
	log.Info("Values at indexes 1 and -2", zap.ByteString("values", values))

	for _, index := range []int{3, -4} {
		if err := l.PopAt(index); err != nil {
			return err
		}
	}
	if items, err = collect(l, false); err != nil {
		return err
	}
	log.Info("Popped items at indexes 3 and -4", zap.String("items", items))

	if err := l.Destroy(); err != nil {
		return err
	}
	log.Info("List destroyed", zap.Bool("valid", l.IsValid()))

	return nil
}

func collect(l *list.List, reversed bool) (string, error) {
	forEach := l.ForEach
	if reversed {
		forEach = l.ForEachReversed
	}

	sb := &strings.Builder{}
	if _, err := forEach(func(item []byte, data any) int {
		data.(*strings.Builder).WriteByte(item[0])
		return 0
	}, sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
