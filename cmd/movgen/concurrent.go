package main

import (
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/artemijrodionov/sim8086/gen"
)

type movCh chan gen.Mov

func writeFromCh(out output, ch movCh) error {
	var err error
	for mov := range ch {
		if err == nil {
			err = out.write(mov)
		}
	}
	return err
}

func scheduleGen(count, threads int, seed int64, ch movCh) {
	var g errgroup.Group
	for i, size := range chunks(count, threads) {
		i, size := i, size
		g.Go(func() error {
			r := rand.New(rand.NewSource(seed + int64(i)))
			for j := 0; j < size; j++ {
				ch <- gen.Random(r)
			}
			return nil
		})
	}
	g.Wait()
	close(ch)
}

// ConcurrentGen interleaves instructions from every worker, so the order
// differs between runs while each .bin still matches its .txt.
func ConcurrentGen(prefix string, count, threads int, seed int64) error {
	return create(prefix, func(out output) error {
		ch := make(movCh, 1024)
		go scheduleGen(count, threads, seed, ch)
		return writeFromCh(out, ch)
	})
}
