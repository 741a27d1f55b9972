package main

import (
	"bytes"
	"math/rand"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/artemijrodionov/sim8086/gen"
)

type chunk struct {
	bin []byte
	txt string
}

func createChunk(count int, seed int64) chunk {
	buf, lines := gen.Stream(rand.New(rand.NewSource(seed)), count)
	var txt strings.Builder
	for _, l := range lines {
		txt.WriteString(l)
		txt.WriteByte('\n')
	}
	return chunk{buf, txt.String()}
}

func schedule(count, threads int, seed int64) []chunk {
	sizes := chunks(count, threads)
	result := make([]chunk, len(sizes))

	var g errgroup.Group
	for i, size := range sizes {
		i, size := i, size
		g.Go(func() error {
			result[i] = createChunk(size, seed+int64(i))
			return nil
		})
	}
	g.Wait()
	return result
}

func ParallelInMemoryGen(prefix string, count, threads int, seed int64) error {
	data := schedule(count, threads, seed)
	return create(prefix, func(out output) error {
		for _, c := range data {
			if err := out.copyFrom(bytes.NewReader(c.bin), strings.NewReader(c.txt)); err != nil {
				return err
			}
		}
		return nil
	})
}
