package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

func createChunkFiles(dir string, i, count int, seed int64) (string, error) {
	prefix := filepath.Join(dir, fmt.Sprintf("chunk_%d", i))
	return prefix, SequentialGen(prefix, count, seed)
}

func mergeFiles(prefix string, chunkPrefixes []string) error {
	return create(prefix, func(out output) error {
		for _, p := range chunkPrefixes {
			bin, err := os.Open(p + ".bin")
			if err != nil {
				return err
			}
			txt, err := os.Open(p + ".txt")
			if err != nil {
				bin.Close()
				return err
			}
			err = out.copyFrom(bin, txt)
			if err := errors.Join(err, bin.Close(), txt.Close()); err != nil {
				return err
			}
		}
		return nil
	})
}

func scheduleCreation(dir string, count, threads int, seed int64) ([]string, error) {
	sizes := chunks(count, threads)
	result := make([]string, len(sizes))

	var g errgroup.Group
	for i, size := range sizes {
		i, size := i, size
		g.Go(func() error {
			p, err := createChunkFiles(dir, i, size, seed+int64(i))
			result[i] = p
			return err
		})
	}
	return result, g.Wait()
}

func ParallelInFileGen(prefix string, count, threads int, seed int64) error {
	dir, err := os.MkdirTemp(os.TempDir(), "movgen")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	parts, err := scheduleCreation(dir, count, threads, seed)
	if err != nil {
		return err
	}
	return mergeFiles(prefix, parts)
}
