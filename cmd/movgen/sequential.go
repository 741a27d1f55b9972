package main

import (
	"math/rand"

	"github.com/artemijrodionov/sim8086/gen"
)

func SequentialGen(prefix string, count int, seed int64) error {
	r := rand.New(rand.NewSource(seed))
	return create(prefix, func(out output) error {
		for i := 0; i < count; i++ {
			if err := out.write(gen.Random(r)); err != nil {
				return err
			}
		}
		return nil
	})
}
