package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/artemijrodionov/sim8086/gen"
)

type genType string
type genTypes []genType

var sequential genType = "sequential"
var parallelInMemory genType = "parallel_mem"
var parallelInFile genType = "parallel_file"
var concurrent genType = "concurrent"
var generators genTypes = genTypes{
	sequential, parallelInMemory, parallelInFile, concurrent,
}

func (gs genTypes) String() string {
	generators := []genType(gs)
	result := make([]string, len(generators))
	for i, g := range generators {
		result[i] = string(g)
	}
	return strings.Join(result, ", ")
}

func (g genType) String() string {
	return string(g)
}

func (g *genType) Set(s string) error {
	for _, t := range generators {
		if t.String() == s {
			*g = genType(s)
			return nil
		}
	}
	return errors.New("can't find generator")
}

// output is the pair of files a generator writes: raw machine code and the
// listing it disassembles to.
type output struct {
	bin *bufio.Writer
	txt *bufio.Writer
}

func (o output) write(mov gen.Mov) error {
	if _, err := o.bin.Write(mov.Bytes); err != nil {
		return err
	}
	_, err := fmt.Fprintln(o.txt, mov.Text)
	return err
}

func (o output) copyFrom(bin, txt io.Reader) error {
	if _, err := io.Copy(o.bin, bin); err != nil {
		return err
	}
	_, err := io.Copy(o.txt, txt)
	return err
}

func (o output) flush() error {
	return errors.Join(o.bin.Flush(), o.txt.Flush())
}

// create opens <prefix>.bin and <prefix>.txt and passes them to fill.
func create(prefix string, fill func(output) error) (err error) {
	bin, err := os.Create(prefix + ".bin")
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, bin.Close()) }()

	txt, err := os.Create(prefix + ".txt")
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, txt.Close()) }()

	out := output{bufio.NewWriter(bin), bufio.NewWriter(txt)}
	if err := fill(out); err != nil {
		return err
	}
	return out.flush()
}

func chunks(count, threads int) []int {
	threads = max(threads, 1)
	result := make([]int, threads)
	for i := range result {
		result[i] = count / threads
		if i < count%threads {
			result[i]++
		}
	}
	return result
}

var (
	threads   int
	count     int
	seed      int64
	prefix    string
	generator = sequential
)

func init() {
	flag.IntVar(&threads, "threads", 3, "how many threads to use?")
	flag.IntVar(&count, "count", 10_000, "how many instructions to generate?")
	flag.Int64Var(&seed, "seed", 8086, "random seed")
	flag.StringVar(&prefix, "out", "listing_random_movs", "output path without extension")
	flag.Var(&generator, "generator", "how to generate data? "+generators.String())
}

func main() {
	flag.Parse()
	log := logrus.WithFields(logrus.Fields{
		"generator": generator,
		"count":     count,
		"threads":   threads,
	})

	var err error
	switch generator {
	case sequential:
		err = SequentialGen(prefix, count, seed)
	case concurrent:
		err = ConcurrentGen(prefix, count, threads, seed)
	case parallelInFile:
		err = ParallelInFileGen(prefix, count, threads, seed)
	case parallelInMemory:
		err = ParallelInMemoryGen(prefix, count, threads, seed)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("wrote %s.bin and %s.txt", prefix, prefix)
}
