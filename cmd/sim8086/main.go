package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/artemijrodionov/sim8086"
)

var (
	objPath   = flag.String("objPath", "", "Unix path to a binary file compiled with nasm, - for stdin")
	verbosity = flag.Int("v", 0, "diagnostic verbosity: 0 failures, 1 summary, 2 instructions, 3 fields")
	signed    = flag.Bool("signed", false, "render displacements and immediates as signed values")
	dump      = flag.Bool("dump", false, "pretty-print every decoded instruction to stderr")
	onFailure = sim8086.SkipByte
)

func init() {
	flag.Var(&onFailure, "on-failure", "what to do after an undecodable byte: skip or stop")
}

const stdinPath = "-"

func isObjFile(filename string) bool {
	return filename != "" && !strings.HasSuffix(filename, ".asm")
}

type Cli struct {
	ObjPaths []string
	Config   sim8086.Config
	Dump     bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *logrus.Logger
}

func NewCli(objPaths []string, cfg sim8086.Config) (*Cli, error) {
	if len(objPaths) == 0 {
		return nil, errors.New("no executable file given")
	}
	for _, p := range objPaths {
		if p != stdinPath && !isObjFile(p) {
			return nil, fmt.Errorf("executable file name %q is not valid", p)
		}
	}

	return &Cli{
		ObjPaths: objPaths,
		Config:   cfg,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		log:      sim8086.NewLogger(os.Stderr, cfg.Verbosity),
	}, nil
}

func (c *Cli) read(path string) ([]byte, error) {
	if path != stdinPath {
		return os.ReadFile(path)
	}
	if f, ok := c.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, errors.New("refusing to read machine code from a terminal")
	}
	return io.ReadAll(c.stdin)
}

// disassemble renders one file into out and, with Dump set, the decoded
// instructions into dumps.
func (c *Cli) disassemble(path string, out, dumps io.Writer) (sim8086.Stats, error) {
	buf, err := c.read(path)
	if err != nil {
		return sim8086.Stats{}, err
	}

	cfg := c.Config
	cfg.Logger = c.log.WithField("file", path)

	if !c.Dump {
		return sim8086.Print(out, buf, cfg)
	}

	lines, err := sim8086.Disassemble(buf, cfg)
	if err != nil {
		return sim8086.Stats{}, err
	}

	printer := pp.New()
	printer.SetColoringEnabled(isTerminal(c.stderr))

	var stats sim8086.Stats
	for _, line := range lines {
		fmt.Fprintln(out, line.Text)
		if line.Err != nil {
			stats.Invalid++
			continue
		}
		stats.Decoded++
		printer.Fprintln(dumps, line.Inst)
	}
	return stats, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run decodes every file concurrently and prints the listings in argument order.
func (c *Cli) Run() error {
	outputs := make([]bytes.Buffer, len(c.ObjPaths))
	dumps := make([]bytes.Buffer, len(c.ObjPaths))
	stats := make([]sim8086.Stats, len(c.ObjPaths))

	var g errgroup.Group
	for i, path := range c.ObjPaths {
		i, path := i, path
		g.Go(func() error {
			s, err := c.disassemble(path, &outputs[i], &dumps[i])
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			stats[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, path := range c.ObjPaths {
		if len(c.ObjPaths) > 1 {
			fmt.Fprintf(c.stdout, "; %s\n", path)
		}
		if _, err := outputs[i].WriteTo(c.stdout); err != nil {
			return err
		}
		if _, err := dumps[i].WriteTo(c.stderr); err != nil {
			return err
		}
		c.log.WithFields(logrus.Fields{
			"file":    path,
			"decoded": stats[i].Decoded,
			"invalid": stats[i].Invalid,
		}).Debug("listing written")
	}
	return nil
}

func main() {
	flag.Parse()

	paths := flag.Args()
	if *objPath != "" {
		paths = append([]string{*objPath}, paths...)
	}

	cfg := sim8086.DefaultConfig()
	cfg.Verbosity = *verbosity
	cfg.Style.Signed = *signed
	cfg.OnFailure = onFailure

	cli, err := NewCli(paths, cfg)
	if err != nil {
		flag.Usage()
		logrus.Fatal(err)
	}
	cli.Dump = *dump

	if err := cli.Run(); err != nil {
		cli.log.Fatal(err)
	}
}
