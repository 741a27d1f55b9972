// Package sim8086 disassembles 8086 MOV instructions from raw machine code.
package sim8086

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/artemijrodionov/sim8086/inst"
)

// Line is the result of one decode step. Inst is nil when Err is set.
type Line struct {
	Offset int
	Inst   *inst.Instruction
	Err    error
	Text   string
}

// Walker decodes a buffer one instruction at a time.
type Walker struct {
	stream  *ByteStream
	cfg     Config
	log     logrus.FieldLogger
	stopped bool
}

func NewWalker(buf []byte, cfg Config) (*Walker, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Walker{
		stream: NewByteStream(buf),
		cfg:    cfg,
		log:    cfg.logger(),
	}, nil
}

// Done reports whether the walk has reached its terminal state.
func (w *Walker) Done() bool {
	return w.stopped || w.stream.Done()
}

func (w *Walker) Position() int {
	return w.stream.Position()
}

// Next decodes the instruction under the cursor and advances past it.
// It returns false once the walker is done.
func (w *Walker) Next() (Line, bool) {
	if w.Done() {
		return Line{}, false
	}

	offset := w.stream.Position()
	decoded, err := inst.Decode(w.stream.Rest())
	if err != nil {
		return w.fail(offset, err), true
	}

	w.stream.Advance(decoded.Len)

	line := Line{Offset: offset, Inst: &decoded, Text: decoded.Format(w.cfg.Style)}
	entry := w.log.WithFields(logrus.Fields{
		"offset": offset,
		"len":    decoded.Len,
		"bits":   inst.Bits(decoded.Raw...),
	})
	entry.Debug(line.Text)
	entry.WithFields(logrus.Fields{
		"class": decoded.Class,
		"dst":   fmt.Sprintf("%+v", decoded.Dst),
		"src":   fmt.Sprintf("%+v", decoded.Src),
	}).Trace("decoded")

	return line, true
}

func (w *Walker) fail(offset int, err error) Line {
	op, _ := w.stream.Peek()
	line := Line{
		Offset: offset,
		Err:    err,
		Text:   fmt.Sprintf("Invalid instruction: %08b", op),
	}

	entry := w.log.WithFields(logrus.Fields{
		"offset": offset,
		"opcode": fmt.Sprintf("%08b", op),
	}).WithError(err)

	switch w.cfg.OnFailure {
	case Stop:
		w.stopped = true
		entry.Warn("stopping at undecodable instruction")
	default:
		w.stream.Advance(1)
		if errors.Is(err, inst.ErrUnrecognizedOpcode) {
			entry.Warn("skipping unrecognized byte")
		} else {
			entry.Warn("skipping 1 byte of a known instruction, following output may be misaligned")
		}
	}

	return line
}

// Stats counts the outcome of a walk.
type Stats struct {
	Decoded int
	Invalid int
	Bytes   int
}

// Disassemble decodes the whole buffer.
func Disassemble(buf []byte, cfg Config) ([]Line, error) {
	w, err := NewWalker(buf, cfg)
	if err != nil {
		return nil, err
	}

	var lines []Line
	for {
		line, ok := w.Next()
		if !ok {
			return lines, nil
		}
		lines = append(lines, line)
	}
}

// Print writes one text line per decode step to out.
func Print(out io.Writer, buf []byte, cfg Config) (Stats, error) {
	w, err := NewWalker(buf, cfg)
	if err != nil {
		return Stats{}, err
	}

	writer := bufio.NewWriter(out)
	var stats Stats
	for {
		line, ok := w.Next()
		if !ok {
			break
		}
		if line.Err != nil {
			stats.Invalid++
		} else {
			stats.Decoded++
		}
		if _, err := fmt.Fprintln(writer, line.Text); err != nil {
			return stats, err
		}
	}
	stats.Bytes = w.Position()

	w.log.WithFields(logrus.Fields{
		"decoded": stats.Decoded,
		"invalid": stats.Invalid,
		"bytes":   stats.Bytes,
	}).Info("done")

	return stats, writer.Flush()
}
