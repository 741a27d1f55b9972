package sim8086

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/artemijrodionov/sim8086/inst"
)

// FailurePolicy decides what the walker does after a byte it cannot decode.
type FailurePolicy byte

const (
	// SkipByte advances one byte and classifies again.
	SkipByte FailurePolicy = iota
	// Stop ends the walk at the first failure.
	Stop
)

var failurePolicies = map[FailurePolicy]string{
	SkipByte: "skip",
	Stop:     "stop",
}

func (p FailurePolicy) String() string {
	return failurePolicies[p]
}

func (p *FailurePolicy) Set(s string) error {
	for policy, name := range failurePolicies {
		if name == s {
			*p = policy
			return nil
		}
	}
	return fmt.Errorf("unknown failure policy %q", s)
}

type Config struct {
	// Verbosity 0 logs failures only, 1 adds a summary, 2 every decoded
	// instruction with its bits, 3 the decoded fields.
	Verbosity int
	Style     inst.Style
	OnFailure FailurePolicy
	// Logger receives diagnostics. When nil a stderr logger at the level
	// implied by Verbosity is used.
	Logger logrus.FieldLogger
}

func DefaultConfig() Config {
	return Config{OnFailure: SkipByte}
}

func (c Config) validate() error {
	var errs []error
	if c.Verbosity < 0 {
		errs = append(errs, fmt.Errorf("negative verbosity %d", c.Verbosity))
	}
	if _, ok := failurePolicies[c.OnFailure]; !ok {
		errs = append(errs, fmt.Errorf("unknown failure policy %d", c.OnFailure))
	}
	return errors.Join(errs...)
}

func (c Config) logger() logrus.FieldLogger {
	if c.Logger != nil {
		return c.Logger
	}
	return NewLogger(os.Stderr, c.Verbosity)
}

// NewLogger returns a text logger whose level follows verbosity.
func NewLogger(out io.Writer, verbosity int) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(Level(verbosity))
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log
}

func Level(verbosity int) logrus.Level {
	switch {
	case verbosity <= 0:
		return logrus.WarnLevel
	case verbosity == 1:
		return logrus.InfoLevel
	case verbosity == 2:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}
