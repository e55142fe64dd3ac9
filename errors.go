package apdemod

/*------------------------------------------------------------------
 *
 * Purpose:     Tagged error kind plus the process-wide exit policy that
 *		lets a caller choose between getting a *Error back or having
 *		the process print it and terminate.
 *
 *----------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// Kind tags every way Demodulate can fail. Values are stable and are used
// verbatim as the process exit code when the exit-on-error policy is active.
type Kind int

const (
	KindNone Kind = iota
	KindOutOfMemory
	KindDftCreate
	KindDftSet
	KindDftCommit
	KindDftCompute
	KindBadAlgorithm
	KindBadDimension
	KindBadFs
	KindBadFc
	KindBadFc2
	KindBadEt
	KindBadNi
	KindBadNs
	KindBadNr
	KindBadCp
	KindBadBr
	KindBadIeCount
	KindBadIeOrder
	KindBadImCount
	KindBadImOrder
	KindBadSignal
	KindBadUpperBound
	KindBadCoords
)

var kindNames = map[Kind]string{
	KindNone:          "no error",
	KindOutOfMemory:   "allocation failed",
	KindDftCreate:     "DFT descriptor creation failed",
	KindDftSet:        "DFT descriptor parameter set failed",
	KindDftCommit:     "DFT descriptor commit failed",
	KindDftCompute:    "DFT forward/backward computation failed",
	KindBadAlgorithm:  "algorithm must be Basic, Accelerated, or Projected",
	KindBadDimension:  "dimension D must be in {1,2,3}",
	KindBadFs:         "sampling frequency Fs must be positive and finite",
	KindBadFc:         "cutoff frequency Fc must be positive and finite",
	KindBadFc2:        "cutoff frequency Fc must not exceed Fs/2",
	KindBadEt:         "error tolerance Et must be finite",
	KindBadNi:         "iteration limit Ni must be positive",
	KindBadNs:         "sample count Ns must be at least 2 per axis",
	KindBadNr:         "refined grid size Nr must be at least 2 per axis",
	KindBadCp:         "compression exponent Cp must be finite and >= 1",
	KindBadBr:         "break flag Br is only meaningful for Accelerated",
	KindBadIeCount:    "error snapshot schedule Ie must be non-empty with Ie[0] >= 0",
	KindBadIeOrder:    "error snapshot schedule Ie must be non-negative and strictly increasing",
	KindBadImCount:    "modulator snapshot schedule Im must be non-empty with Im[0] >= 0",
	KindBadImOrder:    "modulator snapshot schedule Im must be non-negative and strictly increasing",
	KindBadSignal:     "signal contains a non-finite sample",
	KindBadUpperBound: "upper bound must be finite and dominate |signal|",
	KindBadCoords:     "sample coordinates contain a non-finite entry",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown error"
}

// Error is the concrete error type every exported entry point returns.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("apdemod: %s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("apdemod: %s", e.Kind)
}

func newError(k Kind, msg string) *Error {
	return &Error{Kind: k, Msg: msg}
}

// errExitPolicy holds the process-wide "print and terminate" toggle. It
// mirrors the teacher's single thread-local error slot; both SetErrExit
// and handleTerminal access it under mu.
var errExitPolicy struct {
	mu     sync.Mutex
	exit   bool
	logger *log.Logger
}

// SetErrExit selects the library-wide error policy. When exit is false
// (the default), Demodulate returns a *Error to the caller and releases
// all transient resources. When exit is true, Demodulate additionally logs
// the error at Error level through logger (or a default stderr logger, if
// logger is nil) and terminates the process with the error's Kind as the
// exit code.
func SetErrExit(exit bool, logger *log.Logger) {
	errExitPolicy.mu.Lock()
	defer errExitPolicy.mu.Unlock()

	errExitPolicy.exit = exit
	errExitPolicy.logger = logger
}

// handleTerminal applies the error-exit policy to an error produced by the
// outermost call (Demodulate). It returns err unchanged when the policy is
// to return control to the caller.
func handleTerminal(err *Error) error {
	if err == nil {
		return nil
	}

	errExitPolicy.mu.Lock()
	exit := errExitPolicy.exit
	logger := errExitPolicy.logger
	errExitPolicy.mu.Unlock()

	if !exit {
		return err
	}

	if logger == nil {
		logger = log.New(os.Stderr)
	}
	logger.Error("AP demodulation failed", "kind", err.Kind.String(), "msg", err.Msg)
	os.Exit(int(err.Kind))
	return err // unreachable
}
