package scoring

import (
	"time"

	perr "startupsignal/internal/platform/errors"
)

// Kind classifies an outcome
type Kind uint8

const (
	Success Kind = iota
	LaunchFailure
	ProcessError
	MalformedOutput
	ModelRejected
	Timeout
)

var kindNames = [...]string{
	Success:         "success",
	LaunchFailure:   "launch_failure",
	ProcessError:    "process_error",
	MalformedOutput: "malformed_output",
	ModelRejected:   "model_rejected",
	Timeout:         "timeout",
}

// Kinds lists every kind in declaration order
func Kinds() []Kind {
	return []Kind{Success, LaunchFailure, ProcessError, MalformedOutput, ModelRejected, Timeout}
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind is the inverse of String
func ParseKind(s string) (Kind, bool) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// MarshalText lets kinds appear as map keys and strings in JSON and YAML
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Outcome is the single result of one invocation
type Outcome struct {
	Kind Kind
	// Document is the scorer stdout, trimmed, for Success and ModelRejected
	Document []byte
	// Detail is bounded diagnostic text; for ModelRejected it is the error content
	Detail string

	InvocationID string
	ExitCode     int
	Exited       bool
	Duration     time.Duration
}

// OK reports whether the outcome carries a document the client should get as-is
func (o Outcome) OK() bool { return o.Kind == Success }

// Err maps a failed outcome into a coded error with its client message and detail.
// Success returns nil
func (o Outcome) Err() error {
	var code perr.ErrorCode
	var msg string
	switch o.Kind {
	case Success:
		return nil
	case LaunchFailure:
		code, msg = perr.ErrorCodeScorerLaunch, "Prediction failed"
	case ProcessError:
		code, msg = perr.ErrorCodeScorerProcess, "Prediction failed"
	case MalformedOutput:
		code, msg = perr.ErrorCodeScorerOutput, "Invalid response from model"
	case ModelRejected:
		code, msg = perr.ErrorCodeModelRejected, o.Detail
	case Timeout:
		code, msg = perr.ErrorCodeScorerTimeout, "Prediction timed out"
	default:
		code, msg = perr.ErrorCodeUnknown, "Prediction failed"
	}
	return perr.WithDetail(perr.New(code, msg), o.Detail)
}
