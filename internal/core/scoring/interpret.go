package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	pstrings "startupsignal/internal/platform/strings"
)

// Interpret classifies a finished invocation. Rules apply in order and the first match wins:
// launch error, deadline kill, non-zero exit, unparseable stdout, truthy error field, success.
// detailMax bounds Detail in bytes; 0 disables the bound
func Interpret(inv Invocation, detailMax int) Outcome {
	o := Outcome{
		InvocationID: inv.ID,
		ExitCode:     inv.ExitCode,
		Exited:       inv.Exited,
		Duration:     inv.Duration,
	}
	bound := func(s string) string { return pstrings.Truncate(s, detailMax) }

	switch {
	case inv.LaunchErr != nil:
		o.Kind, o.Detail = LaunchFailure, bound(inv.LaunchErr.Error())
		return o

	case inv.TimedOut:
		o.Kind = Timeout
		o.Detail = "scorer exceeded its deadline and was killed"
		if inv.Cancelled {
			o.Detail = "request cancelled before the scorer finished"
		}
		return o

	case !inv.Exited || inv.ExitCode != 0:
		o.Kind = ProcessError
		d := pstrings.FirstNonEmpty(
			strings.TrimSpace(string(inv.Stderr)),
			strings.TrimSpace(string(inv.Stdout)),
		)
		if d == "" {
			d = fmt.Sprintf("scorer exited with code %d", inv.ExitCode)
			if !inv.Exited {
				d = "scorer terminated by a signal"
			}
		}
		o.Detail = bound(d)
		return o
	}

	doc := bytes.TrimSpace(inv.Stdout)
	if inv.Overflow {
		o.Kind = MalformedOutput
		o.Detail = bound(fmt.Sprintf("scorer output exceeded %d bytes", len(inv.Stdout)))
		return o
	}
	if !json.Valid(doc) || len(doc) == 0 || doc[0] != '{' {
		o.Kind = MalformedOutput
		o.Detail = bound(string(doc))
		if o.Detail == "" {
			o.Detail = "scorer produced no output"
		}
		return o
	}

	var probe struct {
		Error json.RawMessage `json:"error"`
	}
	// doc is a valid object, Unmarshal into a struct cannot fail on shape
	_ = json.Unmarshal(doc, &probe)
	if truthy(probe.Error) {
		o.Kind = ModelRejected
		o.Document = doc
		o.Detail = bound(errorText(probe.Error))
		return o
	}

	o.Kind = Success
	o.Document = doc
	return o
}

// truthy follows the scorer's client convention: null, false, 0 and "" are falsy
func truthy(raw json.RawMessage) bool {
	s := bytes.TrimSpace(raw)
	if len(s) == 0 {
		return false
	}
	switch s[0] {
	case 'n', 'f':
		return false
	case '"':
		return len(s) > 2
	case '{', '[', 't':
		return true
	}
	var n float64
	if err := json.Unmarshal(s, &n); err != nil {
		return true
	}
	return n != 0
}

// errorText renders the error field: strings unquoted, anything else as compact JSON
func errorText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
