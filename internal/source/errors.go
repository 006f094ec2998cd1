package source

import "fmt"

// Kind classifies why a live fetch was abandoned. Every kind is contained
// inside the adapter that hit it; callers only ever see the fallback Signal.
type Kind string

const (
	KindCredentialMissing Kind = "credential_missing"
	KindTransportError    Kind = "transport_error"
	KindInsufficientData  Kind = "insufficient_data"
	KindParseError        Kind = "parse_error"
)

// Error is the internal adapter error. It never crosses the Fetch boundary;
// it exists so fallbacks can be logged and traced with their cause intact.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func credentialMissing(op string) *Error {
	return &Error{Kind: KindCredentialMissing, Op: op}
}

func transportError(op string, err error) *Error {
	return &Error{Kind: KindTransportError, Op: op, Err: err}
}

func insufficientData(op string, err error) *Error {
	return &Error{Kind: KindInsufficientData, Op: op, Err: err}
}

func parseError(op string, err error) *Error {
	return &Error{Kind: KindParseError, Op: op, Err: err}
}
