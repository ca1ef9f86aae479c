package assethost

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrConfiguration = errors.New("asset host not configured")
	ErrValidation    = errors.New("invalid file")
	ErrTransport     = errors.New("asset host request failed")
	ErrProtocol      = errors.New("unexpected asset host response")

	ErrFileTooLarge = fmt.Errorf("%w: file too large", ErrValidation)
)

// TransportError is a failed exchange with the host. StatusCode is 0 when
// no HTTP response was received.
type TransportError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	b.WriteString("upload failed")
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// Retryable reports whether err is a transport failure that may succeed on
// a later attempt: no response at all, throttling, or a server error.
func Retryable(err error) bool {
	var te *TransportError
	if !errors.As(err, &te) {
		return false
	}
	return te.StatusCode == 0 || te.StatusCode == http.StatusTooManyRequests || te.StatusCode >= 500
}

// HostMessage returns the host-supplied reason of a transport error, or
// err's text for other errors.
func HostMessage(err error) string {
	var te *TransportError
	if errors.As(err, &te) && te.Message != "" {
		return te.Message
	}
	return err.Error()
}
