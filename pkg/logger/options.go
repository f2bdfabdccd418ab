package logger

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Sentinel errors.
var (
	ErrUnknownLevel  = errors.New("unknown log level")
	ErrUnknownFormat = errors.New("unknown log format")
)

type options struct {
	format string
	writer io.Writer
	exit   func(int)
}

// Option configures a logger built by New or Init.
type Option func(*options)

// WithFormat selects the text or json handler. Unknown values keep text;
// use ParseFormat to reject them up front.
func WithFormat(format string) Option {
	return func(o *options) {
		if f, err := ParseFormat(format); err == nil {
			o.format = f
		}
	}
}

// WithWriter sets the output destination.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

// WithExitFunc replaces os.Exit for Fatal.
func WithExitFunc(fn func(int)) Option {
	return func(o *options) {
		if fn != nil {
			o.exit = fn
		}
	}
}

// ParseFormat normalizes a format name.
func ParseFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
