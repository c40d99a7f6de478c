package appconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-appconfig/document"
)

var (
	// ErrParse matches every *ParseError.
	ErrParse = errors.New("appconfig: parse failed")
	// ErrCircularReference matches every *CircularReferenceError.
	ErrCircularReference = errors.New("appconfig: circular reference")
	// ErrUnsupportedFormat is returned when no parser or encoder exists for the
	// requested format.
	ErrUnsupportedFormat = document.ErrUnsupportedFormat
	// ErrKeyNotFound is returned by Decode when the requested key is unbound.
	ErrKeyNotFound = errors.New("appconfig: key not found")
)

// ParseError reports a document that could not be read or parsed. No Config
// is produced when it is returned.
type ParseError struct {
	Source string
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("appconfig: parse %s format=%s: %v", describeSource(e.Source), describeFormat(e.Format), e.Err)
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// CircularReferenceError reports a key whose resolution depends on itself.
// Chain lists the keys entered from the top-level lookup up to and including
// the repeated key.
type CircularReferenceError struct {
	Key   string
	Chain []string
}

func (e *CircularReferenceError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if len(e.Chain) == 0 {
		return fmt.Sprintf("appconfig: circular reference to %q", e.Key)
	}
	return fmt.Sprintf("appconfig: circular reference to %q: %s", e.Key, strings.Join(e.Chain, " -> "))
}

// Is reports whether target is ErrCircularReference.
func (e *CircularReferenceError) Is(target error) bool {
	return target == ErrCircularReference
}

func describeSource(source string) string {
	if source == "" {
		return "<reader>"
	}
	return fmt.Sprintf("%q", source)
}

func describeFormat(format string) string {
	if format == "" {
		return "<custom>"
	}
	return format
}

func wrapParseError(source string, format document.Format, err error) error {
	if err == nil {
		return nil
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		if parseErr.Source == "" {
			parseErr.Source = source
		}
		if parseErr.Format == "" {
			parseErr.Format = string(format)
		}
		return parseErr
	}

	return &ParseError{
		Source: source,
		Format: string(format),
		Err:    err,
	}
}
