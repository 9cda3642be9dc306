// Package timestamp converts between the fixed timestamp format used by the
// GitHub REST API and time.Time values.
package timestamp

import (
	"fmt"
	"time"
)

// Layout is the only format accepted by Parse and produced by Format.
const Layout = "2006-01-02T15:04:05Z"

// FormatError indicates a value that does not match Layout.
type FormatError struct {
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid timestamp %q: expected format %s", e.Value, Layout)
	}
	return fmt.Sprintf("invalid timestamp %q: %s", e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Parse reads a timestamp in Layout. The result is in UTC; no offset is ever
// applied.
func Parse(text string) (time.Time, error) {
	// time.Parse tolerates a fractional second after the seconds field even
	// when the layout has none.
	if len(text) != len(Layout) {
		return time.Time{}, &FormatError{Value: text}
	}

	t, err := time.Parse(Layout, text)
	if err != nil {
		return time.Time{}, &FormatError{Value: text, Err: err}
	}

	return t, nil
}

// Format renders the wall clock of t in Layout, without converting it to UTC.
func Format(t time.Time) string {
	return t.Format(Layout)
}
