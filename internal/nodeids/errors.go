package nodeids

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownHeaderMode is returned for an unrecognized header mode name.
var ErrUnknownHeaderMode = errors.New("unknown header mode")

// RowError describes one registry row that could not become a Record.
type RowError struct {
	Line   int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// ValidationError collects every RowError of a registry.
type ValidationError struct {
	Source string
	Rows   []*RowError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	noun := "rows"
	if len(e.Rows) == 1 {
		noun = "row"
	}
	if e.Source != "" {
		fmt.Fprintf(&sb, "%d invalid %s in %s", len(e.Rows), noun, e.Source)
	} else {
		fmt.Fprintf(&sb, "%d invalid %s", len(e.Rows), noun)
	}
	for _, r := range e.Rows {
		sb.WriteString("\n  ")
		sb.WriteString(r.Error())
	}
	return sb.String()
}

// Unwrap exposes the row errors to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Rows))
	for i, r := range e.Rows {
		errs[i] = r
	}
	return errs
}
