package nodeids

import (
	"fmt"
	"strings"
)

// HeaderMode controls how the first row of the registry is treated.
type HeaderMode int

const (
	// HeaderDetect drops the first row only when it names the three columns.
	HeaderDetect HeaderMode = iota
	// HeaderNone treats every row as data.
	HeaderNone
	// HeaderSkip always drops the first row.
	HeaderSkip
)

// Column names of the registry, in positional order.
var columnNames = [...]string{"Alias", "NodeId", "TypeOfData"}

// ParseHeaderMode parses "detect", "none" or "skip".
func ParseHeaderMode(s string) (HeaderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "detect":
		return HeaderDetect, nil
	case "none":
		return HeaderNone, nil
	case "skip":
		return HeaderSkip, nil
	default:
		return HeaderDetect, fmt.Errorf("%w: %q (use: none, skip, detect)", ErrUnknownHeaderMode, s)
	}
}

func (m HeaderMode) String() string {
	switch m {
	case HeaderNone:
		return "none"
	case HeaderSkip:
		return "skip"
	default:
		return "detect"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m HeaderMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *HeaderMode) UnmarshalText(text []byte) error {
	parsed, err := ParseHeaderMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// dropsFirst reports whether the first row should be discarded under m.
func (m HeaderMode) dropsFirst(fields []string) bool {
	switch m {
	case HeaderSkip:
		return true
	case HeaderNone:
		return false
	}
	if len(fields) != len(columnNames) {
		return false
	}
	for i, name := range columnNames {
		if !strings.EqualFold(strings.TrimSpace(fields[i]), name) {
			return false
		}
	}
	return true
}
