package nodeids

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Options configures Parse.
type Options struct {
	// Delimiter separates fields. Zero means ','.
	Delimiter rune
	// Header selects how the first row is treated.
	Header HeaderMode
	// ValidateNodeIDs requires every node id to be an unsigned 32-bit
	// decimal integer. Node ids are otherwise kept as uninspected text.
	ValidateNodeIDs bool
}

// DefaultOptions returns comma-delimited parsing with header detection.
func DefaultOptions() Options {
	return Options{Delimiter: ',', Header: HeaderDetect}
}

// ParseFile opens path and parses it as a registry.
func ParseFile(path string, opts Options) (RecordSet, error) {
	f, err := os.Open(path) //nolint:gosec // registry path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("failed to open node id registry: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := Parse(f, opts)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			ve.Source = path
			return nil, ve
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return records, nil
}

// Parse reads registry rows from r in a single pass. Every row either
// becomes a Record or a RowError; if any row fails, Parse returns a
// *ValidationError listing all of them and no records.
func Parse(r io.Reader, opts Options) (RecordSet, error) {
	cr := csv.NewReader(r)
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var (
		records RecordSet
		rowErrs []*RowError
		first   = true
	)

	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				rowErrs = append(rowErrs, &RowError{Line: pe.StartLine, Reason: pe.Err.Error()})
				first = false
				continue
			}
			return nil, err
		}

		line, _ := cr.FieldPos(0)

		if first {
			first = false
			if opts.Header.dropsFirst(fields) {
				continue
			}
		}

		rec, rowErr := toRecord(fields, line, opts)
		if rowErr != nil {
			rowErrs = append(rowErrs, rowErr)
			continue
		}
		records = append(records, rec)
	}

	if len(rowErrs) > 0 {
		return nil, &ValidationError{Rows: rowErrs}
	}
	return records, nil
}

func toRecord(fields []string, line int, opts Options) (Record, *RowError) {
	if len(fields) != len(columnNames) {
		return Record{}, &RowError{
			Line:   line,
			Reason: fmt.Sprintf("expected %d fields, got %d", len(columnNames), len(fields)),
		}
	}

	alias, nodeID, typeOfData := fields[0], fields[1], fields[2]

	if strings.TrimSpace(alias) == "" {
		return Record{}, &RowError{Line: line, Reason: "empty alias"}
	}
	if strings.TrimSpace(nodeID) == "" {
		return Record{}, &RowError{Line: line, Reason: fmt.Sprintf("empty node id for alias %q", alias)}
	}
	if opts.ValidateNodeIDs {
		if _, err := strconv.ParseUint(nodeID, 10, 32); err != nil {
			return Record{}, &RowError{
				Line:   line,
				Reason: fmt.Sprintf("node id %q of alias %q is not an unsigned 32-bit integer", nodeID, alias),
			}
		}
	}

	return Record{
		Alias:      alias,
		NodeID:     nodeID,
		TypeOfData: typeOfData,
		Category:   ParseCategory(typeOfData),
		Line:       line,
	}, nil
}
