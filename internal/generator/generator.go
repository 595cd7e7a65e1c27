// Package generator turns a node id registry into the alias table header.
//
// A run reads the registry once, hands the parsed records to an optional
// observer (the CLI prints its diagnostic preview from there), renders the
// header and replaces the destination file with it.
package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/nodesetexporter/aliasmap/internal/header"
	"github.com/nodesetexporter/aliasmap/internal/nodeids"
)

// Errors returned by the generator.
var (
	ErrNoSource = errors.New("node id registry path is required")
	ErrNoHeader = errors.New("header output path is required")
	ErrStale    = errors.New("header is out of date")
)

// headerFileMode is used when the header is created.
const headerFileMode = 0o644

// Config holds everything a run needs. There is no ambient state.
type Config struct {
	SourcePath string
	HeaderPath string
	Parse      nodeids.Options
	Logger     *slog.Logger

	// OnParsed, if set, receives the full record set after parsing and
	// before anything is written. It must not modify the records.
	OnParsed func(nodeids.RecordSet)
}

// Result describes a finished run.
type Result struct {
	SourcePath string
	HeaderPath string
	Naming     header.Naming
	Counts     nodeids.Counts
	Bytes      int
	// Changed is true when the rendered header differs from the file that
	// was on disk before the run (or no file existed).
	Changed bool
}

// Generator renders the alias header for one registry/output pair.
type Generator struct {
	cfg    Config
	logger *slog.Logger
}

// New validates cfg and returns a Generator.
func New(cfg Config) (*Generator, error) {
	if cfg.SourcePath == "" {
		return nil, ErrNoSource
	}
	if cfg.HeaderPath == "" {
		return nil, ErrNoHeader
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Generator{cfg: cfg, logger: logger}, nil
}

// Load parses the registry.
func (g *Generator) Load(ctx context.Context) (nodeids.RecordSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := nodeids.ParseFile(g.cfg.SourcePath, g.cfg.Parse)
	if err != nil {
		return nil, err
	}

	counts := records.Count()
	g.logger.Debug("registry parsed",
		"path", g.cfg.SourcePath,
		"records", counts.Total,
		"data_types", counts.DataTypes,
		"reference_types", counts.ReferenceTypes,
		"other", counts.Other)

	return records, nil
}

// Render parses the registry and returns the header bytes without writing.
func (g *Generator) Render(ctx context.Context) ([]byte, *Result, error) {
	records, err := g.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	if g.cfg.OnParsed != nil {
		g.cfg.OnParsed(records)
	}

	naming := header.DeriveNaming(g.cfg.HeaderPath)
	out := header.Bytes(header.Build(records, naming))

	return out, &Result{
		SourcePath: g.cfg.SourcePath,
		HeaderPath: g.cfg.HeaderPath,
		Naming:     naming,
		Counts:     records.Count(),
		Bytes:      len(out),
	}, nil
}

// Run regenerates the header, replacing the destination file entirely.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	out, res, err := g.Render(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := readExisting(g.cfg.HeaderPath)
	if err != nil {
		return nil, err
	}
	res.Changed = existing == nil || !bytes.Equal(existing, out)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.WriteFile(g.cfg.HeaderPath, out, headerFileMode); err != nil { //nolint:gosec // generated header is a checked-in source file
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	g.logger.Info("header generated",
		"path", g.cfg.HeaderPath,
		"guard", res.Naming.Guard,
		"namespace", res.Naming.Namespace,
		"changed", res.Changed)

	return res, nil
}

// Check renders the header and compares it with the file on disk. It
// returns ErrStale if they differ or the file does not exist.
func (g *Generator) Check(ctx context.Context) (*Result, error) {
	out, res, err := g.Render(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := readExisting(g.cfg.HeaderPath)
	if err != nil {
		return nil, err
	}
	res.Changed = existing == nil || !bytes.Equal(existing, out)

	if res.Changed {
		g.logger.Debug("header differs from registry", "path", g.cfg.HeaderPath)
		return res, fmt.Errorf("%w: %s", ErrStale, g.cfg.HeaderPath)
	}
	return res, nil
}

// readExisting returns the current header contents, or nil if there is none.
func readExisting(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // output path comes from the operator
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read existing header: %w", err)
	}
	return data, nil
}
