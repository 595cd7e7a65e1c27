// Package output renders CLI output for terminals, pipes and machines.
//
// Text mode is styled for a terminal, markdown is the plain default when
// output is piped, and json/yaml emit a single document on stdout with all
// progress lines moved to stderr.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// OutputMode selects how output is rendered.
type OutputMode string //nolint:revive // output.OutputMode reads fine at call sites

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
	ModeYAML     OutputMode = "yaml"
)

// Mode converts a config string to an OutputMode. Unknown values are auto.
func Mode(s string) OutputMode {
	switch m := OutputMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeText, ModeMarkdown, ModeJSON, ModeYAML:
		return m
	default:
		return ModeAuto
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   OutputMode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	lr := lipgloss.NewRenderer(out)
	if !isTTY || termenv.EnvNoColor() {
		lr.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		styles: NewStyles(lr),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// EffectiveMode resolves auto: text on a terminal, markdown otherwise.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode == ModeAuto || r.mode == "" {
		if r.isTTY {
			return ModeText
		}
		return ModeMarkdown
	}
	return r.mode
}

// Structured reports whether output is a machine-readable document.
func (r *Renderer) Structured() bool {
	m := r.EffectiveMode()
	return m == ModeJSON || m == ModeYAML
}

// Styles returns the renderer's styles.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// statusWriter is where progress lines go: stdout, or stderr when stdout
// carries a structured document.
func (r *Renderer) statusWriter() io.Writer {
	if r.Structured() {
		return r.errOut
	}
	return r.out
}

// Println writes a line to stdout.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Status writes a progress line.
func (r *Renderer) Status(format string, a ...any) {
	_, _ = fmt.Fprintf(r.statusWriter(), format+"\n", a...)
}

// Header writes a section header.
func (r *Renderer) Header(level int, text string) {
	w := r.statusWriter()
	if r.EffectiveMode() == ModeText {
		_, _ = fmt.Fprintln(w, r.styles.Header.Render(text))
		return
	}
	_, _ = fmt.Fprintln(w, FormatHeader(level, text))
}

// Muted writes de-emphasized text.
func (r *Renderer) Muted(text string) {
	w := r.statusWriter()
	if r.EffectiveMode() == ModeText {
		_, _ = fmt.Fprintln(w, r.styles.Muted.Render(text))
		return
	}
	_, _ = fmt.Fprintln(w, text)
}

// Success writes a success line.
func (r *Renderer) Success(text string) {
	w := r.statusWriter()
	if r.EffectiveMode() == ModeText {
		_, _ = fmt.Fprintln(w, r.styles.Success.Render(IconSuccess+" "+text))
		return
	}
	_, _ = fmt.Fprintln(w, "**"+text+"**")
}

// Warning writes a warning line.
func (r *Renderer) Warning(text string) {
	w := r.statusWriter()
	if r.EffectiveMode() == ModeText {
		_, _ = fmt.Fprintln(w, r.styles.Warning.Render(IconWarning+" "+text))
		return
	}
	_, _ = fmt.Fprintln(w, "> **Warning:** "+text)
}

// Failure writes a failure line.
func (r *Renderer) Failure(text string) {
	w := r.statusWriter()
	if r.EffectiveMode() == ModeText {
		_, _ = fmt.Fprintln(w, r.styles.Error.Render(IconFailure+" "+text))
		return
	}
	_, _ = fmt.Fprintln(w, "> **Error:** "+text)
}

// KeyValue writes a labelled value.
func (r *Renderer) KeyValue(key, value string) {
	w := r.statusWriter()
	if r.EffectiveMode() == ModeText {
		_, _ = fmt.Fprintln(w, r.styles.Key.Render(key+":")+" "+value)
		return
	}
	_, _ = fmt.Fprintln(w, FormatKeyValue(key, value))
}

// JSON writes v as indented JSON to stdout.
func (r *Renderer) JSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(r.out, string(data))
	return err
}

// YAML writes v as YAML to stdout.
func (r *Renderer) YAML(v any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

// Document writes v in the structured mode in effect (JSON or YAML).
func (r *Renderer) Document(v any) error {
	if r.EffectiveMode() == ModeYAML {
		return r.YAML(v)
	}
	return r.JSON(v)
}

// FormatHeader formats a markdown header.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue formats a markdown key/value line.
func FormatKeyValue(key, value string) string {
	return "**" + key + ":** " + value
}
