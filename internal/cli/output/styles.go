package output

import "github.com/charmbracelet/lipgloss"

// Status icons.
const (
	IconSuccess = "✓"
	IconWarning = "!"
	IconFailure = "✗"
)

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	Header        lipgloss.Style
	Muted         lipgloss.Style
	Success       lipgloss.Style
	Warning       lipgloss.Style
	Error         lipgloss.Style
	Key           lipgloss.Style
	DataType      lipgloss.Style
	ReferenceType lipgloss.Style
}

// NewStyles builds styles bound to lr, so color output follows the
// renderer's color profile.
func NewStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Header:        lr.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Muted:         lr.NewStyle().Foreground(lipgloss.Color("8")),
		Success:       lr.NewStyle().Foreground(lipgloss.Color("10")),
		Warning:       lr.NewStyle().Foreground(lipgloss.Color("11")),
		Error:         lr.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Key:           lr.NewStyle().Bold(true),
		DataType:      lr.NewStyle().Foreground(lipgloss.Color("14")),
		ReferenceType: lr.NewStyle().Foreground(lipgloss.Color("13")),
	}
}
