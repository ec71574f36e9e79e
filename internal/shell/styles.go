// ABOUTME: Terminal styles for the interactive shell in the Choco-dev palette
// ABOUTME: Styles are bound to the output writer so non-terminals get plain text
package shell

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Chocolate palette
var (
	Cocoa    = lipgloss.Color("#7B3F00")
	Caramel  = lipgloss.Color("#D2691E")
	Cream    = lipgloss.Color("#FFF8DC")
	Mint     = lipgloss.Color("#3EB489")
	Cherry   = lipgloss.Color("#D2042D")
	Powdered = lipgloss.Color("#A89F91")
)

// Styles groups every style the shell prints with
type Styles struct {
	Banner  lipgloss.Style
	User    lipgloss.Style
	Kit     lipgloss.Style
	Body    lipgloss.Style
	Summary lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles creates styles rendered for w
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Banner: r.NewStyle().
			Foreground(Caramel).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Cocoa).
			Padding(0, 2),

		User: r.NewStyle().
			Foreground(Cream).
			Bold(true),

		Kit: r.NewStyle().
			Foreground(Caramel).
			Bold(true),

		Body: r.NewStyle(),

		Summary: r.NewStyle().
			Foreground(Mint),

		Error: r.NewStyle().
			Foreground(Cherry),

		Muted: r.NewStyle().
			Foreground(Powdered).
			Italic(true),
	}
}
