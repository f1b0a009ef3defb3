package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// spacer indents every line of command output.
const spacer = "    "

// printer writes indented, optionally coloured lines. Colours are only
// emitted when out is a terminal that supports them.
type printer struct {
	out   io.Writer
	debug lipgloss.Style
	warn  lipgloss.Style
	fail  lipgloss.Style
	title lipgloss.Style
}

func newPrinter(out io.Writer) *printer {
	r := lipgloss.NewRenderer(out)
	return &printer{
		out:   out,
		debug: r.NewStyle().Foreground(lipgloss.Color("2")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("3")),
		fail:  r.NewStyle().Foreground(lipgloss.Color("1")),
		title: r.NewStyle().Bold(true),
	}
}

func (p *printer) line(style *lipgloss.Style, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	for _, l := range strings.Split(msg, "\n") {
		if style != nil {
			l = style.Render(l)
		}
		fmt.Fprintln(p.out, spacer+l)
	}
}

func (p *printer) printf(format string, args ...interface{}) {
	p.line(nil, format, args...)
}

func (p *printer) debugf(format string, args ...interface{}) {
	p.line(&p.debug, "DEBUG: "+format, args...)
}

func (p *printer) warnf(format string, args ...interface{}) {
	p.line(&p.warn, format, args...)
}

func (p *printer) failf(format string, args ...interface{}) {
	p.line(&p.fail, format, args...)
}

func (p *printer) titlef(format string, args ...interface{}) {
	p.line(&p.title, format, args...)
}

// prompt is written without a newline or indent.
func (p *printer) prompt() {
	fmt.Fprint(p.out, "> ")
}
