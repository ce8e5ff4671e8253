package progrock

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/vito/progrock"
)

var _ progrock.Writer = (*Reporter)(nil)

// Status colors.
var (
	green  = lipgloss.Color("#22A06B")
	red    = lipgloss.Color("#D93025")
	slate  = lipgloss.Color("#667085")
	yellow = lipgloss.Color("#F59E0B")
)

// Status icons.
const (
	iconBuilt  = "✓"
	iconFailed = "✗"
	iconReused = "~"
	iconLog    = "!"
)

// Reporter is a progrock.Writer that prints one line per finished vertex
// and forwards vertex logs. A vertex recorded again and completed later is
// reported again, so one Reporter serves repeated builds.
type Reporter struct {
	mu    sync.Mutex
	out   io.Writer
	names map[string]string
	done  map[string]time.Time

	built  lipgloss.Style
	failed lipgloss.Style
	reused lipgloss.Style
	log    lipgloss.Style
}

// NewReporter creates a Reporter writing to out. Colors are used only when
// out is a terminal and NO_COLOR is unset.
func NewReporter(out io.Writer) *Reporter {
	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(ColorProfile(out))

	return &Reporter{
		out:    out,
		names:  make(map[string]string),
		done:   make(map[string]time.Time),
		built:  r.NewStyle().Foreground(green),
		failed: r.NewStyle().Foreground(red).Bold(true),
		reused: r.NewStyle().Foreground(slate),
		log:    r.NewStyle().Foreground(yellow),
	}
}

// ColorProfile returns the color profile for out.
func ColorProfile(out io.Writer) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.NewOutput(out).EnvColorProfile()
}

// WriteStatus prints the vertices completed by update.
func (r *Reporter) WriteStatus(update *progrock.StatusUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, v := range update.Vertexes {
		r.names[v.Id] = v.Name
		if v.Completed == nil {
			continue
		}
		completed := v.Completed.AsTime()
		if last, ok := r.done[v.Id]; ok && last.Equal(completed) {
			continue
		}
		r.done[v.Id] = completed

		var err error
		switch {
		case v.Error != nil:
			_, err = fmt.Fprintf(r.out, "%s failed  %s: %s\n", r.failed.Render(iconFailed), v.Name, *v.Error)
		case v.Cached:
			_, err = fmt.Fprintf(r.out, "%s reused  %s\n", r.reused.Render(iconReused), v.Name)
		default:
			_, err = fmt.Fprintf(r.out, "%s built   %s\n", r.built.Render(iconBuilt), v.Name)
		}
		if err != nil {
			return err
		}
	}

	for _, l := range update.Logs {
		if _, err := fmt.Fprintf(r.out, "%s %s: %s", r.log.Render(iconLog), r.names[l.Vertex], l.Data); err != nil {
			return err
		}
	}
	return nil
}

// Close does nothing; the output is owned by the caller.
func (r *Reporter) Close() error {
	return nil
}
