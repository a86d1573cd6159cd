package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/RyanBlaney/voz-pura/quality"
	"github.com/RyanBlaney/voz-pura/refine"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#5F87AF")
	mutedColor   = lipgloss.Color("#888888")
	goodColor    = lipgloss.Color("#5FAF5F")
	badColor     = lipgloss.Color("#AF5F5F")
)

// Styles
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	keyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	goodStyle = lipgloss.NewStyle().
			Foreground(goodColor)

	badStyle = lipgloss.NewStyle().
			Foreground(badColor)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(badColor)
)

// printRankedTable renders records (already sorted by score) as a table
func printRankedTable(records []*quality.Record) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("%-4s %-40s %8s %8s %8s %8s",
		"#", "File", "Score", "Dur(s)", "SNR", "Silence")))

	for i, r := range records {
		name := r.Filename
		if len(name) > 40 {
			name = name[:37] + "..."
		}

		line := fmt.Sprintf("%-4d %-40s %8.0f %8.1f %8.1f %8.2f",
			i+1, name, r.QualityScore, r.Duration, r.SNREstimate, r.SilenceRatio)

		if r.QualityScore >= 60 {
			fmt.Println(goodStyle.Render(line))
		} else {
			fmt.Println(line)
		}
	}
}

// printRefineSummary renders the per-file refinement outcomes
func printRefineSummary(results []*refine.Result) {
	fmt.Println(headerStyle.Render("Refined clips"))

	for _, res := range results {
		fmt.Printf("%s %s %s\n",
			goodStyle.Render("✓"),
			valueStyle.Render(res.Output),
			keyStyle.Render(fmt.Sprintf("(%.1fs @ %d Hz, %s)",
				res.Duration, res.SampleRate, res.ProcessingTime.Round(10*time.Millisecond).String())))
	}

	fmt.Printf("\n%s %s\n", keyStyle.Render("Total:"),
		valueStyle.Render(fmt.Sprintf("%d files", len(results))))
}

// progressPrinter reports per-file progress as files finish. Workers call
// it concurrently, so counting is locked.
type progressPrinter struct {
	mu    sync.Mutex
	done  int
	total int
}

func newProgressPrinter(total int) *progressPrinter {
	return &progressPrinter{total: total}
}

func (p *progressPrinter) FileStarted(string) {}

func (p *progressPrinter) FileFinished(path string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	if err != nil {
		fmt.Printf("%s [%d/%d] %s: %v\n", badStyle.Render("✗"), p.done, p.total, path, err)
		return
	}
	fmt.Printf("%s [%d/%d] %s\n", keyStyle.Render("•"), p.done, p.total, path)
}
