package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar shows live run progress on stderr. Off a terminal it is a
// no-op so CI logs stay clean.
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a progress bar over the given test-file count.
func NewProgressBar(count int) *ProgressBar {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return &ProgressBar{}
	}
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(
			color.CyanString("Running tests: ")+
				color.GreenString("[pass: 0")+
				" | "+
				color.RedString("fail: 0]"),
		),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
	return &ProgressBar{bar: bar}
}

// Update sets the completed-file position and the live case counts.
func (p *ProgressBar) Update(completedFiles, passedCases, failedCases int) {
	if p.bar == nil {
		return
	}
	p.bar.Set(completedFiles)
	p.bar.Describe(
		color.CyanString("Running tests: ") +
			color.GreenString("[pass: %d", passedCases) +
			" | " +
			color.RedString("fail: %d]", failedCases),
	)
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	if p.bar == nil {
		return
	}
	p.bar.Finish()
}
