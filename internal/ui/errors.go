package ui

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"wptr/internal/config"
	"wptr/internal/domain"
	"wptr/internal/storage"
)

// ErrorViewer displays the last run's divergent cases in an interactive
// TUI: failure list on the left, details on the right. Entries can be
// marked resolved; the marks persist into the summary file.
type ErrorViewer struct {
	config  *config.Config
	storage storage.Storage
}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer(cfg *config.Config, st storage.Storage) *ErrorViewer {
	return &ErrorViewer{
		config:  cfg,
		storage: st,
	}
}

// View displays the summary's failures. A clean run prints a line and
// returns without entering the TUI.
func (ev *ErrorViewer) View(summary *domain.RunSummary) error {
	if len(summary.Details) == 0 {
		color.Green("✓ no divergence recorded in the last run")
		return nil
	}

	resolved := make(map[int]bool)
	for i, failure := range summary.Details {
		if failure.Resolved {
			resolved[i] = true
		}
	}

	saveResolved := func() error {
		for i := range summary.Details {
			summary.Details[i].Resolved = resolved[i]
		}
		return ev.storage.SaveSummary(summary)
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(true).
		SetHighlightFullLine(true)

	itemText := func(index int) (string, string) {
		failure := summary.Details[index]
		name := failure.CaseName
		if name == "" {
			name = fmt.Sprintf("failure %d", index+1)
		}
		marker := ""
		if resolved[index] {
			marker = "[gray]✓ "
		}
		if failure.ExpectedToFail {
			name += " [yellow](expected to fail, passed)"
		}
		return fmt.Sprintf("%s[yellow]%d.[white] %s", marker, index+1, name), "  " + failure.FilePath
	}

	for i := range summary.Details {
		main, secondary := itemText(i)
		list.AddItem(main, secondary, 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	details := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)
	details.SetBorder(true).SetTitle(" details ")

	showDetails := func(index int) {
		if index < 0 || index >= len(summary.Details) {
			return
		}
		failure := summary.Details[index]
		text := fmt.Sprintf("[yellow]case:[white] %s\n[yellow]file:[white] %s\n\n[yellow]message:[white]\n%s",
			failure.CaseName, failure.FilePath, failure.Message)
		if failure.Stack != "" {
			text += fmt.Sprintf("\n\n[yellow]stack:[white]\n%s", failure.Stack)
		}
		details.SetText(text).ScrollToBeginning()
	}
	list.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		showDetails(index)
	})
	showDetails(0)

	header := tview.NewTextView().
		SetDynamicColors(true).
		SetText(fmt.Sprintf("[red]%d[white] divergent case(s) from %s  [gray](r: toggle resolved, q: quit)",
			len(summary.Details), summary.Meta.Timestamp))

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(tview.NewFlex().
			AddItem(list, 0, 1, true).
			AddItem(details, 0, 2, false), 0, 1, true)

	var viewErr error
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Rune() == 'q' || event.Key() == tcell.KeyEscape:
			app.Stop()
			return nil
		case event.Rune() == 'r':
			index := list.GetCurrentItem()
			resolved[index] = !resolved[index]
			main, secondary := itemText(index)
			list.SetItemText(index, main, secondary)
			if err := saveResolved(); err != nil {
				viewErr = err
				app.Stop()
			}
			return nil
		}
		return event
	})

	if err := app.SetRoot(flex, true).Run(); err != nil {
		return err
	}
	return viewErr
}
