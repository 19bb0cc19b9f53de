package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"wptr/internal/analysis"
	"wptr/internal/config"
	"wptr/internal/domain"
)

// Formatter renders run output on the console.
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// PrintFileResult prints one file line. Clean files are suppressed in
// quiet mode.
func (f *Formatter) PrintFileResult(outcome analysis.FileOutcome) {
	switch {
	case !outcome.Diverged():
		if f.config.Flags.Quiet {
			return
		}
		color.Green("ok   %s", outcome.Test.Path)
	case outcome.Status == analysis.StatusCrash || outcome.Status == analysis.StatusError:
		color.Red("%-4s %s", strings.ToLower(string(outcome.Status)), outcome.Test.Path)
	default:
		color.Red("fail %s", outcome.Test.Path)
	}
}

// PrintSummary prints the run totals, every genuinely failing case and
// every fully failing file.
func (f *Formatter) PrintSummary(run analysis.RunAnalysis, meta domain.RunSummaryMeta) {
	fmt.Println()
	color.Cyan("══════════════ run summary ══════════════")
	fmt.Printf("files: %d total, ", meta.TotalFiles)
	color.New(color.FgGreen).Printf("%d passed", meta.PassedFiles)
	fmt.Print(", ")
	color.New(color.FgRed).Printf("%d failed", meta.FailedFiles)
	fmt.Println()
	fmt.Printf("cases: %d total, ", meta.TotalCases)
	color.New(color.FgGreen).Printf("%d passed", meta.PassedCases)
	fmt.Print(", ")
	color.New(color.FgRed).Printf("%d failed", meta.FailedCases)
	fmt.Print(", ")
	color.New(color.FgYellow).Printf("%d expected failures", meta.ExpectedFailures)
	fmt.Println()
	fmt.Printf("duration: %s, workers: %d\n", meta.Duration, meta.Workers)

	if meta.FailedFiles == 0 {
		fmt.Println()
		color.Green("✓ all tests matched the baseline")
		return
	}

	fmt.Println()
	color.Red("✗ %d file(s) diverged from the baseline", meta.FailedFiles)
	f.printDivergenceTree(run)
}

// printDivergenceTree shows diverged files as a path tree with their
// offending cases underneath.
func (f *Formatter) printDivergenceTree(run analysis.RunAnalysis) {
	root := newTreeNode()
	for _, file := range run.Files {
		if !file.Diverged() {
			continue
		}
		node := root
		for _, part := range strings.Split(strings.TrimPrefix(file.Test.Path, "/"), "/") {
			child := node.children[part]
			if child == nil {
				child = newTreeNode()
				node.children[part] = child
			}
			node = child
		}
		if !file.Result.Harnessed() {
			node.notes = append(node.notes, strings.ToLower(string(file.Status)))
			continue
		}
		for _, name := range file.Analysis.Failed {
			node.notes = append(node.notes, name)
		}
		for _, name := range file.Analysis.ExpectedFailedButPassed {
			node.notes = append(node.notes, name+" (expected to fail, passed)")
		}
	}
	printTreeNode(root, "")
}

type treeNode struct {
	children map[string]*treeNode
	notes    []string
}

func newTreeNode() *treeNode {
	return &treeNode{children: map[string]*treeNode{}}
}

func printTreeNode(node *treeNode, indent string) {
	keys := make([]string, 0, len(node.children))
	for k := range node.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		child := node.children[key]
		if len(child.children) == 0 {
			color.Yellow("%s%s", indent, key)
		} else {
			color.Cyan("%s%s", indent, key)
		}
		for _, note := range child.notes {
			color.Red("%s  ✗ %s", indent, note)
		}
		printTreeNode(child, indent+"  ")
	}
}

// PrintTestList prints discovered tests, optionally with their
// expectations.
func (f *Formatter) PrintTestList(tests []domain.TestToRun, showExpectations bool) {
	color.Green("Found %d test(s):\n", len(tests))
	for _, t := range tests {
		if !showExpectations {
			color.Cyan("%s", t.Path)
			continue
		}
		switch {
		case t.Expectation.FailCases != nil:
			color.Cyan("%s %s", t.Path, color.YellowString("(expected failures: %s)", strings.Join(t.Expectation.FailCases, ", ")))
		case t.Expectation.Pass:
			color.Cyan("%s %s", t.Path, color.GreenString("(pass)"))
		default:
			color.Cyan("%s %s", t.Path, color.RedString("(fail)"))
		}
	}
}
