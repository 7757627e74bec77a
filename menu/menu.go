// Package menu runs the interactive numbered menu. Each entry dispatches a
// handler; one or more space-separated selections are accepted per line and
// run in order. A failing handler never breaks the loop.
package menu

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"dts/tools"
	"dts/version"
)

type Entry struct {
	Title string
	// Tool provides version information for the label when set.
	Tool tools.ToolManager
	Run  func() error
}

type Menu struct {
	Entries []Entry
	In      io.Reader
	Out     io.Writer
}

func New(entries []Entry) *Menu {
	return &Menu{
		Entries: entries,
		In:      os.Stdin,
		Out:     os.Stdout,
	}
}

// label decorates a title with the install state. Version probes are
// display-only; any failure falls back to "not installed".
func label(e Entry) string {
	reporter, ok := e.Tool.(tools.VersionReporter)
	if !ok {
		return e.Title
	}

	current, err := reporter.CurrentVersion()
	if err != nil {
		current = ""
	}
	latest, err := reporter.LatestVersion()
	if err != nil {
		latest = ""
	}

	switch version.Compare(current, latest) {
	case version.Newer:
		return pterm.FgYellow.Sprintf("Update %s (%s -> %s)", e.Title, version.Normalize(current), version.Normalize(latest))
	case version.OlderOrEqual:
		return pterm.FgGreen.Sprintf("%s (%s installed)", e.Title, version.Normalize(current))
	}
	return pterm.FgCyan.Sprint("Install " + e.Title)
}

func (m *Menu) render() {
	fmt.Fprintln(m.Out)
	for i, e := range m.Entries {
		fmt.Fprintf(m.Out, "%2d) %s\n", i+1, label(e))
	}
	fmt.Fprintf(m.Out, " 0) Exit\n")
	fmt.Fprint(m.Out, "Select option(s): ")
}

// ParseSelections turns a line of space-separated numbers into menu
// indexes, validated against [0, max].
func ParseSelections(line string, max int) ([]int, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("no selection entered")
	}

	var selections []int
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("'%s' is not a valid menu option", f)
		}
		if n < 0 || n > max {
			return nil, fmt.Errorf("option %d is out of range (0-%d)", n, max)
		}
		selections = append(selections, n)
	}
	return selections, nil
}

// Run loops until the exit entry is selected or input ends. Handlers run to
// completion, one at a time, in the order selected.
func (m *Menu) Run() error {
	scanner := bufio.NewScanner(m.In)
	for {
		m.render()

		if !scanner.Scan() {
			return scanner.Err()
		}

		selections, err := ParseSelections(scanner.Text(), len(m.Entries))
		if err != nil {
			pterm.Println(pterm.FgRed.Sprint(err.Error()))
			continue
		}

		for _, n := range selections {
			if n == 0 {
				return nil
			}
			entry := m.Entries[n-1]
			if err := entry.Run(); err != nil {
				slog.Error(entry.Title + ": " + err.Error())
			}
		}
	}
}
