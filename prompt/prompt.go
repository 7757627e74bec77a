// Package prompt gates side-effecting operations behind a yes/no question.
package prompt

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

type Prompter struct {
	In io.Reader
	// Force answers every question affirmatively without reading input.
	Force bool
}

var Default = &Prompter{In: os.Stdin}

// Confirm prints the question and reads one line. A leading "y" or "Y" is
// affirmative; everything else, including empty input, is negative.
func (p *Prompter) Confirm(question string) bool {
	if p.Force {
		return true
	}

	pterm.Print(pterm.FgYellow.Sprint(question) + " [y/N] ")

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	line = strings.TrimSpace(line)
	return strings.HasPrefix(line, "y") || strings.HasPrefix(line, "Y")
}

func Confirm(question string) bool {
	return Default.Confirm(question)
}
