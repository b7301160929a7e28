package credential

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks the user for a single line of input.
type Prompter interface {
	Prompt(message string) (string, error)
}

// TerminalPrompter prompts on Out and reads answers from In. When In is an
// interactive terminal the answer is read without echo.
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// NewTerminalPrompter returns a prompter reading from in and prompting on out.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{In: in, Out: out}
}

// Prompt writes message and returns the trimmed answer. It returns io.EOF
// when the input is exhausted before any answer is typed.
func (p *TerminalPrompter) Prompt(message string) (string, error) {
	fmt.Fprint(p.Out, message+" ")

	if f, ok := p.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.Out)
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
