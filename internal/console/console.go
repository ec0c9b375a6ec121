// Package console is the operator's terminal: prompts go out, trimmed lines
// come back. The shell only talks to the Port interface so it can be driven
// by scripted input in tests.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Port is the interactive input/output surface used by the shell.
type Port interface {
	// Prompt prints label and returns the next input line without
	// surrounding whitespace. It returns io.EOF once input is exhausted.
	Prompt(label string) (string, error)
	Printf(format string, args ...any)
	Println(args ...any)
}

// Terminal reads whole lines of any length; a final line without a
// trailing newline is still returned before io.EOF.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

func (t *Terminal) Prompt(label string) (string, error) {
	fmt.Fprint(t.out, label)
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (t *Terminal) Printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

func (t *Terminal) Println(args ...any) {
	fmt.Fprintln(t.out, args...)
}
