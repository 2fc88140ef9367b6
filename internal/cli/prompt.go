package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompter asks questions on an interactive terminal
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int // Terminal file descriptor, or -1
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &prompter{in: bufio.NewReader(in), out: out, fd: fd}
}

// ask reads one trimmed line. Empty answers are asked again when required.
func (p *prompter) ask(label string, required bool) (string, error) {
	for {
		fmt.Fprint(p.out, label)
		line, err := p.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if err == io.EOF && line == "" {
			return "", fmt.Errorf("%s %w", strings.TrimSpace(label), io.ErrUnexpectedEOF)
		}
		if err != nil && err != io.EOF {
			return "", err
		}
		if line != "" || !required {
			return line, nil
		}
	}
}

// secret reads a line without echo when stdin is a terminal
func (p *prompter) secret(label string) (string, error) {
	if p.fd < 0 {
		return p.ask(label, true)
	}
	fmt.Fprint(p.out, label)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
