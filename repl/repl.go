// Package repl runs the interactive prompt: one line at a time through
// the full scan/parse/resolve/run pipeline against a persistent
// interpreter, so definitions accumulate across lines. Errors are
// reported and the session goes on.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"glox"
)

const prompt = "> "

type Session struct {
	interp *glox.Interp
	hist   *History
	in     io.Reader
	out    io.Writer
}

// NewSession wires a prompt over in/out. hist may be nil to run without
// persistent history.
func NewSession(in io.Reader, out io.Writer, hist *History) *Session {
	return &Session{
		interp: glox.New(out),
		hist:   hist,
		in:     in,
		out:    out,
	}
}

func (s *Session) Run() error {
	scan := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, prompt)
		if !scan.Scan() {
			fmt.Fprintln(s.out)
			return scan.Err()
		}
		line := strings.TrimSpace(scan.Text())
		if line == "" {
			continue
		}
		if line == ":history" {
			s.showHistory()
			continue
		}
		if s.hist != nil {
			s.hist.Append(line)
		}
		s.eval(line)
	}
}

func (s *Session) eval(line string) {
	stmts, locals, errs := glox.Load(strings.NewReader(line))
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(s.out, err)
		}
		return
	}
	if err := s.interp.Run(stmts, locals); err != nil {
		fmt.Fprintln(s.out, err)
	}
}

func (s *Session) showHistory() {
	if s.hist == nil {
		fmt.Fprintln(s.out, "history not available")
		return
	}
	lines, err := s.hist.Lines()
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	for i, line := range lines {
		fmt.Fprintf(s.out, "%4d  %s\n", i+1, line)
	}
}
