package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"

	"glox"
	"glox/repl"
)

const (
	exitUsage   = 64
	exitStatic  = 65
	exitRuntime = 70
)

func main() {
	var (
		dumpTokens bool
		dumpAST    bool
	)
	opts, optind, err := getopt.Getopts(os.Args, "tah")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		os.Exit(exitUsage)
	}
	for _, opt := range opts {
		switch opt.Option {
		case 't':
			dumpTokens = true
		case 'a':
			dumpAST = true
		case 'h':
			usage()
			return
		}
	}
	args := os.Args[optind:]
	switch {
	case len(args) > 1:
		usage()
		os.Exit(exitUsage)
	case len(args) == 1:
		runFile(args[0], dumpTokens, dumpAST)
	default:
		runPrompt()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: glox [-t | -a] [script]")
	fmt.Fprintln(os.Stderr, "  -t  dump the token stream and exit")
	fmt.Fprintln(os.Stderr, "  -a  dump the parsed syntax tree and exit")
}

func runFile(path string, dumpTokens, dumpAST bool) {
	r, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer r.Close()
	switch {
	case dumpTokens:
		scanFile(r)
	case dumpAST:
		parseFile(r)
	default:
		execFile(r)
	}
}

func scanFile(r io.Reader) {
	tokens, err := glox.Scan(r)
	if err != nil {
		fail(err)
		os.Exit(exitStatic)
	}
	for _, tok := range tokens {
		fmt.Println(tok)
	}
}

func parseFile(r io.Reader) {
	tokens, err := glox.Scan(r)
	if err != nil {
		fail(err)
		os.Exit(exitStatic)
	}
	stmts, errs := glox.Parse(tokens)
	if len(errs) > 0 {
		for _, err := range errs {
			fail(err)
		}
		os.Exit(exitStatic)
	}
	for _, s := range stmts {
		fmt.Println(glox.FormatStmt(s))
	}
}

func execFile(r io.Reader) {
	stmts, locals, errs := glox.Load(r)
	if len(errs) > 0 {
		for _, err := range errs {
			fail(err)
		}
		os.Exit(exitStatic)
	}
	ip := glox.New(os.Stdout)
	if err := ip.Run(stmts, locals); err != nil {
		fail(err)
		os.Exit(exitRuntime)
	}
}

func runPrompt() {
	hist, err := repl.OpenHistory(historyPath())
	if err != nil {
		// run without persistent history rather than refuse to start
		hist = nil
	} else {
		defer hist.Close()
	}
	sess := repl.NewSession(os.Stdin, os.Stdout, hist)
	if err := sess.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".glox_history"
	}
	return filepath.Join(home, ".glox_history")
}

func fail(err error) {
	color.New(color.FgRed).Fprintln(os.Stderr, err)
}
