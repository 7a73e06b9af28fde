// Command forthic runs Forthic programs and provides an interactive
// REPL.
//
// Usage:
//
//	forthic [-tz ZONE] [-e CODE] [FILE ...]
//
// Files are run in order. With -e the given code is run after any
// files. With no files and no -e, an interactive session starts; the
// stack is printed after each line and kept between lines.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	forthic "github.com/forthix/forthic-go"
	"github.com/forthix/forthic-go/stdlib"
)

func main() {
	tzName := flag.String("tz", "UTC", "IANA timezone for date and time words")
	code := flag.String("e", "", "run CODE after any files")
	flag.Parse()

	loc, err := time.LoadLocation(*tzName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "forthic: unknown timezone %q\n", *tzName)
		os.Exit(1)
	}

	interp := forthic.NewInterpreterWithTimezone(loc)
	stdlib.ImportAll(interp)

	ran := false
	for _, path := range flag.Args() {
		ran = true
		if err := runFile(interp, path); err != nil {
			fmt.Fprintln(os.Stderr, forthic.FormatWithContext(err))
			os.Exit(1)
		}
	}
	if *code != "" {
		ran = true
		if err := interp.RunWithLocation(*code, forthic.NewCodeLocation(1, 1, 0).WithSource("<command line>")); err != nil {
			fmt.Fprintln(os.Stderr, forthic.FormatWithContext(err))
			os.Exit(1)
		}
	}
	if ran {
		return
	}

	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		repl(interp)
	} else {
		runReader(interp, os.Stdin)
	}
}

func runFile(interp *forthic.Interpreter, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return interp.RunWithLocation(string(data), forthic.NewCodeLocation(1, 1, 0).WithSource(path))
}

// runReader runs piped input as a single program.
func runReader(interp *forthic.Interpreter, r io.Reader) {
	data, err := io.ReadAll(r)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := interp.RunWithLocation(string(data), forthic.NewCodeLocation(1, 1, 0).WithSource("<stdin>")); err != nil {
		fmt.Fprintln(os.Stderr, forthic.FormatWithContext(err))
		os.Exit(1)
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".forthic_history")
}

func repl(interp *forthic.Interpreter) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := historyPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	for n := 1; ; n++ {
		input, err := line.Prompt("forthic> ")
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			break
		}
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		loc := forthic.NewCodeLocation(n, 1, 0).WithSource("<repl>")
		if err := interp.RunWithLocation(input, loc); err != nil {
			fmt.Fprintln(os.Stderr, forthic.FormatWithContext(err))
			continue
		}
		printStack(interp)
	}

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}
	fmt.Println()
}

func printStack(interp *forthic.Interpreter) {
	stack := interp.GetStack()
	if stack.IsEmpty() {
		fmt.Println("<empty>")
		return
	}
	for i := 0; i < stack.Len(); i++ {
		v, _ := stack.Get(i)
		fmt.Printf("[%d] %s\n", stack.Len()-1-i, forthic.FormatValue(v))
	}
}
