package cmd

import (
	"fmt"
	"io"
	"os"
)

// Console output shared by every command. Diagnostics from the generator go
// through zap on stderr; these lines are the user-facing report.
//
//	✓  ok / written
//	✗  failed (stderr)
//	⚠  warning
//	○  unchanged
//	~  info
const (
	iconOK   = "✓"
	iconErr  = "✗"
	iconWarn = "⚠"
	iconSkip = "○"
	iconInfo = "~"
)

func printSection(title string) {
	fmt.Printf("\n=== %s ===\n", title)
}

// printGroup starts a group of lines, e.g. "[ validation ]".
func printGroup(title string) {
	fmt.Printf("\n[ %s ]\n", title)
}

// printLine writes "  icon  msg", or "  icon  [name] msg" when name is set.
func printLine(w io.Writer, icon, name, msg string) {
	if name != "" {
		msg = "[" + name + "] " + msg
	}
	fmt.Fprintf(w, "  %s  %s\n", icon, msg)
}

func printOK(name, msg string)   { printLine(os.Stdout, iconOK, name, msg) }
func printErr(name, msg string)  { printLine(os.Stderr, iconErr, name, msg) }
func printWarn(name, msg string) { printLine(os.Stdout, iconWarn, name, msg) }
func printSkip(name, msg string) { printLine(os.Stdout, iconSkip, name, msg) }
func printInfo(name, msg string) { printLine(os.Stdout, iconInfo, name, msg) }

// printSummary closes a report with a rule and a final verdict line.
func printSummary(ok bool, pass, fail string) {
	fmt.Println()
	fmt.Println("===================")
	if ok {
		fmt.Printf("%s  %s\n", iconOK, pass)
		return
	}
	fmt.Fprintf(os.Stderr, "%s  %s\n", iconErr, fail)
}
