package ux

import (
	"fmt"
	"io"
	"time"

	"github.com/jorge-barreto/contty/internal/caddyfile"
	"github.com/jorge-barreto/contty/internal/provision"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// RenderResult prints one line per hostname touched by a provisioning step.
func RenderResult(w io.Writer, path string, res *provision.Result) {
	for _, h := range res.Added {
		fmt.Fprintf(w, "%s[%s]%s  %s+ %s%s\n", Dim, timestamp(), Reset, Green, h, Reset)
	}
	for _, h := range res.Updated {
		fmt.Fprintf(w, "%s[%s]%s  %s~ %s%s\n", Dim, timestamp(), Reset, Yellow, h, Reset)
	}
	for _, h := range res.Removed {
		fmt.Fprintf(w, "%s[%s]%s  %s- %s%s\n", Dim, timestamp(), Reset, Red, h, Reset)
	}

	switch {
	case res.Written:
		fmt.Fprintf(w, "%s[%s]%s  %s✓ Wrote %s%s\n", Dim, timestamp(), Reset, Green, path, Reset)
	case res.Changed():
		fmt.Fprintf(w, "%s[%s]%s  %sDry run, %s not written%s\n", Dim, timestamp(), Reset, Dim, path, Reset)
	default:
		fmt.Fprintf(w, "%s[%s]%s  %s%s is up to date%s\n", Dim, timestamp(), Reset, Dim, path, Reset)
	}
}

// RenderDocument prints a summary of every block in doc.
func RenderDocument(w io.Writer, path string, doc *caddyfile.Document) {
	fmt.Fprintf(w, "%sCaddyfile:%s %s\n", Bold, Reset, path)
	fmt.Fprintf(w, "%sUnmanaged:%s %d lines\n", Bold, Reset, countNonBlank(doc.Unmanaged))

	fmt.Fprintf(w, "\n%sManual blocks:%s\n", Bold, Reset)
	if len(doc.Manual) == 0 {
		fmt.Fprintf(w, "  %s(none)%s\n", Dim, Reset)
	}
	for i, b := range doc.Manual {
		first := ""
		for _, l := range b.Lines {
			if l != "" {
				first = l
				break
			}
		}
		fmt.Fprintf(w, "  %s%d%s  %-40s %s(%d lines)%s\n", Dim, i+1, Reset, first, Dim, len(b.Lines), Reset)
	}

	fmt.Fprintf(w, "\n%sAutomatic blocks:%s\n", Bold, Reset)
	if len(doc.Automatic) == 0 {
		fmt.Fprintf(w, "  %s(none)%s\n", Dim, Reset)
	}
	for i, c := range doc.Automatic {
		fmt.Fprintf(w, "  %s%d%s  %-30s → %s%s:%s%s  %s%s%s\n",
			Dim, i+1, Reset, c.Hostname, Cyan, c.Service, c.Port, Reset, Dim, c.Email, Reset)
	}
}

// Error formats err the way the command line reports failures.
func Error(w io.Writer, err error) {
	fmt.Fprintf(w, "%serror:%s %v\n", Red, Reset, err)
}

func countNonBlank(lines []string) int {
	n := 0
	for _, l := range lines {
		if l != "" {
			n++
		}
	}
	return n
}
