package main

import (
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffLine is one line of a line-oriented diff. Op is '-', '+' or ' '.
type diffLine struct {
	Op   byte
	Text string
}

// lineDiff computes a line-level diff from old to new. Unchanged lines are
// kept so callers can show context.
func lineDiff(old, new string) []diffLine {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []diffLine
	for _, d := range diffs {
		op := byte(' ')
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op = '-'
		case diffmatchpatch.DiffInsert:
			op = '+'
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out = append(out, diffLine{Op: op, Text: strings.TrimSuffix(line, "\n")})
		}
	}
	return out
}

// diffContext is the number of unchanged lines shown around a change.
const diffContext = 2

// writeDiff prints changed lines with a little context. Runs of unchanged
// lines beyond the context are collapsed to "...".
func writeDiff(w io.Writer, lines []diffLine) {
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	near := func(i int) bool {
		for j := max(0, i-diffContext); j <= min(len(lines)-1, i+diffContext); j++ {
			if lines[j].Op != ' ' {
				return true
			}
		}
		return false
	}

	skipped := false
	for i, l := range lines {
		switch l.Op {
		case '-':
			red.Fprintln(w, "- "+l.Text)
		case '+':
			green.Fprintln(w, "+ "+l.Text)
		default:
			if !near(i) {
				if !skipped {
					io.WriteString(w, "  ...\n")
					skipped = true
				}
				continue
			}
			io.WriteString(w, "  "+l.Text+"\n")
		}
		skipped = false
	}
}
