package rewrite

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// renderDiff produces a line-oriented unified-ish rendering of the change for
// dry-run output. Unchanged regions are elided down to the lines touching a
// change.
func renderDiff(before, after string) string {
	dmp := diffmatchpatch.New()

	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			writePrefixed(&sb, "-", d.Text)
		case diffmatchpatch.DiffInsert:
			writePrefixed(&sb, "+", d.Text)
		case diffmatchpatch.DiffEqual:
			// keep one line of context on each side
			eq := strings.SplitAfter(d.Text, "\n")
			if len(eq) > 0 && eq[len(eq)-1] == "" {
				eq = eq[:len(eq)-1]
			}
			if len(eq) <= 2 {
				writePrefixed(&sb, " ", d.Text)
				continue
			}
			writePrefixed(&sb, " ", eq[0])
			sb.WriteString(" ...\n")
			writePrefixed(&sb, " ", eq[len(eq)-1])
		}
	}
	return sb.String()
}

func writePrefixed(sb *strings.Builder, prefix, chunk string) {
	for _, line := range strings.SplitAfter(chunk, "\n") {
		if line == "" {
			continue
		}
		sb.WriteString(prefix)
		sb.WriteString(" ")
		sb.WriteString(strings.TrimSuffix(line, "\n"))
		sb.WriteString("\n")
	}
}
