package repl

import (
	"context"
	"strings"

	"github.com/fatih/color"
)

// handleCommand dispatches a line beginning with ":" to the corresponding
// spec.md §6 REPL command. It returns true iff the session should end.
func (r *REPL) handleCommand(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	cmd := fields[0]

	switch cmd {
	case ":s", ":store":
		r.mode = modeStore
		r.printlnColor(color.FgCyan, "mode: store")

	case ":c", ":check":
		r.mode = modeCheck
		r.printlnColor(color.FgCyan, "mode: check")

	case ":show":
		r.printlnColor(color.FgWhite, r.eng.KB().Render())

	case ":clear":
		if r.stream != nil {
			r.printlnColor(color.FgYellow, "cannot clear the knowledge base while a query is in progress; use :d first")
			return false
		}
		r.eng.Clear()
		r.printlnColor(color.FgGreen, "knowledge base cleared")

	case ":o", ":occurs":
		if r.stream != nil {
			r.printlnColor(color.FgYellow, "cannot toggle occurs check while a query is in progress; use :d first")
			return false
		}
		r.eng.SetOccursCheck(!r.eng.OccursCheck())
		r.printlnColor(color.FgCyan, boolLabel("occurs check", r.eng.OccursCheck()))

	case ":predicates":
		r.printlnColor(color.FgWhite, strings.Join(r.eng.KB().Signatures(), "\n"))

	case ":n", ":next":
		r.advance(ctx)

	case ":d", ":done":
		if r.stream == nil {
			r.printlnColor(color.FgYellow, "no query in progress")
			return false
		}
		r.closeStream()
		r.printlnColor(color.FgCyan, "query terminated")

	case ":quit", ":q":
		return true

	default:
		r.printlnColor(color.FgRed, "unknown command: "+cmd)
	}
	return false
}

func boolLabel(name string, on bool) string {
	state := "off"
	if on {
		state = "on"
	}
	return name + ": " + state
}
