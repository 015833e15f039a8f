// Package repl implements the interactive command loop described in
// spec.md §6: mode toggles for asserting clauses vs. running queries, KB
// inspection commands, the occurs-check toggle, and the "next"/"done"
// signals that drive an engine.Stream. It is, like package parser, an
// external collaborator — engine has no knowledge of it.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/Taskkill/monolog/engine"
	"github.com/Taskkill/monolog/parser"
	"github.com/Taskkill/monolog/term"
)

// mode selects how a non-command line is interpreted.
type mode int

const (
	modeStore mode = iota // ":s"/":store" — lines are clauses to assert
	modeCheck              // ":c"/":check" — lines are goals to query
)

// REPL drives one interactive session against a single engine.Engine.
// The zero value is not usable; construct with New.
type REPL struct {
	eng   *engine.Engine
	out   io.Writer
	log   *logrus.Logger
	color bool

	mode mode

	stream    *engine.Stream
	queryVars []term.Term
}

// Option configures a REPL, following the same functional-options
// pattern as engine.Option (itself carried over from the teacher's
// trealla.Option).
type Option func(*REPL)

// WithLogger overrides the REPL's logger (default: logrus.StandardLogger()).
func WithLogger(log *logrus.Logger) Option {
	return func(r *REPL) { r.log = log }
}

// WithOutput sets where HandleLine prints (default: io.Discard, so tests
// can supply their own). Run always replaces it with the readline
// instance's standard output.
func WithOutput(w io.Writer) Option {
	return func(r *REPL) { r.out = w }
}

// WithColor enables or disables ANSI-colorized output (default: enabled).
func WithColor(on bool) Option {
	return func(r *REPL) { r.color = on }
}

// New constructs a REPL over eng, defaulting to store mode (spec.md §6's
// ":s"/":store").
func New(eng *engine.Engine, opts ...Option) *REPL {
	r := &REPL{
		eng:   eng,
		out:   io.Discard,
		log:   logrus.StandardLogger(),
		color: true,
		mode:  modeStore,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run drives the interactive loop until the input stream closes or the
// user quits. prompt is re-rendered on every line to reflect the current
// mode and whether a query is in progress.
func (r *REPL) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.prompt(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("repl: readline init: %w", err)
	}
	defer rl.Close()
	r.out = rl.Stdout()

	for {
		rl.SetPrompt(r.prompt())
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if r.stream != nil {
				r.closeStream()
				continue
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			r.closeStream()
			return nil
		}
		if err != nil {
			return err
		}

		if quit := r.HandleLine(ctx, line); quit {
			r.closeStream()
			return nil
		}
	}
}

// HandleLine processes a single line of input (a command or, depending
// on mode, a clause or a goal), writing any output to the REPL's
// configured writer. It returns true iff the session should end (":quit").
func (r *REPL) HandleLine(ctx context.Context, line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if strings.HasPrefix(line, ":") {
		return r.handleCommand(ctx, line)
	}

	if r.stream != nil {
		r.printlnColor(color.FgYellow, "a query is already in progress; use :n, :d, or submit :d first")
		return false
	}

	switch r.mode {
	case modeStore:
		r.assert(line)
	case modeCheck:
		r.query(ctx, line)
	}
	return false
}

func (r *REPL) assert(line string) {
	c, err := parser.ParseClause(line)
	if err != nil {
		r.printlnColor(color.FgRed, err.Error())
		r.log.WithError(err).Warn("consult failure")
		return
	}
	r.eng.Assert(c)
	r.printlnColor(color.FgGreen, "asserted: "+c.String())
}

func (r *REPL) query(ctx context.Context, line string) {
	goal, err := parser.ParseGoal(line)
	if err != nil {
		r.printlnColor(color.FgRed, err.Error())
		r.log.WithError(err).Warn("consult failure")
		return
	}
	r.queryVars = term.VarsIn(goal)
	r.stream = r.eng.Solve(ctx, goal)
	r.advance(ctx)
}

// advance pulls the next answer from the active stream and prints it, or
// reports exhaustion and releases the stream.
func (r *REPL) advance(ctx context.Context) {
	if r.stream == nil {
		r.printlnColor(color.FgYellow, "no query in progress")
		return
	}
	if !r.stream.Next(ctx) {
		if err := r.stream.Err(); err != nil {
			r.printlnColor(color.FgRed, err.Error())
		} else {
			r.printlnColor(color.FgYellow, "false.")
		}
		r.closeStream()
		return
	}
	bindings := term.AnswerBindings(r.queryVars, r.stream.Current())
	if len(bindings) == 0 {
		r.printlnColor(color.FgGreen, "true.")
		return
	}
	r.printlnColor(color.FgGreen, bindings.String())
}

func (r *REPL) closeStream() {
	if r.stream == nil {
		return
	}
	_ = r.stream.Close()
	r.stream = nil
	r.queryVars = nil
}

func (r *REPL) prompt() string {
	p := "store"
	if r.mode == modeCheck {
		p = "check"
	}
	if r.stream != nil {
		p += "/query"
	}
	if !r.color {
		return p + "> "
	}
	return color.New(color.FgCyan).Sprint(p) + "> "
}

func (r *REPL) printlnColor(attr color.Attribute, msg string) {
	if !r.color {
		fmt.Fprintln(r.out, msg)
		return
	}
	color.New(attr).Fprintln(r.out, msg)
}
