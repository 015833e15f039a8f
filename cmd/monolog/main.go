// Command monolog is the interactive Monolog REPL: it wires package
// parser, package engine, and package repl together behind a cobra CLI,
// the same shape the teacher uses for its own command-line tooling.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Taskkill/monolog/engine"
	"github.com/Taskkill/monolog/parser"
	"github.com/Taskkill/monolog/repl"
)

type options struct {
	occursCheck bool
	consult     string
	noColor     bool
	logLevel    string
}

func newRootCmd() *cobra.Command {
	o := &options{logLevel: "warn"}

	cmd := &cobra.Command{
		Use:   "monolog",
		Short: "An interactive interpreter for the Monolog logic-programming language",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), o)
		},
	}

	cmd.Flags().BoolVar(&o.occursCheck, "occurs-check", false, "enable the occurs check at startup")
	cmd.Flags().StringVar(&o.consult, "consult", "", "load facts and rules from FILE before starting the session")
	cmd.Flags().BoolVar(&o.noColor, "no-color", false, "disable ANSI-colorized output")
	cmd.Flags().StringVar(&o.logLevel, "log-level", o.logLevel, "logrus level: debug, info, warn, error")

	return cmd
}

func run(ctx context.Context, o *options) error {
	log := logrus.StandardLogger()
	level, err := logrus.ParseLevel(o.logLevel)
	if err != nil {
		return fmt.Errorf("monolog: invalid --log-level %q: %w", o.logLevel, err)
	}
	log.SetLevel(level)

	eng := engine.New(engine.WithLogger(log), engine.WithOccursCheck(o.occursCheck))

	if o.consult != "" {
		clauses, err := parser.ConsultFile(o.consult)
		if err != nil {
			return fmt.Errorf("monolog: consulting %s: %w", o.consult, err)
		}
		for _, c := range clauses {
			eng.Assert(c)
		}
		log.WithField("file", o.consult).WithField("clauses", len(clauses)).Info("consulted")
	}

	r := repl.New(eng, repl.WithLogger(log), repl.WithColor(!o.noColor))
	return r.Run(ctx)
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
