package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/klauern/hookline/internal/config"
	"github.com/klauern/hookline/internal/core"
	"github.com/klauern/hookline/internal/hooks"
	"github.com/klauern/hookline/internal/platform"
)

// NewRunCmd builds the command the host invokes with an event payload on
// stdin. Its exit code is the protocol: 0 proceed, 1 internal error,
// 2 blocked.
func NewRunCmd() *cli.Command {
	return &cli.Command{
		Name:        "run",
		Usage:       "Run the hook pipeline for one event",
		ArgsUsage:   "[event]",
		Description: `Read one JSON event payload from stdin, run every enabled feature for the event in priority order, and reply on stdout in the host's wire format. The event may be named as an argument or carried in the payload's hook_event_name field.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Value: ".",
				Usage: "Directory containing claude-hooks.config.json",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := newLogger(cmd.Root().Bool("verbose"))

			in, err := platform.ReadStdin()
			if err != nil {
				var ie *platform.InputError
				if errors.As(err, &ie) {
					fmt.Fprintln(os.Stderr, ie.Error())
					os.Exit(core.ExitError)
				}
				return err
			}

			if args := cmd.Args().Slice(); len(args) > 0 {
				event, ok := core.ResolveEventAlias(args[0])
				if !ok {
					fmt.Fprintf(os.Stderr, "unknown event %q (valid: %s)\n", args[0], strings.Join(core.ValidEventTypes(), ", "))
					os.Exit(core.ExitError)
				}
				in.Event = event
			}
			if in.Event == "" {
				fmt.Fprintln(os.Stderr, "no event named on the command line or in the payload")
				os.Exit(core.ExitError)
			}

			snap := config.Load(cmd.String("dir"), log)
			ec := core.NewEngineContext(log)

			registry := core.NewLazyRegistry()
			hooks.RegisterBuiltins(registry)

			handlers, err := registry.HandlersFor(ctx, in.Event, &snap.Config, ec)
			if err != nil {
				fmt.Fprintln(os.Stderr, err.Error())
				os.Exit(core.ExitError)
			}

			pipeline := &core.Pipeline{Log: log}
			res := pipeline.Run(ctx, handlers, in, &snap.Config)

			if out := platform.Render(in, res); out != "" {
				fmt.Println(out)
			}
			if res.Stderr != "" {
				fmt.Fprintln(os.Stderr, res.Stderr)
			}
			os.Exit(res.ExitCode)
			return nil
		},
	}
}
