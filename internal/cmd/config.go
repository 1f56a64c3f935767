package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/klauern/hookline/internal/config"
	"github.com/klauern/hookline/internal/constants"
)

// NewConfigCmd groups configuration inspection subcommands.
func NewConfigCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect the resolved configuration",
		Commands: []*cli.Command{
			newConfigShowCmd(),
			newConfigValidateCmd(),
		},
	}
}

func newConfigShowCmd() *cli.Command {
	return &cli.Command{
		Name:        "show",
		Usage:       "Print the fully resolved configuration",
		Description: `Resolve defaults, the extends chain, and the local file exactly as the run command would, then print the result as JSON.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Value: ".",
				Usage: "Directory containing claude-hooks.config.json",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			log := newLogger(cmd.Root().Bool("verbose"))
			snap := config.Load(cmd.String("dir"), log)

			data, err := json.MarshalIndent(snap.Config, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding resolved config: %w", err)
			}
			if snap.Source != "" {
				fmt.Fprintf(os.Stderr, "resolved from %s\n", snap.Source)
			} else {
				fmt.Fprintln(os.Stderr, "no config file found, showing defaults")
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

func newConfigValidateCmd() *cli.Command {
	return &cli.Command{
		Name:        "validate",
		Usage:       "Validate the local configuration file",
		Description: `Check claude-hooks.config.json against the known field tables and report every error and warning. Exits nonzero when the file has errors.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Value: ".",
				Usage: "Directory containing claude-hooks.config.json",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			path := filepath.Join(cmd.String("dir"), constants.ConfigFileName)
			raw, err := os.ReadFile(path) // #nosec G304 - user-named config path
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			rep := config.Validate(raw)
			for _, w := range rep.Warnings {
				fmt.Printf("warning: %s\n", w)
			}
			for _, e := range rep.Errors {
				fmt.Printf("error: %s\n", e)
			}
			if !rep.Valid || len(rep.Errors) > 0 {
				return fmt.Errorf("%s has %d error(s)", path, len(rep.Errors))
			}
			fmt.Printf("%s is valid (%d warning(s))\n", path, len(rep.Warnings))
			return nil
		},
	}
}
