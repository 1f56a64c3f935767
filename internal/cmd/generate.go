package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/klauern/hookline/internal/config"
	"github.com/klauern/hookline/internal/core"
	"github.com/klauern/hookline/internal/generator"
)

// NewGenerateCmd builds the command that writes a starter config file.
func NewGenerateCmd() *cli.Command {
	return &cli.Command{
		Name:        "generate",
		Usage:       "Write a starter claude-hooks.config.json",
		Description: `Generate a configuration file. By default the file spells out every built-in default; with --preset it contains only an extends reference to the named preset.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Value: ".",
				Usage: "Directory to write the config file into",
			},
			&cli.StringFlag{
				Name:  "preset",
				Usage: fmt.Sprintf("Generate an extends reference to a preset (%s)", strings.Join(config.PresetNames(), ", ")),
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing config file",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			path, err := generator.WriteConfig(core.RealFileSystem{}, generator.Options{
				Dir:    cmd.String("dir"),
				Preset: cmd.String("preset"),
				Force:  cmd.Bool("force"),
			})
			if err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}
}
