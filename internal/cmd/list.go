package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/klauern/hookline/internal/config"
	"github.com/klauern/hookline/internal/constants"
	"github.com/klauern/hookline/internal/core"
	"github.com/klauern/hookline/internal/hooks"
)

// NewListCmd builds the command that lists features with their resolved
// enabled status, hook events, and presets.
func NewListCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List built-in features, hook events, and presets",
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

			fmt.Println("Built-in features (in execution order):")
			fmt.Println()
			for _, d := range hooks.Catalog() {
				status := "enabled"
				if !config.FeatureEnabled(&snap.Config, d.Meta.ConfigPath) {
					status = "disabled"
				}
				events := make([]string, len(d.Meta.Events))
				for i, e := range d.Meta.Events {
					events[i] = string(e)
				}
				fmt.Printf("  %-20s %-10s %-9s priority %-4d %s\n", d.Meta.Name, d.Meta.Category, status, d.Meta.Priority, strings.Join(events, ", "))
				fmt.Printf("  %-20s toggle: %s\n", "", d.Meta.ConfigPath)
				fmt.Println()
			}

			fmt.Println("Hook events:")
			fmt.Println()
			for _, event := range core.AllHookEvents() {
				fmt.Printf("  %s\n", event.Name)
				fmt.Printf("      %s\n", event.Description)
				if len(event.Aliases) > 0 {
					fmt.Printf("      aliases: %s\n", strings.Join(event.Aliases, ", "))
				}
			}
			fmt.Println()

			fmt.Println("Presets (usable via the extends field):")
			fmt.Println()
			for _, name := range config.PresetNames() {
				preset, _ := config.LookupPreset(name)
				fmt.Printf("  %-12s %s\n", name, preset.Description)
			}
			fmt.Println()
			fmt.Printf("Use '%s run <event>' to run the pipeline for an event.\n", constants.BinaryName)
			fmt.Printf("Use '%s generate --preset <name>' to create a starter config.\n", constants.BinaryName)
			return nil
		},
	}
}
