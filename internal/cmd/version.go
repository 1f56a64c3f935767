package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/klauern/hookline/internal/constants"
)

// NewVersionCmd builds the version command.
func NewVersionCmd(info VersionInfo) *cli.Command {
	return &cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Show version information",
		Action: func(_ context.Context, _ *cli.Command) error {
			fmt.Printf("%s version %s\n", constants.BinaryName, info.Version)
			fmt.Printf("commit: %s\n", info.Commit)
			fmt.Printf("date: %s\n", info.Date)
			fmt.Printf("go: %s\n", info.GoVer)
			return nil
		},
	}
}
