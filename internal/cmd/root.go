// Package cmd assembles the hookline command-line interface.
package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/klauern/hookline/internal/constants"
)

// VersionInfo holds build-time version information.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
	GoVer   string
}

// NewApp builds the root command with all subcommands attached.
func NewApp(version VersionInfo) *cli.Command {
	return &cli.Command{
		Name:  constants.BinaryName,
		Usage: constants.ProjectTagline + ": a pipeline runner for coding-agent hooks",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging on stderr",
			},
		},
		Commands: []*cli.Command{
			NewRunCmd(),
			NewConfigCmd(),
			NewListCmd(),
			NewGenerateCmd(),
			NewVersionCmd(version),
		},
	}
}

// newLogger builds the stderr diagnostic logger. Handler output goes to
// stdout; everything diagnostic stays on stderr so the host protocol is
// never polluted.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}
