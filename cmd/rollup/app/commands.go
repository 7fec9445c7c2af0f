package app

import (
	"github.com/spf13/cobra"

	"github.com/clinicops/rollup/cmd/rollup/cmd/diff"
	"github.com/clinicops/rollup/cmd/rollup/cmd/generate"
	"github.com/clinicops/rollup/cmd/rollup/cmd/serve"
)

// NewGenerateCommand creates the generate command with app dependencies.
func (a *App) NewGenerateCommand() *cobra.Command {
	return generate.NewCommand(a)
}

// NewDiffCommand creates the diff command with app dependencies.
func (a *App) NewDiffCommand() *cobra.Command {
	return diff.NewCommand(a)
}

// NewServeCommand creates the serve command with app dependencies.
func (a *App) NewServeCommand() *cobra.Command {
	return serve.NewCommand(a)
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("rollup %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
