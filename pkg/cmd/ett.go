package cmd

import (
	"carvel.dev/ett/pkg/version"
	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"
)

type EttOptions struct{}

func NewDefaultEttOptions() *EttOptions {
	return &EttOptions{}
}

func NewDefaultEttCmd() *cobra.Command {
	return NewEttCmd(NewDefaultEttOptions())
}

func NewEttCmd(o *EttOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ett",
		Version: version.Version,
		Short:   "ett performs expression-based text templating",
		Long: `ett performs expression-based text templating.

Templates embed expressions and directives inside plain text; schemas
validate and coerce the data values fed into them.`,
	}

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	// Disable docs header
	cmd.DisableAutoGenTag = true

	cmd.AddCommand(NewRenderCmd(NewRenderOptions()))
	cmd.AddCommand(NewValidateCmd(NewValidateOptions()))
	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.DisallowExtraArgs, cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}
