package cmd

import (
	"fmt"

	"carvel.dev/ett/pkg/version"
	goversion "github.com/hashicorp/go-version"
	"github.com/spf13/cobra"
)

type VersionOptions struct {
	Constraint string
}

func NewVersionOptions() *VersionOptions {
	return &VersionOptions{}
}

func NewVersionCmd(o *VersionOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVar(&o.Constraint, "constraint", "",
		"Check version against given constraint, exiting non-zero when not satisfied (format: '>= 0.1.0')")
	return cmd
}

func (o *VersionOptions) Run() error {
	fmt.Printf("ett version %s\n", version.Version)

	if len(o.Constraint) > 0 {
		constraint, err := goversion.NewConstraint(o.Constraint)
		if err != nil {
			return fmt.Errorf("Parsing version constraint '%s': %s", o.Constraint, err)
		}

		ver, err := goversion.NewVersion(version.Version)
		if err != nil {
			return fmt.Errorf("Parsing version '%s': %s", version.Version, err)
		}

		if !constraint.Check(ver) {
			return fmt.Errorf("Version '%s' does not satisfy constraint '%s'", version.Version, o.Constraint)
		}
	}

	return nil
}
