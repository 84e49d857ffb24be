package cmd_test

import (
	"testing"

	"carvel.dev/ett/pkg/cmd"
	"carvel.dev/ett/pkg/version"
	"github.com/stretchr/testify/require"
)

func TestVersionConstraint(t *testing.T) {
	opts := cmd.NewVersionOptions()
	opts.Constraint = ">= " + version.Version
	require.NoError(t, opts.Run())

	opts.Constraint = ">= 1000.0.0"
	err := opts.Run()
	require.ErrorContains(t, err, "does not satisfy constraint")

	opts.Constraint = "not-a-constraint"
	err = opts.Run()
	require.ErrorContains(t, err, "Parsing version constraint")
}
