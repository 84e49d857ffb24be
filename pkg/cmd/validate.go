package cmd

import (
	"fmt"
	"os"

	cmdui "carvel.dev/ett/pkg/cmd/ui"
	"carvel.dev/ett/pkg/schema"
	"carvel.dev/ett/pkg/value"
	"github.com/spf13/cobra"
)

type ValidateOptions struct {
	Debug bool

	SchemaPath string
	InputPath  string
}

func NewValidateOptions() *ValidateOptions {
	return &ValidateOptions{}
}

func NewValidateCmd(o *ValidateOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a JSON document against a schema",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVarP(&o.SchemaPath, "schema", "s", "", "Schema file (JSON)")
	cmd.Flags().StringVarP(&o.InputPath, "input", "i", "", "Input file to validate (JSON)")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	return cmd
}

func (o *ValidateOptions) Run() error {
	return o.RunWithUI(cmdui.NewTTY(o.Debug))
}

func (o *ValidateOptions) RunWithUI(ui cmdui.UI) error {
	if len(o.SchemaPath) == 0 {
		return fmt.Errorf("Expected schema file to be specified (via --schema)")
	}
	if len(o.InputPath) == 0 {
		return fmt.Errorf("Expected input file to be specified (via --input)")
	}

	schemaBytes, err := os.ReadFile(o.SchemaPath)
	if err != nil {
		return fmt.Errorf("Reading schema file: %s", err)
	}

	s, err := schema.UnmarshalJSON(schemaBytes)
	if err != nil {
		return fmt.Errorf("Parsing schema file '%s': %s", o.SchemaPath, err)
	}

	inputBytes, err := os.ReadFile(o.InputPath)
	if err != nil {
		return fmt.Errorf("Reading input file: %s", err)
	}

	input, err := value.UnmarshalJSON(inputBytes)
	if err != nil {
		return fmt.Errorf("Parsing input file '%s': %s", o.InputPath, err)
	}

	coerced, validErr := s.Validate(input)
	if validErr != nil {
		return validErr
	}

	out, err := value.MarshalJSON(coerced)
	if err != nil {
		return fmt.Errorf("Serializing validated value: %s", err)
	}

	ui.Printf("%s\n", out)
	return nil
}
