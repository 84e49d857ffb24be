package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	cmdui "carvel.dev/ett/pkg/cmd/ui"
	"carvel.dev/ett/pkg/template"
	"carvel.dev/ett/pkg/value"
	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type RenderOptions struct {
	Debug bool

	FilePath       string
	DataValueKVs   []string
	DataValueFiles []string
	TemplateKVs    []string
}

func NewRenderOptions() *RenderOptions {
	return &RenderOptions{}
}

func NewRenderCmd(o *RenderOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a template with given data values",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVarP(&o.FilePath, "file", "f", "", "Template file to render")
	cmd.Flags().StringArrayVar(&o.DataValueKVs, "data-value", nil,
		"Set specific data value to given value, as string (format: key=str) (can be specified multiple times)")
	cmd.Flags().StringArrayVar(&o.DataValueFiles, "data-value-file", nil,
		"Set specific data value to given file contents, parsed by extension: .json, .yml, .yaml, .toml (format: key=/file/path) (can be specified multiple times)")
	cmd.Flags().StringArrayVar(&o.TemplateKVs, "template", nil,
		"Register additional template under given name, available via @include (format: name=/file/path) (can be specified multiple times)")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	return cmd
}

func (o *RenderOptions) Run() error {
	return o.RunWithUI(cmdui.NewTTY(o.Debug))
}

func (o *RenderOptions) RunWithUI(ui cmdui.UI) error {
	t1 := time.Now()

	defer func() {
		ui.Debugf("total: %s\n", time.Since(t1))
	}()

	if len(o.FilePath) == 0 {
		return fmt.Errorf("Expected template file to be specified (via --file)")
	}

	contents, err := os.ReadFile(o.FilePath)
	if err != nil {
		return fmt.Errorf("Reading template file: %s", err)
	}

	tmpl, err := template.Parse(o.FilePath, string(contents))
	if err != nil {
		return fmt.Errorf("Parsing template file '%s': %s", o.FilePath, err)
	}

	scope := newBuiltinScope()

	err = o.setDataValues(scope, ui)
	if err != nil {
		return err
	}

	err = o.setTemplates(scope)
	if err != nil {
		return err
	}

	result, err := tmpl.Render(scope)
	if err != nil {
		return err
	}

	ui.Printf("%s", result)
	return nil
}

func (o *RenderOptions) setDataValues(scope *template.Scope, ui cmdui.UI) error {
	for _, kv := range o.DataValueKVs {
		name, val, err := splitKV(kv)
		if err != nil {
			return fmt.Errorf("Extracting data value: %s", err)
		}
		warnOnOverride(scope, name, ui)
		scope.SetVar(name, value.NewString(val))
	}

	// Files take precedence over plain KVs
	for _, kv := range o.DataValueFiles {
		name, path, err := splitKV(kv)
		if err != nil {
			return fmt.Errorf("Extracting data value from file: %s", err)
		}

		val, err := loadDataValueFile(path)
		if err != nil {
			return fmt.Errorf("Extracting data value from file '%s': %s", path, err)
		}
		warnOnOverride(scope, name, ui)
		scope.SetVar(name, val)
	}

	return nil
}

func warnOnOverride(scope *template.Scope, name string, ui cmdui.UI) {
	if _, found := scope.Var(name); found {
		ui.Warnf("Warning: overriding data value '%s'\n", name)
	}
}

func (o *RenderOptions) setTemplates(scope *template.Scope) error {
	for _, kv := range o.TemplateKVs {
		name, path, err := splitKV(kv)
		if err != nil {
			return fmt.Errorf("Extracting template: %s", err)
		}

		contents, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("Reading template file: %s", err)
		}

		tmpl, err := template.Parse(path, string(contents))
		if err != nil {
			return fmt.Errorf("Parsing template file '%s': %s", path, err)
		}

		scope.SetTemplate(name, tmpl)
	}

	return nil
}

func loadDataValueFile(path string) (value.Value, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return value.Value{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return value.UnmarshalJSON(contents)

	case ".yml", ".yaml":
		var parsed interface{}
		err := yaml.Unmarshal(contents, &parsed)
		if err != nil {
			return value.Value{}, fmt.Errorf("Deserializing YAML: %s", err)
		}
		return value.ToValue(parsed)

	case ".toml":
		var parsed map[string]interface{}
		err := toml.Unmarshal(contents, &parsed)
		if err != nil {
			return value.Value{}, fmt.Errorf("Deserializing TOML: %s", err)
		}
		return value.ToValue(parsed)

	default:
		return value.Value{}, fmt.Errorf("Unknown file extension '%s' (expected .json, .yml, .yaml or .toml)", filepath.Ext(path))
	}
}

func splitKV(kv string) (string, string, error) {
	pieces := strings.SplitN(kv, "=", 2)
	if len(pieces) != 2 {
		return "", "", fmt.Errorf("Expected format key=value, but was '%s'", kv)
	}
	if len(pieces[0]) == 0 {
		return "", "", fmt.Errorf("Expected non-empty key in '%s'", kv)
	}
	return pieces[0], pieces[1], nil
}
