package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"carvel.dev/ett/pkg/cmd"
	cmdui "carvel.dev/ett/pkg/cmd/ui"
	"github.com/stretchr/testify/require"
)

func TestRenderDataValueString(t *testing.T) {
	tmplPath := writeFile(t, "greet.ett", "Hello {{ name | upper }}!")

	opts := cmd.NewRenderOptions()
	opts.FilePath = tmplPath
	opts.DataValueKVs = []string{"name=world"}

	require.Equal(t, "Hello WORLD!", runRender(t, opts))
}

func TestRenderDataValueJSONFile(t *testing.T) {
	tmplPath := writeFile(t, "server.ett",
		"port={{ config.port }} hosts={{ config.hosts | join: ', ' }}")
	dataPath := writeFile(t, "config.json", `{"port": 8080, "hosts": ["a", "b"]}`)

	opts := cmd.NewRenderOptions()
	opts.FilePath = tmplPath
	opts.DataValueFiles = []string{"config=" + dataPath}

	require.Equal(t, "port=8080 hosts=a, b", runRender(t, opts))
}

func TestRenderDataValueYAMLFile(t *testing.T) {
	tmplPath := writeFile(t, "app.ett", "{{ vals.app }} {{ vals.replicas }}")
	dataPath := writeFile(t, "vals.yml", "app: frontend\nreplicas: 3\n")

	opts := cmd.NewRenderOptions()
	opts.FilePath = tmplPath
	opts.DataValueFiles = []string{"vals=" + dataPath}

	require.Equal(t, "frontend 3", runRender(t, opts))
}

func TestRenderDataValueTOMLFile(t *testing.T) {
	tmplPath := writeFile(t, "db.ett", "{{ db.host }}:{{ db.port }}")
	dataPath := writeFile(t, "db.toml", "host = \"localhost\"\nport = 5432\n")

	opts := cmd.NewRenderOptions()
	opts.FilePath = tmplPath
	opts.DataValueFiles = []string{"db=" + dataPath}

	require.Equal(t, "localhost:5432", runRender(t, opts))
}

func TestRenderIncludedTemplate(t *testing.T) {
	tmplPath := writeFile(t, "page.ett", "@include('header')\nbody")
	headerPath := writeFile(t, "header.ett", "== {{ title }} ==")

	opts := cmd.NewRenderOptions()
	opts.FilePath = tmplPath
	opts.TemplateKVs = []string{"header=" + headerPath}
	opts.DataValueKVs = []string{"title=Docs"}

	require.Equal(t, "== Docs ==\nbody", runRender(t, opts))
}

func TestRenderDefaultPipe(t *testing.T) {
	tmplPath := writeFile(t, "opt.ett", "{{ missing | default: 'fallback' }}")

	opts := cmd.NewRenderOptions()
	opts.FilePath = tmplPath
	opts.DataValueKVs = []string{"missing="} // set to empty string, not null

	require.Equal(t, "", runRender(t, opts))
}

func TestRenderDataValueOverrideWarns(t *testing.T) {
	tmplPath := writeFile(t, "greet.ett", "Hello {{ name }}!")
	dataPath := writeFile(t, "name.json", `{"name": "file"}`)

	opts := cmd.NewRenderOptions()
	opts.FilePath = tmplPath
	opts.DataValueKVs = []string{"name=kv", "vals=unused"}
	opts.DataValueFiles = []string{"vals=" + dataPath}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := opts.RunWithUI(cmdui.NewCustomWriterTTY(false, stdout, stderr))
	require.NoError(t, err)
	require.Equal(t, "Hello kv!", stdout.String())
	require.Equal(t, "Warning: overriding data value 'vals'\n", stderr.String())
}

func TestRenderErrors(t *testing.T) {
	t.Run("missing file flag", func(t *testing.T) {
		err := cmd.NewRenderOptions().RunWithUI(cmdui.NewCustomWriterTTY(false, &bytes.Buffer{}, &bytes.Buffer{}))
		require.EqualError(t, err, "Expected template file to be specified (via --file)")
	})

	t.Run("malformed data value", func(t *testing.T) {
		opts := cmd.NewRenderOptions()
		opts.FilePath = writeFile(t, "t.ett", "x")
		opts.DataValueKVs = []string{"no-equals-sign"}

		err := opts.RunWithUI(cmdui.NewCustomWriterTTY(false, &bytes.Buffer{}, &bytes.Buffer{}))
		require.EqualError(t, err, "Extracting data value: Expected format key=value, but was 'no-equals-sign'")
	})

	t.Run("unknown data value file extension", func(t *testing.T) {
		opts := cmd.NewRenderOptions()
		opts.FilePath = writeFile(t, "t.ett", "x")
		opts.DataValueFiles = []string{"v=" + writeFile(t, "v.ini", "a=1")}

		err := opts.RunWithUI(cmdui.NewCustomWriterTTY(false, &bytes.Buffer{}, &bytes.Buffer{}))
		require.ErrorContains(t, err, "Unknown file extension '.ini'")
	})

	t.Run("render error carries span", func(t *testing.T) {
		opts := cmd.NewRenderOptions()
		opts.FilePath = writeFile(t, "t.ett", "ok {{ missing }}")

		err := opts.RunWithUI(cmdui.NewCustomWriterTTY(false, &bytes.Buffer{}, &bytes.Buffer{}))
		require.EqualError(t, err, "eval error at 3..16: undefined variable 'missing'")
	})
}

func runRender(t *testing.T, opts *cmd.RenderOptions) string {
	stdout := &bytes.Buffer{}
	err := opts.RunWithUI(cmdui.NewCustomWriterTTY(false, stdout, &bytes.Buffer{}))
	require.NoError(t, err)
	return stdout.String()
}

func writeFile(t *testing.T, name, contents string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}
