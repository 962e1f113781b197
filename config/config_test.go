package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/uic/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.config")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	c, err := Parse([]byte(`
embed_resources: true
include_paths: [lib, /usr/share/uic]
style: fluent
stylesheets: [theme/over.css]
`), "/proj/uic.yaml")
	require.NoError(t, err)
	assert.True(t, c.EmbedResources)
	assert.Equal(t, []string{"/proj/lib", "/usr/share/uic"}, c.IncludePaths)
	assert.Equal(t, "fluent", c.Style)
	assert.Equal(t, []string{"/proj/theme/over.css"}, c.StyleSheets)
	//
	c, err = Parse([]byte("embed_resources: false\n"), "uic.yaml")
	require.NoError(t, err)
	assert.Equal(t, styles.DefaultStyleName, c.Style, "style defaults")
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.config")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	for _, src := range []string{
		"include_paths: [\"\"]\n",
		"stylesheets: [theme.txt]\n",
		"style: [not, a, string]\n",
	} {
		_, err := Parse([]byte(src), "bad.yaml")
		assert.Error(t, err, "expected error for %q", src)
	}
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnvironment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.config")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	t.Setenv(EnvEmbedResources, "true")
	t.Setenv(EnvStyle, "fluent")
	t.Setenv(EnvIncludePath, "/a"+string(filepath.ListSeparator)+"/b")
	c, err := FromEnvironment()
	require.NoError(t, err)
	assert.True(t, c.EmbedResources)
	assert.Equal(t, "fluent", c.Style)
	assert.Equal(t, []string{"/a", "/b"}, c.IncludePaths)
	//
	c = &CompilerConfiguration{IncludePaths: []string{"/c"}}
	env := map[string]string{EnvIncludePath: "/a"}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	require.NoError(t, c.applyLookup(lookup))
	assert.Equal(t, []string{"/a", "/c"}, c.IncludePaths, "environment paths come first")
	//
	env[EnvEmbedResources] = "maybe"
	assert.Error(t, c.applyLookup(lookup))
}

func TestFindAndLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.config")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	root := t.TempDir()
	sub := filepath.Join(root, "src", "ui")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	path, err := Find(sub)
	require.NoError(t, err)
	if path != "" { // a uic.yaml above the temp dir
		t.Skipf("found unrelated configuration %s", path)
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "uic.yml"), []byte("style: fluent\n"), 0o644))
	path, err = Find(sub)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "uic.yml"), path)
	c, err := Load(path)
	require.NoError(t, err)
	loader := c.StyleLoader()
	style, err := loader.Load(t.Context(), c.Style)
	require.NoError(t, err)
	assert.Equal(t, "fluent", style.Name)
}
