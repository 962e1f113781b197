package styles

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/uic/langtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyLiteral(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.styles")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	lit, err := Property("12px").Literal(langtype.LogicalLength)
	require.NoError(t, err)
	assert.Equal(t, langtype.NumberLiteral(12, langtype.UnitPx), lit)
	lit, err = Property("0").Literal(langtype.Duration)
	require.NoError(t, err)
	assert.Equal(t, langtype.UnitMs, lit.Unit)
	lit, err = Property("-2.5cm").Literal(langtype.LogicalLength)
	require.NoError(t, err)
	assert.Equal(t, -2.5, lit.Number)
	lit, err = Property("#f00").Literal(langtype.Brush)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xffff0000), lit.Color)
	lit, err = Property("White").Literal(langtype.Color)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xffffffff), lit.Color)
	lit, err = Property(`"Segoe UI"`).Literal(langtype.String)
	require.NoError(t, err)
	assert.Equal(t, "Segoe UI", lit.Str)
	lit, err = Property("true").Literal(langtype.Bool)
	require.NoError(t, err)
	assert.True(t, lit.Bool)
	lit, err = Property("word-wrap").Literal(langtype.TextWrap)
	require.NoError(t, err)
	assert.Equal(t, "word_wrap", lit.Enum.String())
}

func TestPropertyLiteralErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.styles")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	for _, test := range []struct {
		value Property
		ty    langtype.Type
	}{
		{"12", langtype.LogicalLength},
		{"12s", langtype.LogicalLength},
		{"12zz", langtype.LogicalLength},
		{"abc", langtype.Float32},
		{"notacolor", langtype.Color},
		{"maybe", langtype.Bool},
		{"inherit", langtype.String},
		{"", langtype.String},
		{"sideways", langtype.TextWrap},
		{"x", langtype.Image},
	} {
		_, err := test.value.Literal(test.ty)
		assert.True(t, errors.Is(err, ErrInvalidValue), "%q as %s: expected invalid value, have %v",
			test.value, test.ty, err)
	}
}

func TestSplitCompoundProperty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.styles")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	kvs, err := SplitCompoundProperty("padding", "1px 2px 3px")
	require.NoError(t, err)
	want := []KeyValue{
		{"padding_top", "1px"}, {"padding_right", "2px"}, {"padding_bottom", "3px"}, {"padding_left", "2px"},
	}
	if diff := cmp.Diff(want, kvs); diff != "" {
		t.Errorf("split mismatch (-want +got):\n%s", diff)
	}
	kvs, err = SplitCompoundProperty("padding", "4px")
	require.NoError(t, err)
	assert.Equal(t, []KeyValue{{"padding", "4px"}}, kvs)
	_, err = SplitCompoundProperty("margin", "4px")
	assert.Error(t, err)
}

func TestCascade(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.styles")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	sheet, err := Parse(`
Text { color: black; font-size: 12px; }
#title { font-size: 24px; }
Text { font-size: 13px; font-weight: 400 !important; }
.Button Text { font-weight: 700; color: blue; }
VerticalLayout { padding: 1px 2px; }
`)
	require.NoError(t, err)
	s, err := NewStyle("test", sheet)
	require.NoError(t, err)
	assert.Equal(t, 5, s.RuleCount())
	//
	root := ElementNode("Rectangle", "root", []string{"Button"}, nil)
	title := ElementNode("Text", "title", nil, root)
	want := []Declaration{
		{Property: "color", Value: "blue"},
		{Property: "font_size", Value: "24px"},
		{Property: "font_weight", Value: "400", Important: true},
	}
	if diff := cmp.Diff(want, s.Declarations(title)); diff != "" {
		t.Errorf("cascade mismatch (-want +got):\n%s", diff)
	}
	other := ElementNode("Text", "", nil, nil)
	want = []Declaration{
		{Property: "color", Value: "black"},
		{Property: "font_size", Value: "13px"},
		{Property: "font_weight", Value: "400", Important: true},
	}
	if diff := cmp.Diff(want, s.Declarations(other)); diff != "" {
		t.Errorf("cascade mismatch (-want +got):\n%s", diff)
	}
	box := ElementNode("VerticalLayout", "", nil, nil)
	assert.Len(t, s.Declarations(box), 4)
}

func TestBadSelector(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.styles")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	sheet, err := Parse(`Text:no-such-pseudo-class { color: red; }`)
	require.NoError(t, err)
	_, err = NewStyle("bad", sheet)
	assert.Error(t, err)
}

func TestFileLoader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.styles")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelError)
	//
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ugly.css"), []byte("Text { font-size: 20px; }"), 0o644))
	extra := filepath.Join(dir, "extra.css")
	require.NoError(t, os.WriteFile(extra, []byte("#x { color: red; }"), 0o644))
	l := &FileLoader{Paths: []string{dir, filepath.Join(dir, "missing")}, Sheets: []string{extra}}
	s, err := l.Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultStyleName, s.Name)
	decls := s.Declarations(ElementNode("Text", "x", nil, nil))
	want := []Declaration{{Property: "color", Value: "red"}, {Property: "font_size", Value: "20px"}}
	if diff := cmp.Diff(want, decls); diff != "" {
		t.Errorf("loaded style mismatch (-want +got):\n%s", diff)
	}
	_, err = l.Load(context.Background(), "no-such-style")
	assert.True(t, errors.Is(err, ErrUnknownStyle))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Load(ctx, "ugly")
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, []string{"fluent", "ugly"}, BuiltinStyleNames())
}
