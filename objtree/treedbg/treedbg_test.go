package treedbg

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/uic/langtype"
	"github.com/npillmayer/uic/objtree"
	"github.com/stretchr/testify/assert"
)

func testComponent() *objtree.Component {
	rect := langtype.BuiltinRegister().Lookup("Rectangle")
	sub := objtree.NewComponent("", objtree.NewElement("cell", rect))
	rep := objtree.NewElement("rep", objtree.ComponentType(sub))
	rep.Repeated = &objtree.RepeatedElementInfo{Model: objtree.Number(3, langtype.UnitNone)}
	sub.SetParentElement(rep)
	root := objtree.NewElement("root", rect)
	root.Bindings["width"] = objtree.NewBinding(objtree.Number(100, langtype.UnitPx))
	root.Children = []*objtree.Element{rep, objtree.NewElement("label", rect)}
	return objtree.NewComponent("Main", root)
}

func TestGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.objtree")
	defer teardown()
	//
	var b strings.Builder
	if err := ToGraphViz(testComponent(), &b); err != nil {
		t.Fatal(err)
	}
	dot := b.String()
	assert.True(t, strings.HasPrefix(dot, "digraph g {"))
	assert.Contains(t, dot, `label="Main"`)
	assert.Contains(t, dot, `label="cell"`)
	assert.Contains(t, dot, "<td>100px</td>")
	assert.Contains(t, dot, `style="dashed" label="component"`)
	assert.True(t, strings.HasSuffix(dot, "}\n"))
}

func TestPrint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uic.objtree")
	defer teardown()
	//
	s := Print(testComponent())
	t.Logf("\n%s", s)
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, have %d:\n%s", len(lines), s)
	}
	assert.Equal(t, `component "Main"`, lines[0])
	assert.Contains(t, lines[1], "root := Rectangle")
	assert.Contains(t, lines[2], "for rep :=")
	assert.Contains(t, lines[3], "cell := Rectangle")
	assert.Contains(t, lines[4], "label := Rectangle")
}
