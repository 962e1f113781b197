/*
Package treedbg implements helpers to debug an object tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package treedbg

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"text/template"

	"github.com/npillmayer/uic/objtree"
	tp "github.com/xlab/treeprint"
)

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname     string
	Component    string
	NodeTmpl     *template.Template
	EdgeTmpl     *template.Template
	BindingsTmpl *template.Template
	BndEdgeTmpl  *template.Template
	SubEdgeTmpl  *template.Template
}

// ToGraphViz outputs a diagram for the element tree of a component, in
// GraphViz (DOT) format. Every element is drawn together with a table of its
// bindings. Components instantiated by repeated elements are drawn as well,
// connected by a dashed edge.
func ToGraphViz(c *objtree.Component, w io.Writer) error {
	tmpl, err := template.New("tree").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica", Component: c.ID}
	gparams.NodeTmpl = template.Must(template.New("elemnode").Funcs(
		template.FuncMap{
			"shortstring": shortText,
		}).Parse(elemNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("elemedge").Parse(elemEdgeTmpl))
	gparams.BindingsTmpl = template.Must(template.New("bindings").Funcs(
		template.FuncMap{
			"shortstring": shortText,
		}).Parse(bindingsTmpl))
	gparams.BndEdgeTmpl = template.Must(template.New("bndedge").Parse(bndEdgeTmpl))
	gparams.SubEdgeTmpl = template.Must(template.New("subedge").Parse(subEdgeTmpl))
	if err = tmpl.Execute(w, gparams); err != nil {
		return err
	}
	dict := make(map[*objtree.Element]string, 256)
	if err = nodes(c.RootElement, w, dict, &gparams); err != nil {
		return err
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

// Dotty is a helper for testing. Given a component and a testing.T, it will
// create a Graphviz image of the element tree of the component and write it
// to a file in the current folder, choosing a unique file name.
// The image is in SVG format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
func Dotty(c *objtree.Component, t *testing.T) {
	tmpfile, err := os.CreateTemp(".", "objtree.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing element digraph to %s\n", tmpfile.Name())
	if err := ToGraphViz(c, tmpfile); err != nil {
		t.Error(err)
		return
	}
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	t.Logf("writing element tree image to %s.svg\n", tmpfile.Name())
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

type node struct {
	E    *objtree.Element
	Name string
}

type binding struct {
	Name, Value string
}

type bindings struct {
	Name     string
	Bindings []binding
}

type edge struct {
	N1, N2 node
}

func nameOf(e *objtree.Element, dict map[*objtree.Element]string) string {
	name := dict[e]
	if name == "" {
		name = fmt.Sprintf("elem%05d", len(dict)+1)
		dict[e] = name
	}
	return name
}

func nodes(e *objtree.Element, w io.Writer, dict map[*objtree.Element]string, gparams *graphParamsType) error {
	if err := elemNode(e, w, dict, gparams); err != nil {
		return err
	}
	if e.Repeated != nil {
		if sub, ok := objtree.AsComponent(e.BaseType()); ok && sub.ParentElement() == e {
			if err := nodes(sub.RootElement, w, dict, gparams); err != nil {
				return err
			}
			name1, name2 := nameOf(e, dict), nameOf(sub.RootElement, dict)
			if err := gparams.SubEdgeTmpl.Execute(w, edge{node{e, name1}, node{sub.RootElement, name2}}); err != nil {
				return err
			}
		}
	}
	for _, ch := range e.Children {
		if err := nodes(ch, w, dict, gparams); err != nil {
			return err
		}
		name1, name2 := nameOf(e, dict), nameOf(ch, dict)
		if err := gparams.EdgeTmpl.Execute(w, edge{node{e, name1}, node{ch, name2}}); err != nil {
			return err
		}
	}
	return nil
}

func elemNode(e *objtree.Element, w io.Writer, dict map[*objtree.Element]string, gparams *graphParamsType) error {
	name := nameOf(e, dict)
	if err := gparams.NodeTmpl.Execute(w, &node{e, name}); err != nil {
		return err
	}
	if len(e.Bindings) == 0 {
		return nil
	}
	bnd := bindings{Name: name}
	for _, b := range e.SortedBindingNames() {
		bnd.Bindings = append(bnd.Bindings, binding{b, objtree.PrettyPrint(e.Bindings[b].Expression)})
	}
	if err := gparams.BindingsTmpl.Execute(w, bnd); err != nil {
		return err
	}
	return gparams.BndEdgeTmpl.Execute(w, bnd)
}

func shortText(s string) string {
	if len(s) > 24 {
		s = s[:24] + "..."
	}
	s = strings.Replace(s, "&", "&amp;", -1)
	s = strings.Replace(s, "<", "&lt;", -1)
	s = strings.Replace(s, ">", "&gt;", -1)
	s = strings.Replace(s, "\"", "&quot;", -1)
	return s
}

// --- Tree printing ----------------------------------------------------

// Print returns an indented tree of the elements of a component, one
// element per line, including the components of repeated elements.
func Print(c *objtree.Component) string {
	p := tp.New()
	p.SetValue(fmt.Sprintf("component %q", c.ID))
	printElement(p, c.RootElement)
	return p.String()
}

func printElement(p tp.Tree, e *objtree.Element) {
	label := e.ID + " := " + e.BaseType().String()
	if r := e.Repeated; r != nil {
		if r.IsConditionalElement {
			label = "if " + label
		} else {
			label = "for " + label
		}
	}
	var sub *objtree.Component
	if c, ok := objtree.AsComponent(e.BaseType()); ok && e.Repeated != nil && c.ParentElement() == e {
		sub = c
	}
	if len(e.Children) == 0 && sub == nil {
		p.AddNode(label)
		return
	}
	branch := p.AddBranch(label)
	if sub != nil {
		printElement(branch, sub.RootElement)
	}
	for _, ch := range e.Children {
		printElement(branch, ch)
	}
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="{{ .Component }}" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const elemNodeTmpl = `{{ if .E.Repeated }}
{{ .Name }}	[ label={{ printf "%q" .E.ID }} shape=box style=filled fillcolor=grey95 ] ;
{{ else }}
{{ .Name }}	[ label={{ printf "%q" .E.ID }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const bindingsTmpl = `{{ .Name }}_b [ style="filled" penwidth=1 fillcolor="ivory3" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0" bgcolor="ivory3">
      <tr><td bgcolor="azure4" align="center" colspan="2"><font color="white">bindings</font></td></tr>
      {{ range .Bindings }}
      <tr><td align="right">{{ .Name }}:</td><td>{{ shortstring .Value }}</td></tr>
      {{ end }}
    </table>> ] ;
`

const elemEdgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1] ;
`

const bndEdgeTmpl = `{{ .Name }} -> {{ .Name }}_b [dir=none weight=1 style="dashed"] ;
`

const subEdgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1 style="dashed" label="component"] ;
`
