package passes

import (
	"github.com/npillmayer/uic/diagnostics"
	"github.com/npillmayer/uic/objtree"
	"github.com/npillmayer/uic/styles"
)

// State is what passes work on.
type State struct {
	Doc            *objtree.Document
	Diag           *diagnostics.BuildDiagnostics
	Imported       []*objtree.Document  // documents loaded for imports
	Style          *styles.Style        // style defaults, may be nil
	ResolvePath    objtree.PathResolver // for @image-url, may be nil
	EmbedResources bool
}

// Pass is a stage of the pipeline.
type Pass interface {
	Name() string
	Run(st *State)
}

type pass struct {
	name string
	run  func(*State)
}

func (p pass) Name() string   { return p.name }
func (p pass) Run(st *State) { p.run(st) }

// NewPass creates a pass from a function.
func NewPass(name string, run func(*State)) Pass {
	return pass{name: name, run: run}
}

// Pipeline represents a sequence of passes.
type Pipeline struct {
	passes []Pass
}

// New creates a pipeline running passes in order.
func New(passes ...Pass) *Pipeline {
	return &Pipeline{passes: passes}
}

// Names returns the names of the passes of the pipeline, in order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.passes))
	for i, ps := range p.passes {
		names[i] = ps.Name()
	}
	return names
}

// Run executes the pipeline. It continues on errors, to collect diagnostics
// from all passes.
func (p *Pipeline) Run(st *State) *State {
	if st.Diag == nil {
		st.Diag = &diagnostics.BuildDiagnostics{}
	}
	for _, ps := range p.passes {
		tracer().Debugf("running pass %s", ps.Name())
		ps.Run(st)
	}
	return st
}

// Library returns the passes preparing an imported document. The passes
// working on the root component and its used types are left to Default,
// run on the importing document.
func Library() *Pipeline {
	return New(frontPasses(false)...)
}

// Default returns the pipeline of all passes, in the order they have to run.
func Default() *Pipeline {
	return New(append(frontPasses(true),
		NewPass("embed-resources", func(st *State) {
			if st.EmbedResources {
				EmbedResources(st.Doc, st.Imported...)
			}
		}),
		NewPass("sub-components", func(st *State) { CollectSubComponents(st.Doc.RootComponent) }),
		NewPass("globals", func(st *State) { CollectGlobals(st.Doc.RootComponent) }),
		NewPass("structs", func(st *State) { CollectStructs(st.Doc.RootComponent) }),
		NewPass("custom-fonts", func(st *State) {
			docs := append([]*objtree.Document{st.Doc}, st.Imported...)
			CollectCustomFonts(st.Doc.RootComponent, docs, st.EmbedResources)
		}),
		NewPass("binding-analysis", func(st *State) { BindingAnalysis(st.Doc.RootComponent, st.Diag) }),
	)...)
}

// frontPasses are the passes shaping the components of a document. Only the
// compiled document has a public API.
func frontPasses(public bool) []Pass {
	passes := []Pass{
		NewPass("infer-aliases", func(st *State) { InferAliases(st.Doc, st.Diag) }),
		NewPass("resolve", func(st *State) { Resolve(st.Doc, st.Diag, st.ResolvePath) }),
		NewPass("check-resolved", func(st *State) {
			if !st.Diag.HasError() {
				CheckResolved(st.Doc)
			}
		}),
	}
	if public {
		passes = append(passes, NewPass("public-api", func(st *State) { ExposePublicAPI(st.Doc) }))
	}
	return append(passes,
		NewPass("repeater-components", func(st *State) { CreateRepeaterComponents(st.Doc) }),
		NewPass("lower-shadows", func(st *State) { LowerShadows(st.Doc, st.Diag) }),
		NewPass("root-constraints", func(st *State) { ComputeRootConstraints(st.Doc, st.Diag) }),
		NewPass("style-defaults", func(st *State) {
			if st.Style != nil {
				ApplyDefaultPropertiesFromStyle(st.Doc, st.Style, st.Diag)
			}
		}),
	)
}
