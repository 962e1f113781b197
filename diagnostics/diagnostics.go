package diagnostics

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Span is a position within a source file, given as a byte offset.
type Span struct {
	Offset int
}

// NoSpan is the span of synthesized constructs without source position.
var NoSpan = Span{Offset: -1}

// IsValid is false for NoSpan.
func (s Span) IsValid() bool {
	return s.Offset >= 0
}

// SourceFile is a loaded source document. Source may be empty if the text is
// not available; line/column information is unavailable then.
type SourceFile struct {
	Path   string
	Source string
	lines  []int // offsets of line starts, computed lazily
}

// NewSourceFile creates a source file from a path and its text.
func NewSourceFile(path, source string) *SourceFile {
	return &SourceFile{Path: path, Source: source}
}

// LineColumn returns the 1-based line and column for a byte offset.
// If the source text is not known, it returns (0, 0).
func (f *SourceFile) LineColumn(offset int) (int, int) {
	if f == nil || f.Source == "" || offset < 0 {
		return 0, 0
	}
	if f.lines == nil {
		f.lines = []int{0}
		for i, c := range f.Source {
			if c == '\n' {
				f.lines = append(f.lines, i+1)
			}
		}
	}
	line := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return line + 1, offset - f.lines[line] + 1
}

// SourceLocation is a span within a given file.
type SourceLocation struct {
	File *SourceFile
	Span Span
}

// Location makes SourceLocation a Spanned.
func (loc SourceLocation) Location() SourceLocation {
	return loc
}

func (loc SourceLocation) String() string {
	path := "<unknown>"
	if loc.File != nil && loc.File.Path != "" {
		path = loc.File.Path
	}
	if l, c := loc.File.LineColumn(loc.Span.Offset); l > 0 {
		return fmt.Sprintf("%s:%d:%d", path, l, c)
	}
	if loc.Span.IsValid() {
		return fmt.Sprintf("%s@%d", path, loc.Span.Offset)
	}
	return path
}

// Spanned is anything which can tell its source location, e.g. syntax nodes.
type Spanned interface {
	Location() SourceLocation
}

// Level is the severity of a diagnostic.
type Level int8

// Severities of diagnostics.
const (
	LevelError Level = iota
	LevelWarning
)

func (l Level) String() string {
	if l == LevelWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a message with a location and a level. It implements the
// error interface.
type Diagnostic struct {
	Message  string
	Location SourceLocation
	Level    Level
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Location, d.Level, d.Message)
}

// BuildDiagnostics is the sink for all diagnostics of a compilation.
// The zero value is ready to use.
type BuildDiagnostics struct {
	inner          []Diagnostic
	AllLoadedFiles []string // files loaded during compilation, for dependency tracking
}

func locationOf(at Spanned) SourceLocation {
	if at == nil {
		return SourceLocation{Span: NoSpan}
	}
	return at.Location()
}

// Push appends a diagnostic.
func (diag *BuildDiagnostics) Push(d Diagnostic) {
	tracer().Debugf("%s", d.Error())
	diag.inner = append(diag.inner, d)
}

// PushError reports an error at the location of at. at may be nil.
func (diag *BuildDiagnostics) PushError(msg string, at Spanned) {
	diag.Push(Diagnostic{Message: msg, Location: locationOf(at), Level: LevelError})
}

// PushWarning reports a warning at the location of at. at may be nil.
func (diag *BuildDiagnostics) PushWarning(msg string, at Spanned) {
	diag.Push(Diagnostic{Message: msg, Location: locationOf(at), Level: LevelWarning})
}

// PushPropertyDeprecationWarning reports the use of a deprecated property name.
func (diag *BuildDiagnostics) PushPropertyDeprecationWarning(oldName, newName string, at Spanned) {
	diag.PushWarning(fmt.Sprintf("The property '%s' has been deprecated. Please use '%s' instead",
		oldName, newName), at)
}

// HasError is true if at least one diagnostic of level error has been pushed.
func (diag *BuildDiagnostics) HasError() bool {
	for _, d := range diag.inner {
		if d.Level == LevelError {
			return true
		}
	}
	return false
}

// Len returns the number of diagnostics, including warnings.
func (diag *BuildDiagnostics) Len() int {
	return len(diag.inner)
}

// Diagnostics returns a copy of all diagnostics in the order they were pushed.
func (diag *BuildDiagnostics) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), diag.inner...)
}

// Messages returns the messages of all diagnostics, mainly for tests.
func (diag *BuildDiagnostics) Messages() []string {
	msgs := make([]string, len(diag.inner))
	for i, d := range diag.inner {
		msgs[i] = d.Message
	}
	return msgs
}

// Err joins all errors into one error value, or returns nil if there are no errors.
func (diag *BuildDiagnostics) Err() error {
	var errs []error
	for _, d := range diag.inner {
		if d.Level == LevelError {
			errs = append(errs, d)
		}
	}
	return errors.Join(errs...)
}

func (diag *BuildDiagnostics) String() string {
	var b strings.Builder
	for _, d := range diag.inner {
		b.WriteString(d.Error())
		b.WriteByte('\n')
	}
	return b.String()
}
