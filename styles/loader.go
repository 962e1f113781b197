package styles

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// DefaultStyleName is the style used if none is configured.
const DefaultStyleName = "ugly"

// ErrUnknownStyle is returned by loaders for style names they cannot find.
var ErrUnknownStyle = errors.New("unknown style")

// Loader loads styles by name.
type Loader interface {
	Load(ctx context.Context, name string) (*Style, error)
}

// FileLoader loads a style from the builtin stylesheets and from files
// `<name>.css` found in search paths. Additional stylesheets are appended
// last and take precedence.
type FileLoader struct {
	Paths  []string // directories searched for <name>.css
	Sheets []string // additional stylesheet files
}

var _ Loader = (*FileLoader)(nil)

// Load assembles the style for a name. An empty name selects the default
// style.
func (l *FileLoader) Load(ctx context.Context, name string) (*Style, error) {
	if name == "" {
		name = DefaultStyleName
	}
	var sheets []StyleSheet
	if text, ok := builtinStyles[name]; ok {
		sheet, err := Parse(text)
		if err != nil {
			return nil, fmt.Errorf("builtin style %s: %w", name, err)
		}
		sheets = append(sheets, sheet)
	}
	for _, dir := range l.Paths {
		path := filepath.Join(dir, name+".css")
		sheet, err := l.loadFile(ctx, path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		} else if err != nil {
			return nil, err
		}
		sheets = append(sheets, sheet)
	}
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStyle, name)
	}
	for _, path := range l.Sheets {
		sheet, err := l.loadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, sheet)
	}
	return NewStyle(name, sheets...)
}

func (l *FileLoader) loadFile(ctx context.Context, path string) (*CSSStyles, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading stylesheet: %w", err)
	}
	tracer().Debugf("loaded stylesheet %s", path)
	sheet, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sheet, nil
}

// BuiltinStyleNames returns the names of the styles which are always
// available, sorted.
func BuiltinStyleNames() []string {
	names := make([]string, 0, len(builtinStyles))
	for n := range builtinStyles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var builtinStyles = map[string]string{
	"ugly": `
Text { font-size: 14px; }
Window { background: white; default-font-size: 14px; }
HorizontalLayout, VerticalLayout, GridLayout { spacing: 2px; }
`,
	"fluent": `
Text { color: #323130; font-size: 14px; font-family: "Segoe UI"; }
Window { background: #faf9f8; default-font-size: 14px; default-font-family: "Segoe UI"; }
HorizontalLayout, VerticalLayout, GridLayout { spacing: 8px; }
BorderRectangle { border-radius: 2px; border-color: #8a8886; }
`,
}
