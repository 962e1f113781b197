package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiRed    = "\x1b[31;1m"
	ansiYellow = "\x1b[33;1m"
	ansiReset  = "\x1b[0m"
)

// Report writes all diagnostics to w, one per line. Output is colorized if w is
// a terminal. Report returns the number of errors written.
func (diag *BuildDiagnostics) Report(w io.Writer) int {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	errcnt := 0
	for _, d := range diag.inner {
		level := d.Level.String()
		if color {
			if d.Level == LevelError {
				level = ansiRed + level + ansiReset
			} else {
				level = ansiYellow + level + ansiReset
			}
		}
		if d.Level == LevelError {
			errcnt++
		}
		fmt.Fprintf(w, "%s: %s: %s\n", d.Location, level, d.Message)
	}
	return errcnt
}
