package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the vigil ASCII banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{`        _       _ _ `, "#34d399"},
		{` __   _(_) __ _(_) |`, "#2dd4bf"},
		{` \ \ / / |/ _' | | |`, "#22d3ee"},
		{`  \ V /| | (_| | | |`, "#38bdf8"},
		{`   \_/ |_|\__, |_|_|`, "#60a5fa"},
		{`          |___/     `, "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
