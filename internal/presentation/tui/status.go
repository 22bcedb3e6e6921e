package tui

import (
	"io"

	"github.com/aretw0/vigil/pkg/domain"
	"github.com/muesli/termenv"
)

var healthColors = map[domain.SystemHealth]string{
	domain.HealthOperational: "#34a853",
	domain.HealthDegraded:    "#f9ab00",
	domain.HealthCritical:    "#ea4335",
}

// Health returns the health status coloured for w's colour profile.
// Non-terminals get the bare word.
func Health(w io.Writer, h domain.SystemHealth) string {
	out := termenv.NewOutput(w)
	c, ok := healthColors[h]
	if !ok {
		return string(h)
	}
	return out.String(string(h)).Foreground(out.Color(c)).Bold().String()
}
