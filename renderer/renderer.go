package renderer

import (
	"io"

	"github.com/ChainSafe/mzview/view"
)

// Renderer defines the interface for rendering view reports in different formats.
type Renderer interface {
	// Render writes report in the desired format to the provided writer.
	Render(report *view.Report, output io.Writer) error

	// Format returns the name of the output format (e.g., "json", "text").
	Format() string
}
