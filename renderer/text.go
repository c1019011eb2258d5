// Package renderer provides a way to render view reports in different formats.
package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/ChainSafe/mzview/profile"
	"github.com/ChainSafe/mzview/view"
)

// TextRenderer formats the report as an aligned, human-readable dump.
type TextRenderer struct {
	profile *profile.LoaderProfile
}

// NewTextRenderer creates a new instance of TextRenderer.
func NewTextRenderer(profile *profile.LoaderProfile) Renderer {
	return &TextRenderer{profile: profile}
}

// Render writes the header fields, the relocation table and, when the
// load module was scanned, the computed layout.
func (r *TextRenderer) Render(report *view.Report, output io.Writer) error {
	var b strings.Builder
	h := report.Header

	b.WriteString("==============================\n")
	b.WriteString(fmt.Sprintf("%s (%s)\n", r.profile.LongName, r.profile.Arch))
	b.WriteString("==============================\n\n")

	b.WriteString("DOS HEADER\n\n")
	fields := []struct {
		label string
		value any
	}{
		{"Signature", h.Signature},
		{"Bytes in last block", h.BytesInLastBlock},
		{"Blocks in file", h.BlocksInFile},
		{"Number of relocations", h.NumRelocs},
		{"Size of header in paragraphs", h.HeaderParagraphs},
		{"Minimum extra paragraphs needed", h.MinAllocParagraphs},
		{"Maximum extra paragraphs needed", h.MaxAllocParagraphs},
		{"Initial (relative) SS value", h.InitialSS},
		{"Initial SP value", h.InitialSP},
		{"Checksum", h.Checksum},
		{"Initial IP value", h.InitialIP},
		{"Initial (relative) CS value", h.InitialCS},
		{"File address of relocation table", h.RelocTableOffset},
		{"Overlay number", h.OverlayNumber},
	}
	for _, f := range fields {
		writeField(&b, f.label, f.value)
	}

	b.WriteString("\nRelocations:\n\n")
	if len(h.Relocations) == 0 {
		b.WriteString("  (none)\n")
	}
	for i, rel := range h.Relocations {
		b.WriteString(fmt.Sprintf("  %3d. %04x:%04x -> %#x\n", i+1, rel.Segment, rel.Offset, rel.Linear()))
	}

	if report.Boundary != nil {
		b.WriteString("\n------------------------------\n")
		b.WriteString("Layout\n")
		b.WriteString("------------------------------\n")
		writeField(&b, "Start of load module", fmt.Sprintf("%#x", report.StartAddress))
		writeField(&b, "Start of data paragraph", fmt.Sprintf("%#x", report.DataParagraphAddress))
		writeField(&b, "Start of data in paragraph", report.Boundary.SmallestOffset)
		writeField(&b, "Data size", report.DataSize)
		writeField(&b, "Code size", report.CodeSize)
		b.WriteString("\n")
		for _, seg := range report.Segments {
			b.WriteString(fmt.Sprintf("  %-4s start=%#x length=%#x file=%#x+%#x [%s]\n",
				seg.Name, seg.Start, seg.Length, seg.DataOffset, seg.DataLength, seg.Flags))
		}
		writeField(&b, "Entry point", fmt.Sprintf("%#x", report.Entry))
	}

	_, err := output.Write([]byte(b.String()))
	return err
}

func writeField(b *strings.Builder, label string, value any) {
	b.WriteString(fmt.Sprintf("%-34s%v\n", label+":", value))
}

// Format returns the format type.
func (r *TextRenderer) Format() string {
	return "text"
}
