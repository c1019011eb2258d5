// Package analyzer provides an interface for recovering the code/data split
// of a DOS load module.
package analyzer

import (
	"github.com/ChainSafe/mzview/mz"
	"github.com/pkg/errors"
)

// Analyzer represents the interface for the analyzer.
type Analyzer interface {
	// Analyze scans the load module of data, described by header, and returns
	// where its data segment begins.
	Analyze(data []byte, header *mz.Header) (*SegmentBoundary, error)
}

// SegmentBoundary is the result of one analysis.
type SegmentBoundary struct {
	DSParagraph    uint16 `json:"dsParagraph"`    // value loaded into DS, in paragraphs from the load module start
	SmallestOffset uint16 `json:"smallestOffset"` // smallest displacement read relative to DS
}

var (
	// ErrMalformedOperand is returned when a literal operand is not a 16-bit
	// hexadecimal number.
	ErrMalformedOperand = errors.New("malformed operand")
	// ErrSegmentNotFound is returned when the scan never saw DS loaded.
	ErrSegmentNotFound = errors.New("data segment register load not found")
)
