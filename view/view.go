// Package view turns an MZ executable into a memory map: one data segment,
// one code segment and an entry point, handed to a Sink.
package view

import (
	"fmt"

	"github.com/ChainSafe/mzview/analyzer"
	"github.com/ChainSafe/mzview/analyzer/segment"
	"github.com/ChainSafe/mzview/disassembler"
	"github.com/ChainSafe/mzview/disassembler/manager"
	"github.com/ChainSafe/mzview/mz"
	"github.com/ChainSafe/mzview/profile"
	"github.com/h2non/filetype"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	dataSegmentName = "data"
	codeSegmentName = "code"
)

// Report is everything a view computed for one file.
type Report struct {
	Name     string                    `json:"name"`
	Arch     string                    `json:"arch"`
	Header   *mz.Header                `json:"header"`
	Boundary *analyzer.SegmentBoundary `json:"boundary,omitempty"`

	StartAddress         int64 `json:"startAddress"`
	DataParagraphAddress int64 `json:"dataParagraphAddress"`
	DataSize             int64 `json:"dataSize"`
	CodeSize             int64 `json:"codeSize"`

	Layout
}

// View is the MSDOS binary view.
type View struct {
	profile  *profile.LoaderProfile
	analyzer analyzer.Analyzer
}

// New builds a view from prof. A nil profile selects profile.Default.
func New(prof *profile.LoaderProfile) (*View, error) {
	if prof == nil {
		prof = profile.Default()
	}
	prof, err := prof.Resolve()
	if err != nil {
		return nil, fmt.Errorf("invalid loader profile: %w", err)
	}
	typ, err := disassembler.ParseType(prof.Disassembler)
	if err != nil {
		return nil, err
	}
	dis, err := manager.NewDisassembler(typ)
	if err != nil {
		return nil, err
	}
	return &View{
		profile: prof,
		analyzer: segment.NewAnalyzer(dis,
			segment.WithDecodeWindow(prof.DecodeWindow),
			segment.WithMaxInstructions(prof.MaxInstructions),
		),
	}, nil
}

func (v *View) Name() string     { return v.profile.Name }
func (v *View) LongName() string { return v.profile.LongName }
func (v *View) Arch() string     { return v.profile.Arch }

// IsExecutable reports that MZ images always hold code.
func (v *View) IsExecutable() bool { return true }

// IsValidForData reports whether data looks like an MZ executable.
func (v *View) IsValidForData(data []byte) bool {
	return IsValidForData(data)
}

// IsValidForData reports whether data starts with the MZ signature.
func IsValidForData(data []byte) bool {
	return filetype.Is(data, "exe")
}

// Header parses the header of data without scanning the load module.
func (v *View) Header(data []byte) (*Report, error) {
	header, err := mz.Parse(data)
	if err != nil {
		return nil, err
	}
	r := &Report{Name: v.Name(), Arch: v.Arch(), Header: header}
	if r.StartAddress, err = header.StartAddress(); err != nil {
		log.Warnf("%v", err)
	}
	return r, nil
}

// Analyze parses data and computes its layout without emitting it.
func (v *View) Analyze(data []byte) (*Report, error) {
	header, err := mz.Parse(data)
	if err != nil {
		return nil, err
	}
	start, err := header.StartAddress()
	if err != nil {
		return nil, err
	}
	boundary, err := v.analyzer.Analyze(data, header)
	if err != nil {
		return nil, err
	}

	ds, offset := boundary.DSParagraph, boundary.SmallestOffset
	dataSize := header.DataSize(ds, offset)
	codeSize := header.CodeSize(ds, offset)
	if dataSize < 0 || codeSize < 0 {
		return nil, errors.Wrapf(mz.ErrInvalidGeometry,
			"ds %#x offset %#x gives data size %d, code size %d", ds, offset, dataSize, codeSize)
	}

	r := &Report{
		Name:                 v.Name(),
		Arch:                 v.Arch(),
		Header:               header,
		Boundary:             boundary,
		StartAddress:         start,
		DataParagraphAddress: header.ParagraphAddress(ds),
		DataSize:             dataSize,
		CodeSize:             codeSize,
	}
	r.Segments = []Segment{
		{
			Name:       dataSegmentName,
			Start:      int64(ds),
			Length:     dataSize,
			DataOffset: start + codeSize,
			DataLength: dataSize,
			Flags:      SegmentReadable | SegmentContainsData | SegmentDenyExecute,
		},
		{
			Name:       codeSegmentName,
			Start:      dataSize + int64(ds) + int64(offset),
			Length:     codeSize,
			DataOffset: start,
			DataLength: codeSize,
			Flags:      SegmentReadable | SegmentExecutable,
		},
	}
	r.Entry = start
	r.hasEntry = true
	return r, nil
}

// Init analyzes data and hands the resulting segments and entry point to
// sink. Nothing reaches sink when the analysis fails.
func (v *View) Init(data []byte, sink Sink) (*Report, error) {
	r, err := v.Analyze(data)
	if err != nil {
		return nil, err
	}
	log.Infof("start of data paragraph: %#x", r.DataParagraphAddress)
	log.Infof("start of data in paragraph: %d", r.Boundary.SmallestOffset)

	for _, seg := range r.Segments {
		if err := sink.AddAutoSegment(seg); err != nil {
			return nil, errors.WithMessagef(err, "adding %s segment", seg.Name)
		}
	}
	if err := sink.AddEntryPoint(r.Entry); err != nil {
		return nil, errors.WithMessage(err, "adding entry point")
	}
	return r, nil
}
