package view

import (
	"strings"

	"github.com/pkg/errors"
)

// SegmentFlag describes the permissions and contents of a segment.
type SegmentFlag uint32

const (
	SegmentExecutable SegmentFlag = 1 << iota
	SegmentWritable
	SegmentReadable
	SegmentContainsData
	SegmentContainsCode
	SegmentDenyWrite
	SegmentDenyExecute
)

var segmentFlagNames = []struct {
	flag SegmentFlag
	name string
}{
	{SegmentReadable, "Readable"},
	{SegmentWritable, "Writable"},
	{SegmentExecutable, "Executable"},
	{SegmentContainsData, "ContainsData"},
	{SegmentContainsCode, "ContainsCode"},
	{SegmentDenyWrite, "DenyWrite"},
	{SegmentDenyExecute, "DenyExecute"},
}

func (f SegmentFlag) String() string {
	var names []string
	for _, fn := range segmentFlagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, "|")
}

// MarshalText renders the flag set by name in reports.
func (f SegmentFlag) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *SegmentFlag) UnmarshalText(text []byte) error {
	*f = 0
	if string(text) == "None" {
		return nil
	}
next:
	for _, name := range strings.Split(string(text), "|") {
		for _, fn := range segmentFlagNames {
			if fn.name == name {
				*f |= fn.flag
				continue next
			}
		}
		return errors.Errorf("unknown segment flag %q", name)
	}
	return nil
}

// Segment is a region of the virtual address space backed by file bytes.
type Segment struct {
	Name       string      `json:"name"`
	Start      int64       `json:"start"`
	Length     int64       `json:"length"`
	DataOffset int64       `json:"dataOffset"`
	DataLength int64       `json:"dataLength"`
	Flags      SegmentFlag `json:"flags"`
}

// Sink receives the memory map produced by a view.
type Sink interface {
	AddAutoSegment(seg Segment) error
	AddEntryPoint(addr int64) error
}

// ErrEntryPointSet is returned by Layout when a second entry point is added.
var ErrEntryPointSet = errors.New("entry point already set")

// Layout is a Sink that records what it is given.
type Layout struct {
	Segments []Segment `json:"segments,omitempty"`
	Entry    int64     `json:"entry"`

	hasEntry bool
}

func (l *Layout) AddAutoSegment(seg Segment) error {
	l.Segments = append(l.Segments, seg)
	return nil
}

func (l *Layout) AddEntryPoint(addr int64) error {
	if l.hasEntry {
		return errors.Wrapf(ErrEntryPointSet, "at %#x, adding %#x", l.Entry, addr)
	}
	l.Entry = addr
	l.hasEntry = true
	return nil
}

// HasEntry reports whether an entry point was added.
func (l *Layout) HasEntry() bool {
	return l.hasEntry
}
