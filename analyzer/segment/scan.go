package segment

import (
	"github.com/ChainSafe/mzview/analyzer"
	"github.com/ChainSafe/mzview/asmparser"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	paragraphSize = 16

	// initialSmallestOffset means no access narrower than a paragraph seen yet.
	initialSmallestOffset = paragraphSize
)

// State is the position of a scan in its state machine.
type State int

const (
	StateScanning     State = iota // DS not loaded yet
	StateSegmentKnown              // DS loaded, looking for the first data reference
	StateDone                      // cursor reached end
)

func (s State) String() string {
	switch s {
	case StateScanning:
		return "SCANNING"
	case StateSegmentKnown:
		return "SEGMENT_KNOWN"
	case StateDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// scan holds the mutable state of a single pass. It is never shared.
type scan struct {
	state  State
	start  int64
	cursor int64
	end    int64
	steps  int

	dsKnown        bool
	dsParagraph    uint16
	smallestOffset uint16

	pendingAX    string
	hasPendingAX bool
}

func newScan(start, fileLength int64) *scan {
	s := &scan{
		state:          StateScanning,
		start:          start,
		cursor:         start,
		end:            fileLength,
		smallestOffset: initialSmallestOffset,
	}
	if s.cursor >= s.end {
		s.state = StateDone
	}
	return s
}

// step advances past inst and applies whichever pattern it matches.
func (s *scan) step(inst *asmparser.Instruction) error {
	at := s.cursor
	s.cursor += int64(inst.Length)
	s.steps++

	if caps, ok := loadAXPattern.Match(inst.Tokens); ok {
		s.pendingAX = caps["value"].Text
		s.hasPendingAX = true
		log.Debugf("%#06x: ax <- %s", at, s.pendingAX)
	} else if _, ok := loadDSPattern.Match(inst.Tokens); ok {
		if err := s.loadDS(at); err != nil {
			return err
		}
	} else {
		if _, ok := writeAXPattern.Match(inst.Tokens); ok && s.hasPendingAX {
			s.hasPendingAX = false
			log.Debugf("%#06x: ax overwritten, literal %s dropped", at, s.pendingAX)
		}
		if caps, ok := loadMemPattern.Match(inst.Tokens); ok && s.state == StateSegmentKnown {
			if err := s.reference(at, caps["disp"].Text); err != nil {
				return err
			}
		}
	}

	if s.cursor >= s.end {
		s.state = StateDone
	}
	return nil
}

func (s *scan) loadDS(at int64) error {
	if !s.hasPendingAX {
		return errors.Wrapf(analyzer.ErrMalformedOperand, "ds loaded from ax at %#x before any literal", at)
	}
	ds, err := parseLiteral(s.pendingAX)
	if err != nil {
		return errors.WithMessagef(err, "ds load at %#x", at)
	}
	s.dsParagraph = ds
	s.dsKnown = true
	s.state = StateSegmentKnown
	// data starts no later than one paragraph past the segment base
	s.narrow(s.paragraphBase() + paragraphSize)
	log.Debugf("%#06x: ds <- %#x, end %#x", at, ds, s.end)
	return nil
}

func (s *scan) reference(at int64, literal string) error {
	disp, err := parseLiteral(literal)
	if err != nil {
		return errors.WithMessagef(err, "memory reference at %#x", at)
	}
	if disp >= s.smallestOffset {
		return nil
	}
	s.smallestOffset = disp
	s.narrow(s.paragraphBase() + int64(disp))
	log.Debugf("%#06x: data reference ds:%#x, end %#x", at, disp, s.end)
	return nil
}

// narrow lowers end to candidate. end never grows.
func (s *scan) narrow(candidate int64) {
	if candidate < s.end {
		s.end = candidate
	}
}

func (s *scan) paragraphBase() int64 {
	return int64(s.dsParagraph)*paragraphSize + s.start
}

func (s *scan) result() (*analyzer.SegmentBoundary, error) {
	if !s.dsKnown {
		return nil, errors.Wrapf(analyzer.ErrSegmentNotFound, "after %d instructions from %#x", s.steps, s.start)
	}
	return &analyzer.SegmentBoundary{
		DSParagraph:    s.dsParagraph,
		SmallestOffset: s.smallestOffset,
	}, nil
}
