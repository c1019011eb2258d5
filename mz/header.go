// Package mz decodes the MS-DOS MZ executable header and its relocation table.
package mz

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	// HeaderSize is the size of the fixed part of the header, up to and
	// including the overlay number.
	HeaderSize = 0x1c

	relocationSize = 4
	paragraphSize  = 16
	blockSize      = 512
)

// Magic is the two byte signature at the start of the header.
type Magic [2]byte

// Signature is the two byte magic every MZ executable starts with.
var Signature = Magic{'M', 'Z'}

func (m Magic) String() string {
	return string(m[:])
}

func (m Magic) MarshalText() ([]byte, error) {
	return m[:], nil
}

func (m *Magic) UnmarshalText(text []byte) error {
	if len(text) != len(m) {
		return errors.Errorf("signature %q is not two bytes", text)
	}
	copy(m[:], text)
	return nil
}

// rawHeader mirrors the on-disk layout of the fixed header.
type rawHeader struct {
	Signature          Magic
	BytesInLastBlock   uint16
	BlocksInFile       uint16
	NumRelocs          uint16
	HeaderParagraphs   uint16
	MinAllocParagraphs uint16
	MaxAllocParagraphs uint16
	InitialSS          uint16
	InitialSP          uint16
	Checksum           uint16
	InitialIP          uint16
	InitialCS          uint16
	RelocTableOffset   uint16
	OverlayNumber      uint16
}

// Header is a parsed MZ header. It is never modified after Parse returns.
type Header struct {
	Signature          Magic  `json:"signature"`
	BytesInLastBlock   uint16 `json:"bytesInLastBlock"`
	BlocksInFile       uint16 `json:"blocksInFile"`
	NumRelocs          uint16 `json:"numRelocs"`
	HeaderParagraphs   uint16 `json:"headerParagraphs"`
	MinAllocParagraphs uint16 `json:"minAllocParagraphs"`
	MaxAllocParagraphs uint16 `json:"maxAllocParagraphs"`
	InitialSS          uint16 `json:"initialSS"`
	InitialSP          uint16 `json:"initialSP"`
	Checksum           uint16 `json:"checksum"`
	InitialIP          uint16 `json:"initialIP"`
	InitialCS          uint16 `json:"initialCS"`
	RelocTableOffset   uint16 `json:"relocTableOffset"`
	OverlayNumber      uint16 `json:"overlayNumber"`

	// FileLength is the length of the buffer the header was parsed from.
	FileLength int64 `json:"fileLength"`

	Relocations []Relocation `json:"relocations"`
}

// Parse decodes the fixed header fields and the relocation table from data.
func Parse(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, errors.Wrapf(ErrMalformedHeader, "need %d bytes, got %d", HeaderSize, len(data))
	}

	var raw rawHeader
	if err := binary.Read(bytes.NewReader(data[:HeaderSize]), binary.LittleEndian, &raw); err != nil {
		return nil, errors.WithMessage(err, "fail to read MZ header")
	}
	if raw.Signature != Signature {
		return nil, errors.Wrapf(ErrMalformedHeader, "invalid signature %q", raw.Signature[:])
	}

	h := &Header{
		Signature:          raw.Signature,
		BytesInLastBlock:   raw.BytesInLastBlock,
		BlocksInFile:       raw.BlocksInFile,
		NumRelocs:          raw.NumRelocs,
		HeaderParagraphs:   raw.HeaderParagraphs,
		MinAllocParagraphs: raw.MinAllocParagraphs,
		MaxAllocParagraphs: raw.MaxAllocParagraphs,
		InitialSS:          raw.InitialSS,
		InitialSP:          raw.InitialSP,
		Checksum:           raw.Checksum,
		InitialIP:          raw.InitialIP,
		InitialCS:          raw.InitialCS,
		RelocTableOffset:   raw.RelocTableOffset,
		OverlayNumber:      raw.OverlayNumber,
		FileLength:         int64(len(data)),
	}

	relocs, err := readRelocations(data, h.RelocTableOffset, h.NumRelocs)
	if err != nil {
		return nil, err
	}
	h.Relocations = relocs
	return h, nil
}

// HasSignature reports whether data starts with the MZ magic.
func HasSignature(data []byte) bool {
	return len(data) >= len(Signature) && data[0] == Signature[0] && data[1] == Signature[1]
}
