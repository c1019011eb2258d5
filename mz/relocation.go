package mz

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

// Relocation is a far pointer in the load module whose segment half is
// patched by the loader. Entries are only parsed here, never applied.
type Relocation struct {
	Offset  uint16 `json:"offset"`
	Segment uint16 `json:"segment"`
}

// Linear returns the load-module relative byte offset the fixup targets.
func (r Relocation) Linear() uint32 {
	return uint32(r.Segment)*paragraphSize + uint32(r.Offset)
}

func readRelocations(data []byte, tableOffset, count uint16) ([]Relocation, error) {
	end := int64(tableOffset) + relocationSize*int64(count)
	if end > int64(len(data)) {
		return nil, errors.Wrapf(ErrMalformedHeader,
			"relocation table [%#x, %#x) exceeds file length %#x", tableOffset, end, len(data))
	}
	if count == 0 {
		return nil, nil
	}

	relocs := make([]Relocation, count)
	r := bytes.NewReader(data[tableOffset:end])
	if err := binary.Read(r, binary.LittleEndian, relocs); err != nil {
		return nil, errors.WithMessage(err, "fail to read relocation table")
	}
	return relocs, nil
}
