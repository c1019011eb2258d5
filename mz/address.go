package mz

import "github.com/pkg/errors"

// StartAddress returns the file offset where the load module begins.
func (h *Header) StartAddress() (int64, error) {
	start := h.loadModuleStart()
	if start < 0 || start > h.FileLength {
		return 0, errors.Wrapf(ErrInvalidGeometry,
			"load module start %d outside file of %d bytes (blocks=%d, header paragraphs=%d)",
			start, h.FileLength, h.BlocksInFile, h.HeaderParagraphs)
	}
	return start, nil
}

// DataSize is the number of bytes from the first data item to the end of
// the file. ds is the data segment paragraph relative to the load module,
// offset the position of the first data item within that paragraph.
func (h *Header) DataSize(ds, offset uint16) int64 {
	return h.FileLength - (int64(ds)*paragraphSize + h.loadModuleStart() + int64(offset))
}

// CodeSize is the number of load module bytes preceding the first data item.
func (h *Header) CodeSize(ds, offset uint16) int64 {
	return h.FileLength - h.DataSize(ds, offset) - h.loadModuleStart()
}

// ParagraphAddress returns the file offset of paragraph ds of the load module.
func (h *Header) ParagraphAddress(ds uint16) int64 {
	return int64(ds)*paragraphSize + h.loadModuleStart()
}

func (h *Header) loadModuleStart() int64 {
	return blockSize*int64(h.BlocksInFile) - paragraphSize*int64(h.HeaderParagraphs)
}
