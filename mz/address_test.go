package mz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartAddress(t *testing.T) {
	h := &Header{BlocksInFile: 2, HeaderParagraphs: 2, FileLength: 1024}

	start, err := h.StartAddress()
	require.NoError(t, err)
	assert.Equal(t, int64(992), start)
}

func TestStartAddressInvalid(t *testing.T) {
	tests := map[string]*Header{
		"negative":         {BlocksInFile: 0, HeaderParagraphs: 2, FileLength: 1024},
		"past end of file": {BlocksInFile: 4, HeaderParagraphs: 2, FileLength: 1024},
		"empty file":       {BlocksInFile: 1, HeaderParagraphs: 0, FileLength: 0},
	}
	for name, h := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := h.StartAddress()
			require.ErrorIs(t, err, ErrInvalidGeometry)
		})
	}
}

func TestSizesPartitionLoadModule(t *testing.T) {
	headers := []*Header{
		{BlocksInFile: 2, HeaderParagraphs: 2, FileLength: 1024},
		{BlocksInFile: 1, HeaderParagraphs: 32, FileLength: 600},
		{BlocksInFile: 40, HeaderParagraphs: 0x200, FileLength: 40 * 512},
	}
	dsValues := []uint16{0, 1, 0x10, 0x1234, 0xffff}
	offsets := []uint16{0, 1, 4, 15, 16}

	for _, h := range headers {
		start, err := h.StartAddress()
		require.NoError(t, err)
		for _, ds := range dsValues {
			for _, off := range offsets {
				assert.Equal(t, h.FileLength-start, h.DataSize(ds, off)+h.CodeSize(ds, off),
					"blocks=%d hdr=%d ds=%#x off=%d", h.BlocksInFile, h.HeaderParagraphs, ds, off)
			}
		}
	}
}

func TestSizes(t *testing.T) {
	h := &Header{BlocksInFile: 2, HeaderParagraphs: 2, FileLength: 1024}

	// data paragraph 1 starts at 992+16, first item 4 bytes in
	assert.Equal(t, int64(1024-(16+992+4)), h.DataSize(1, 4))
	assert.Equal(t, int64(20), h.CodeSize(1, 4))
	assert.Equal(t, int64(992+16), h.ParagraphAddress(1))
}
