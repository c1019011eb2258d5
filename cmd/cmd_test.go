package cmd

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ChainSafe/mzview/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func writeImage(t *testing.T) string {
	t.Helper()
	data := make([]byte, 1100)
	copy(data, "MZ")
	binary.LittleEndian.PutUint16(data[0x04:], 2)
	binary.LittleEndian.PutUint16(data[0x06:], 1)
	binary.LittleEndian.PutUint16(data[0x08:], 2)
	binary.LittleEndian.PutUint16(data[0x18:], 0x1c)
	binary.LittleEndian.PutUint16(data[0x1c:], 0x0005)
	binary.LittleEndian.PutUint16(data[0x1e:], 0x0001)
	for i := 992; i < len(data); i++ {
		data[i] = 0x90
	}
	copy(data[992:], []byte{0xb8, 0x01, 0x00, 0x8e, 0xd8, 0x8b, 0x1e, 0x04, 0x00})

	path := filepath.Join(t.TempDir(), "small.exe")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	app := cli.NewApp()
	app.Name = "mzview"
	app.Flags = []cli.Flag{LogLevelFlag}
	app.Before = SetupLogging
	app.Commands = []*cli.Command{HeaderCommand, SegmentsCommand}
	return app.RunContext(context.Background(), append([]string{"mzview"}, args...))
}

func TestSegmentsCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, run(t, "segments", "--format", "json", "--report-output-path", out, writeImage(t)))

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	var report view.Report
	require.NoError(t, json.Unmarshal(content, &report))

	require.NotNil(t, report.Boundary)
	assert.Equal(t, uint16(1), report.Boundary.DSParagraph)
	assert.Equal(t, uint16(4), report.Boundary.SmallestOffset)
	assert.Equal(t, int64(992), report.Entry)
	require.Len(t, report.Segments, 2)
	assert.Equal(t, "data", report.Segments[0].Name)
	assert.Equal(t, int64(88), report.Segments[0].Length)
}

func TestHeaderCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "header.txt")
	require.NoError(t, run(t, "--log-level", "error", "header", "--report-output-path", out, writeImage(t)))

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Number of relocations:            1\n")
	assert.Contains(t, string(content), "0001:0005 -> 0x15")
	assert.NotContains(t, string(content), "Layout")
}

func TestCommandErrors(t *testing.T) {
	image := writeImage(t)
	notMZ := filepath.Join(t.TempDir(), "notmz.bin")
	require.NoError(t, os.WriteFile(notMZ, []byte("\x7fELF\x00\x00"), 0600))
	badProfile := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(badProfile, []byte("arch: mips\n"), 0600))

	tests := map[string][]string{
		"missing file":  {"segments"},
		"absent file":   {"segments", filepath.Join(t.TempDir(), "absent.exe")},
		"not mz":        {"segments", notMZ},
		"header not mz": {"header", notMZ},
		"bad format":    {"segments", "--format", "xml", image},
		"bad profile":   {"segments", "--profile", badProfile, image},
		"bad log level": {"--log-level", "loud", "header", image},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, run(t, args...))
		})
	}
}
