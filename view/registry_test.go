package view

import (
	"sync"
	"testing"

	"github.com/ChainSafe/mzview/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, Register(reg, profile.Default()))
	require.ErrorIs(t, Register(reg, profile.Default()), ErrDuplicateView)

	def, ok := reg.Lookup("MSDOS")
	require.True(t, ok)
	assert.Equal(t, "MSDOS", def.LongName())

	_, ok = reg.Lookup("ELF")
	assert.False(t, ok)
	assert.Len(t, reg.Views(), 1)
}

func TestRegisterDefaultLoaderSettings(t *testing.T) {
	reg := NewRegistry()
	prof := &profile.LoaderProfile{UseDefaultLoaderSettings: true, LongName: "MS-DOS MZ"}
	require.NoError(t, Register(reg, prof))

	def, ok := reg.Lookup("MSDOS")
	require.True(t, ok)
	assert.Equal(t, "MS-DOS MZ", def.LongName())

	var layout Layout
	_, err := def.Init(smallModel(t), &layout)
	require.NoError(t, err)
	assert.Len(t, layout.Segments, 2)
}

func TestRegisterInvalidProfile(t *testing.T) {
	reg := NewRegistry()
	prof := profile.Default()
	prof.Arch = "mips"
	assert.Error(t, Register(reg, prof))
	assert.Empty(t, reg.Views())
}

func TestRegistryOpen(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, Register(reg, nil))

	def, err := reg.Open(smallModel(t))
	require.NoError(t, err)

	var layout Layout
	_, err = def.Init(smallModel(t), &layout)
	require.NoError(t, err)
	assert.Len(t, layout.Segments, 2)

	_, err = reg.Open([]byte("\x7fELF"))
	require.ErrorIs(t, err, ErrNoView)
}

func TestRegistryConcurrentUse(t *testing.T) {
	reg := NewRegistry()
	data := smallModel(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = Register(reg, nil)
			_, _ = reg.Open(data)
		}()
	}
	wg.Wait()
	assert.Len(t, reg.Views(), 1)
}
