package texture

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-scaffold/common"
	"github.com/Carmen-Shannon/oxy-scaffold/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c [4]byte) common.TextureStagingData {
	pix := make([]byte, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		copy(pix[i:], c[:])
	}
	return common.TextureStagingData{Pixels: pix, Width: uint32(w), Height: uint32(h)}
}

func TestFloorPowerOfTwo(t *testing.T) {
	tests := map[int]int{
		-3: 1, 0: 1, 1: 1, 2: 2, 3: 2, 100: 64, 128: 128, 255: 128, 256: 256, 1000: 256,
	}
	for in, want := range tests {
		assert.Equal(t, want, FloorPowerOfTwo(in), "input %d", in)
	}
}

func TestSlotFor_DerivedFromActualSize(t *testing.T) {
	assert.Equal(t, Slot{Column: 8, Row: 8}, SlotFor(256, 256))
	assert.Equal(t, Slot{Column: 6, Row: 5}, SlotFor(64, 32))
	assert.Equal(t, Slot{Column: 8, Row: 0}, SlotFor(4096, 1))
	assert.NotEqual(t, SlotFor(256, 256), SlotFor(128, 128))

	s := SlotFor(100, 300)
	assert.Equal(t, 64, s.Width())
	assert.Equal(t, 256, s.Height())
}

func TestPrepare_PowerOfTwoUnchanged(t *testing.T) {
	src := solid(4, 2, [4]byte{1, 2, 3, 4})
	out, slot, err := Prepare(src)
	require.NoError(t, err)
	assert.Equal(t, src, out)
	assert.Equal(t, Slot{Column: 2, Row: 1}, slot)
}

func TestPrepare_ResamplesToSlotSize(t *testing.T) {
	src := solid(300, 5, [4]byte{200, 100, 50, 255})
	out, slot, err := Prepare(src)
	require.NoError(t, err)

	require.True(t, out.Valid())
	assert.Equal(t, uint32(256), out.Width)
	assert.Equal(t, uint32(4), out.Height)
	assert.Equal(t, Slot{Column: 8, Row: 2}, slot)
	for i, want := range []byte{200, 100, 50, 255} {
		assert.InDelta(t, want, out.Pixels[i], 1)
	}
}

func TestLayoutDescriptor(t *testing.T) {
	desc := LayoutDescriptor()
	require.Len(t, desc.Entries, 2)
	assert.Equal(t, uint32(TextureBinding), desc.Entries[0].Binding)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, desc.Entries[0].Texture.SampleType)
	assert.Equal(t, uint32(SamplerBinding), desc.Entries[1].Binding)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, desc.Entries[1].Sampler.Type)
}

func TestPrepare_RejectsMismatchedPixels(t *testing.T) {
	_, _, err := Prepare(common.TextureStagingData{Pixels: make([]byte, 16), Width: 300, Height: 300})
	assert.ErrorIs(t, err, ErrInvalidStagingData)

	_, _, err = Prepare(common.TextureStagingData{})
	assert.ErrorIs(t, err, ErrInvalidStagingData)
}

func TestKeyFor_DistinguishesContent(t *testing.T) {
	red, slot, err := Prepare(solid(64, 64, [4]byte{255, 0, 0, 255}))
	require.NoError(t, err)
	blue, _, err := Prepare(solid(64, 64, [4]byte{0, 0, 255, 255}))
	require.NoError(t, err)

	assert.NotEqual(t, KeyFor(red, slot), KeyFor(blue, slot))
	assert.Equal(t, KeyFor(red, slot), KeyFor(red, slot))
	assert.Equal(t, slot, KeyFor(red, slot).Slot)
}

func TestCache_StoreAndAcquire(t *testing.T) {
	c := NewCache()
	key := Key{Slot: SlotFor(64, 64), Hash: 1}

	_, ok := c.Acquire(key)
	assert.False(t, ok)

	p := bind_group_provider.NewBindGroupProvider("texture_64x64")
	require.NoError(t, c.Store(key, p))
	got, ok := c.Acquire(key)
	require.True(t, ok)
	assert.Same(t, p, got)
	assert.Equal(t, 1, c.Len())

	_, ok = c.Acquire(Key{Slot: key.Slot, Hash: 2})
	assert.False(t, ok, "same slot with different pixels must not resolve")

	assert.Error(t, c.Store(key, p), "a stored key cannot be replaced")
	assert.Error(t, c.Store(Key{Slot: Slot{Column: SlotsPerAxis}}, p))

	c.Release()
	assert.Zero(t, c.Len())
}

func TestCache_DropReleasesWithLastReference(t *testing.T) {
	c := NewCache()
	key := Key{Slot: SlotFor(8, 8), Hash: 7}
	require.NoError(t, c.Store(key, bind_group_provider.NewBindGroupProvider("texture_8x8")))
	_, ok := c.Acquire(key)
	require.True(t, ok)

	c.Drop(key)
	assert.Equal(t, 1, c.Len())
	c.Drop(key)
	assert.Zero(t, c.Len())
	c.Drop(key)
	assert.Zero(t, c.Len())
}
