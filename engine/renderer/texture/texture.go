// Package texture prepares decoded images for GPU upload and caches the resulting texture bind groups in slots
// keyed by power-of-two dimensions.
//
// Every texture is resampled to the nearest power of two not larger than MaxDimension on each axis before upload.
// The slot of a texture is derived from that resampled size, and a cache entry is keyed by the slot together with a
// hash of the resampled pixels, so two different images never share a bind group.
package texture

import (
	"errors"
	"fmt"
	"hash/fnv"
	"image"
	"math/bits"

	"github.com/Carmen-Shannon/oxy-scaffold/common"
	"github.com/cogentcore/webgpu/wgpu"
	"golang.org/x/image/draw"
)

const (
	// MaxDimension is the largest texture edge kept after resampling.
	MaxDimension = 256

	// SlotsPerAxis is the number of power-of-two sizes from 1 to MaxDimension.
	SlotsPerAxis = 9

	// TextureBinding is the binding index of the texture view inside the texture bind group.
	TextureBinding = 0
	// SamplerBinding is the binding index of the sampler inside the texture bind group.
	SamplerBinding = 1
)

// ErrInvalidStagingData is returned when staging data does not hold Width*Height RGBA8 pixels.
var ErrInvalidStagingData = errors.New("texture: pixel count does not match size")

// Slot addresses a cell in the texture cache. Column is log2 of the width, Row is log2 of the height.
type Slot struct {
	Column int
	Row    int
}

// Width returns the texture width stored in this slot.
func (s Slot) Width() int {
	return 1 << s.Column
}

// Height returns the texture height stored in this slot.
func (s Slot) Height() int {
	return 1 << s.Row
}

// FloorPowerOfTwo returns the largest power of two that is <= n, clamped to [1, MaxDimension].
//
// Parameters:
//   - n: the edge length in pixels
//
// Returns:
//   - int: the power-of-two edge length
func FloorPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	if n >= MaxDimension {
		return MaxDimension
	}
	return 1 << (bits.Len(uint(n)) - 1)
}

// SlotFor returns the cache slot for a texture of the given size after resampling.
//
// Parameters:
//   - width: the source width in pixels
//   - height: the source height in pixels
//
// Returns:
//   - Slot: the slot the resampled texture occupies
func SlotFor(width, height int) Slot {
	return Slot{
		Column: bits.TrailingZeros(uint(FloorPowerOfTwo(width))),
		Row:    bits.TrailingZeros(uint(FloorPowerOfTwo(height))),
	}
}

// Key identifies one cached texture: its slot plus a hash of the resampled pixels.
type Key struct {
	Slot Slot
	Hash uint64
}

// KeyFor returns the cache key of prepared staging data.
//
// Parameters:
//   - staged: staging data already resampled by Prepare
//   - slot: the slot Prepare returned with it
//
// Returns:
//   - Key: the cache key
func KeyFor(staged common.TextureStagingData, slot Slot) Key {
	h := fnv.New64a()
	_, _ = h.Write(staged.Pixels)
	return Key{Slot: slot, Hash: h.Sum64()}
}

// Prepare resamples the staging data to its power-of-two slot size and returns the new staging data with its slot.
// Data that already has a power-of-two size within MaxDimension is returned unchanged.
//
// Parameters:
//   - src: RGBA8 staging data
//
// Returns:
//   - common.TextureStagingData: the resampled staging data
//   - Slot: the slot derived from the resampled size
//   - error: ErrInvalidStagingData if the pixel count does not match the size
func Prepare(src common.TextureStagingData) (common.TextureStagingData, Slot, error) {
	if !src.Valid() {
		return common.TextureStagingData{}, Slot{}, fmt.Errorf("%w: %dx%d with %d bytes", ErrInvalidStagingData, src.Width, src.Height, len(src.Pixels))
	}

	slot := SlotFor(int(src.Width), int(src.Height))
	w, h := slot.Width(), slot.Height()
	if int(src.Width) == w && int(src.Height) == h {
		return src, slot, nil
	}

	srcImg := &image.RGBA{
		Pix:    src.Pixels,
		Stride: int(src.Width) * 4,
		Rect:   image.Rect(0, 0, int(src.Width), int(src.Height)),
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), srcImg, srcImg.Bounds(), draw.Src, nil)

	return common.TextureStagingData{
		Pixels: dst.Pix,
		Width:  uint32(w),
		Height: uint32(h),
	}, slot, nil
}

// LayoutDescriptor describes the texture bind group: a filterable 2D texture and its sampler, both fragment visible.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the layout descriptor for the texture bind group
func LayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Texture Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    TextureBinding,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
					Multisampled:  false,
				},
			},
			{
				Binding:    SamplerBinding,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	}
}
