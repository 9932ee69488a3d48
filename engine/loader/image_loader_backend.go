package loader

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/Carmen-Shannon/oxy-scaffold/common"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// imageLoaderBackend decodes every format registered with the image package.
type imageLoaderBackend struct{}

var _ loaderBackend = &imageLoaderBackend{}

func newImageLoaderBackend() loaderBackend {
	return &imageLoaderBackend{}
}

func (b *imageLoaderBackend) Decode(r io.Reader) (common.TextureStagingData, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return common.TextureStagingData{}, "", fmt.Errorf("decode image: %w", err)
	}
	return toStagingData(img), format, nil
}

// toStagingData draws img into a zero-origin RGBA image so rows are tightly packed.
func toStagingData(img image.Image) common.TextureStagingData {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || bounds.Min != (image.Point{}) || rgba.Stride != bounds.Dx()*4 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}
	return common.TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}
}
