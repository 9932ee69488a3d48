package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-scaffold/common"
)

// loaderBackend decodes one texture stream into tightly packed RGBA8 staging data.
// Concrete implementations handle format-specific details.
type loaderBackend interface {
	// Decode reads an encoded image and converts it to RGBA8.
	//
	// Parameters:
	//   - r: the reader providing the encoded image
	//
	// Returns:
	//   - common.TextureStagingData: the decoded pixels and dimensions
	//   - string: the detected format name (png, jpeg, gif, bmp, tiff, webp)
	//   - error: error if the stream is not a supported image
	Decode(r io.Reader) (common.TextureStagingData, string, error)
}
