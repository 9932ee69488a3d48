package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-scaffold/common"
	"github.com/google/uuid"
)

// LoaderBackendType identifies the decoder backend to use.
type LoaderBackendType int

const (
	// BackendTypeImage selects the image package decoder with png, jpeg, gif, bmp, tiff and webp registered.
	BackendTypeImage LoaderBackendType = iota
)

// defaultWorkers is the pool size used by LoadTextures when WithWorkers is not given.
const defaultWorkers = 4

// TextureAsset is a decoded texture ready for upload.
type TextureAsset struct {
	// ID is a unique identifier assigned when the texture is first decoded.
	ID string
	// Name is the path or caller-supplied name the texture is cached under.
	Name string
	// Format is the detected encoding, e.g. "png".
	Format string
	// Data holds the RGBA8 pixels and dimensions.
	Data common.TextureStagingData
}

// ProgressFunc is called after each texture in a batch finishes, successfully or not.
type ProgressFunc func(done, total int)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	textureCache map[string]TextureAsset

	workers int
	pool    worker.DynamicWorkerPool

	backend loaderBackend
}

// Loader decodes texture files into RGBA8 staging data and caches the results by name.
type Loader interface {
	// LoadTexture decodes the file at path, or returns the cached asset.
	//
	// Parameters:
	//   - path: the file path to the image
	//
	// Returns:
	//   - TextureAsset: the decoded texture
	//   - error: error if reading or decoding fails
	LoadTexture(path string) (TextureAsset, error)

	// LoadReader decodes an image stream and caches it under name.
	//
	// Parameters:
	//   - name: the cache key for the texture
	//   - r: the reader providing the encoded image
	//
	// Returns:
	//   - TextureAsset: the decoded texture
	//   - error: error if decoding fails
	LoadReader(name string, r io.Reader) (TextureAsset, error)

	// LoadTextures decodes every path on the worker pool and blocks until all are done.
	// Results are returned in input order. Failed paths leave a zero TextureAsset and contribute to the joined error.
	//
	// Parameters:
	//   - paths: the file paths to decode
	//   - progress: optional callback invoked once per finished path
	//
	// Returns:
	//   - []TextureAsset: the decoded textures in input order
	//   - error: the joined errors of every failed path, or nil
	LoadTextures(paths []string, progress ProgressFunc) ([]TextureAsset, error)

	// Get retrieves a cached texture by name.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - TextureAsset: the cached texture
	//   - bool: true if the texture was cached
	Get(name string) (TextureAsset, bool)

	// Textures returns a copy of the texture cache.
	//
	// Returns:
	//   - map[string]TextureAsset: all cached textures keyed by name
	Textures() map[string]TextureAsset
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeImage)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		textureCache: make(map[string]TextureAsset),
		workers:      defaultWorkers,
	}

	switch backendType {
	case BackendTypeImage:
		fallthrough
	default:
		l.backend = newImageLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}

	// Workers idle-exit after a second, so a pool that is only used at startup costs nothing afterwards.
	l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	return l
}

func (l *loader) LoadTexture(path string) (TextureAsset, error) {
	if cached, ok := l.Get(path); ok {
		return cached, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return TextureAsset{}, fmt.Errorf("failed to read texture %s: %w", path, err)
	}
	return l.LoadReader(path, bytes.NewReader(raw))
}

func (l *loader) LoadReader(name string, r io.Reader) (TextureAsset, error) {
	if cached, ok := l.Get(name); ok {
		return cached, nil
	}

	data, format, err := l.backend.Decode(r)
	if err != nil {
		return TextureAsset{}, fmt.Errorf("failed to load %s: %w", name, err)
	}

	asset := TextureAsset{
		ID:     uuid.NewString(),
		Name:   name,
		Format: format,
		Data:   data,
	}

	l.mu.Lock()
	// Another worker may have decoded the same name first; keep its ID stable.
	if existing, ok := l.textureCache[name]; ok {
		l.mu.Unlock()
		return existing, nil
	}
	l.textureCache[name] = asset
	l.mu.Unlock()

	common.Logger().Debug("texture decoded",
		"path", name,
		"format", format,
		"width", data.Width,
		"height", data.Height,
	)
	return asset, nil
}

func (l *loader) LoadTextures(paths []string, progress ProgressFunc) ([]TextureAsset, error) {
	results := make([]TextureAsset, len(paths))
	errs := make([]error, len(paths))

	var (
		wg         sync.WaitGroup
		progressMu sync.Mutex
		done       int
	)
	for i, path := range paths {
		wg.Add(1)
		idx, p := i, path
		l.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()

				asset, err := l.LoadTexture(p)
				results[idx] = asset
				errs[idx] = err

				if progress != nil {
					progressMu.Lock()
					done++
					progress(done, len(paths))
					progressMu.Unlock()
				}
				return asset, err
			},
		})
	}
	wg.Wait()

	return results, errors.Join(errs...)
}

func (l *loader) Get(name string) (TextureAsset, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	asset, ok := l.textureCache[name]
	return asset, ok
}

func (l *loader) Textures() map[string]TextureAsset {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]TextureAsset, len(l.textureCache))
	for k, v := range l.textureCache {
		result[k] = v
	}
	return result
}
