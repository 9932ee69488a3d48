package loader

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithWorkers sets the maximum number of goroutines LoadTextures decodes with. Values below 1 are ignored.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithTexture is an option builder that pre-populates the texture cache.
//
// Parameters:
//   - name: the cache key for the texture
//   - asset: the texture to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the texture option to a loader
func WithTexture(name string, asset TextureAsset) LoaderBuilderOption {
	return func(l *loader) {
		l.textureCache[name] = asset
	}
}
