package instance

import "github.com/go-gl/mathgl/mgl32"

// Grid defaults: a 10x10 layout shifted by (5, 0, 5) so the grid is centered on the origin.
const (
	DefaultRows    = 10
	DefaultColumns = 10
)

// DefaultDisplacement is subtracted from every grid cell position.
var DefaultDisplacement = mgl32.Vec3{DefaultColumns * 0.5, 0, DefaultRows * 0.5}

type gridConfig struct {
	rows         int
	columns      int
	displacement mgl32.Vec3
}

// NewGrid generates the instance grid. Rows advance along Z and columns along X; the
// sequence is z-outer, x-inner so instance index = z*columns + x. Each position is
// (x, 0, z) - displacement and each rotation follows common.InstanceRotation.
// The result is deterministic for a given configuration.
//
// Parameters:
//   - options: functional options overriding the 10x10 default layout
//
// Returns:
//   - []Instance: exactly rows*columns instances, or nil if either dimension is not positive
func NewGrid(options ...GridBuilderOption) []Instance {
	cfg := &gridConfig{
		rows:         DefaultRows,
		columns:      DefaultColumns,
		displacement: DefaultDisplacement,
	}
	for _, opt := range options {
		opt(cfg)
	}
	if cfg.rows <= 0 || cfg.columns <= 0 {
		return nil
	}

	instances := make([]Instance, 0, cfg.rows*cfg.columns)
	for z := range cfg.rows {
		for x := range cfg.columns {
			position := mgl32.Vec3{float32(x), 0, float32(z)}.Sub(cfg.displacement)
			instances = append(instances, NewInstance(position))
		}
	}
	return instances
}
