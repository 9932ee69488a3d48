package instance

import "github.com/go-gl/mathgl/mgl32"

// GridBuilderOption is a functional option applied to the grid generator.
type GridBuilderOption func(*gridConfig)

// WithRows sets the number of rows (Z steps).
//
// Parameters:
//   - rows: number of rows
//
// Returns:
//   - GridBuilderOption: a function that sets the row count
func WithRows(rows int) GridBuilderOption {
	return func(c *gridConfig) {
		c.rows = rows
	}
}

// WithColumns sets the number of columns (X steps).
//
// Parameters:
//   - columns: number of columns
//
// Returns:
//   - GridBuilderOption: a function that sets the column count
func WithColumns(columns int) GridBuilderOption {
	return func(c *gridConfig) {
		c.columns = columns
	}
}

// WithDisplacement sets the offset subtracted from every cell position.
//
// Parameters:
//   - displacement: the offset
//
// Returns:
//   - GridBuilderOption: a function that sets the displacement
func WithDisplacement(displacement mgl32.Vec3) GridBuilderOption {
	return func(c *gridConfig) {
		c.displacement = displacement
	}
}
