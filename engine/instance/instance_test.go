package instance

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid_CountAndOrder(t *testing.T) {
	grid := NewGrid()
	require.Len(t, grid, 100)

	assert.Equal(t, mgl32.Vec3{-5, 0, -5}, grid[0].Position)
	assert.Equal(t, mgl32.Vec3{-4, 0, -5}, grid[1].Position, "x advances first")
	assert.Equal(t, mgl32.Vec3{-5, 0, -4}, grid[10].Position, "z advances every 10 instances")
	assert.Equal(t, mgl32.Vec3{4, 0, 4}, grid[99].Position)

	for z := range 10 {
		for x := range 10 {
			want := mgl32.Vec3{float32(x) - 5, 0, float32(z) - 5}
			assert.Equal(t, want, grid[z*10+x].Position)
		}
	}
}

func TestNewGrid_Deterministic(t *testing.T) {
	a := NewGrid()
	b := NewGrid(WithDisplacement(DefaultDisplacement))
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Position, b[i].Position, "instance %d", i)
		assert.Equal(t, a[i].Rotation, b[i].Rotation, "instance %d", i)
	}
	assert.Equal(t, MarshalAll(a), MarshalAll(b))
}

func TestNewGrid_CenterInstanceHasIdentityRotation(t *testing.T) {
	grid := NewGrid()
	center := grid[5*10+5]

	require.Equal(t, mgl32.Vec3{0, 0, 0}, center.Position)
	assert.True(t, center.Rotation.ApproxEqual(mgl32.QuatIdent()))
	assert.True(t, center.ModelMatrix().ApproxEqual(mgl32.Ident4()))

	for _, inst := range grid {
		for _, v := range inst.ModelMatrix() {
			assert.False(t, math.IsNaN(float64(v)))
		}
	}
}

func TestNewGrid_Options(t *testing.T) {
	grid := NewGrid(WithRows(2), WithColumns(3), WithDisplacement(mgl32.Vec3{}))
	require.Len(t, grid, 6)
	assert.Equal(t, mgl32.Vec3{2, 0, 1}, grid[5].Position)

	assert.Nil(t, NewGrid(WithRows(0)))
	assert.Nil(t, NewGrid(WithColumns(-1)))
}

func TestMarshalAll_ColumnMajorLittleEndian(t *testing.T) {
	inst := NewInstance(mgl32.Vec3{1, 2, 3})
	data := MarshalAll([]Instance{inst, inst})
	require.Len(t, data, 128)

	// translation lives in the last column: elements 12, 13, 14
	for i, want := range []float32{1, 2, 3} {
		got := math.Float32frombits(binary.LittleEndian.Uint32(data[(12+i)*4:]))
		assert.InDelta(t, want, got, 1e-6)
	}
	assert.Equal(t, data[:64], data[64:])
	assert.Nil(t, MarshalAll(nil))
}

func TestVertexLayout(t *testing.T) {
	layout := VertexLayout()

	assert.Equal(t, uint64(64), layout.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeInstance, layout.StepMode)
	require.Len(t, layout.Attributes, 4)
	for i, attr := range layout.Attributes {
		assert.Equal(t, wgpu.VertexFormatFloat32x4, attr.Format)
		assert.Equal(t, uint64(i*16), attr.Offset)
		assert.Equal(t, uint32(5+i), attr.ShaderLocation)
	}
}
