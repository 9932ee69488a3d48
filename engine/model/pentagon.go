package model

// pentagonVertices is a unit pentagon in the XY plane with UVs mapping the full texture.
var pentagonVertices = []GPUVertex{
	{Position: [3]float32{-0.0868241, 0.49240386, 0.0}, TexCoords: [2]float32{0.4131759, 0.00759614}},
	{Position: [3]float32{-0.49513406, 0.06958647, 0.0}, TexCoords: [2]float32{0.0048659444, 0.43041354}},
	{Position: [3]float32{-0.21918549, -0.44939706, 0.0}, TexCoords: [2]float32{0.28081453, 0.949397}},
	{Position: [3]float32{0.35966998, -0.3473291, 0.0}, TexCoords: [2]float32{0.85967, 0.84732914}},
	{Position: [3]float32{0.44147372, 0.2347359, 0.0}, TexCoords: [2]float32{0.9414737, 0.2652641}},
}

// pentagonIndices fans three counter-clockwise triangles around vertex 4.
var pentagonIndices = []uint16{
	0, 1, 4,
	1, 2, 4,
	2, 3, 4,
}

// NewPentagon creates the built-in pentagon mesh drawn by the instance grid.
//
// Returns:
//   - Model: the pentagon model
func NewPentagon() Model {
	vertices := make([]GPUVertex, len(pentagonVertices))
	copy(vertices, pentagonVertices)
	indices := make([]uint16, len(pentagonIndices))
	copy(indices, pentagonIndices)
	return NewModel(
		WithName("pentagon"),
		WithVertices(vertices),
		WithIndices(indices),
	)
}
