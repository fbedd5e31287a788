package particles

// Frame is one tick of the field in the wire shape sent to the browser.
// Positions are flattened x,y,z triples; each edge is [a, b, opacity].
type Frame struct {
	Bound     float64      `json:"bound"`
	RotationX float64      `json:"rx"`
	RotationY float64      `json:"ry"`
	Positions []float32    `json:"p"`
	Edges     [][3]float32 `json:"e"`
}

// Frame captures the current state of the field.
func (f *Field) Frame() Frame {
	pos := make([]float32, 0, len(f.bodies)*3)
	for _, b := range f.bodies {
		pos = append(pos, float32(b.Pos.X), float32(b.Pos.Y), float32(b.Pos.Z))
	}

	edges := f.Edges()
	wire := make([][3]float32, len(edges))
	for i, e := range edges {
		wire[i] = [3]float32{float32(e.A), float32(e.B), float32(e.Opacity)}
	}

	return Frame{
		Bound:     f.cfg.Bound,
		RotationX: f.rotationX,
		RotationY: f.rotationY,
		Positions: pos,
		Edges:     wire,
	}
}
