package layout

// LED pitch of the GA401 panel in centimetres.
const (
	PitchX = 0.8
	PitchY = 0.3
)

// Positioner reports the physical centre of a cell in units of the
// horizontal LED pitch.
type Positioner interface {
	Position(x, y int) (px, py float64)
}

// Physical is the Grid with real LED centres: odd rows sit half a pitch to
// the left and rows are much closer together than columns.
type Physical struct{ Grid }

func (Physical) Position(x, y int) (float64, float64) {
	px := float64(x) + 0.5 - 0.5*float64(y%2)
	py := (float64(y) + 0.5) * PitchY / PitchX
	return px, py
}

// Extent is the physical size of the panel in pitch units.
func (p Physical) Extent() (w, h float64) {
	return float64(GridWidth), float64(GridHeight) * PitchY / PitchX
}
