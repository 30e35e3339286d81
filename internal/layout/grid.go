package layout

const (
	GridWidth  = 34
	GridHeight = 56
)

// gridTable holds the buffer index of every grid cell, -1 for placeholders.
var gridTable = buildGrid()

// Grid is the full 34x56 dot matrix in device row order. The top six rows
// are nearly full width; from row 6 down each pair of rows loses LEDs on the
// left edge.
type Grid struct{}

func (Grid) Width() int  { return GridWidth }
func (Grid) Height() int { return GridHeight }

func (Grid) Address(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= GridWidth || y >= GridHeight {
		return 0, false
	}
	idx := gridTable[y][x]
	if idx < 0 {
		return 0, false
	}
	return idx, true
}

// RowStart returns the first addressable column of row y.
func (Grid) RowStart(y int) int {
	for x, idx := range gridTable[y] {
		if idx >= 0 {
			return x
		}
	}
	return GridWidth
}

func buildGrid() (t [GridHeight][GridWidth]int) {
	for y := range t {
		for x := range t[y] {
			t[y][x] = -1
		}
	}

	// Rows 0, 1, 3 and 5 are offset by one and have no LED in column 0, so
	// buffer bytes 33, 67, 135 and 203 belong to no cell.
	for y := 0; y < 6; y++ {
		start := y * GridWidth
		for x := 0; x < GridWidth; x++ {
			switch y {
			case 0, 1, 3, 5:
				if x > 0 {
					t[y][x] = start + x - 1
				}
			default:
				t[y][x] = start + x
			}
		}
	}

	next := 6 * GridWidth
	rowLen := GridWidth - 2
	for y := 6; y < GridHeight; y++ {
		if y%2 != 0 {
			if y == 7 {
				rowLen--
			} else {
				rowLen -= 2
			}
		} else {
			rowLen++
		}
		first := GridWidth - rowLen
		for x := first; x < GridWidth; x++ {
			t[y][x] = next
			next++
		}
	}
	return t
}
