package layout

const (
	DiagonalWidth  = 74
	DiagonalHeight = 36
)

// diagRun is one diagonal strip of the GA401 panel: buffer indexes
// start..start+n-1 light pixels (x0+i, DiagonalHeight-1-y0-i).
type diagRun struct {
	start, x0, y0, n int
}

var ga401Runs = []diagRun{
	{1, 0, 3, 32}, {34, 0, 2, 33}, {69, 1, 2, 33}, {102, 1, 1, 33},
	{137, 2, 1, 33}, {170, 2, 0, 33}, {204, 3, 0, 33}, {237, 4, 0, 32},
	{270, 5, 0, 32}, {302, 6, 0, 31}, {334, 7, 0, 31}, {365, 8, 0, 30},
	{396, 9, 0, 30}, {426, 10, 0, 29}, {456, 11, 0, 29}, {485, 12, 0, 28},
	{514, 13, 0, 28}, {542, 14, 0, 27}, {570, 15, 0, 27}, {597, 16, 0, 26},
	{624, 17, 0, 26}, {650, 18, 0, 25}, {676, 19, 0, 25}, {701, 20, 0, 24},
	{726, 21, 0, 24}, {750, 22, 0, 23}, {774, 23, 0, 23}, {797, 24, 0, 22},
	{820, 25, 0, 22}, {842, 26, 0, 21}, {864, 27, 0, 21}, {885, 28, 0, 20},
	{906, 29, 0, 20}, {926, 30, 0, 19}, {946, 31, 0, 19}, {965, 32, 0, 18},
	{984, 33, 0, 18}, {1002, 34, 0, 17}, {1020, 35, 0, 17}, {1037, 36, 0, 16},
	{1054, 37, 0, 16}, {1070, 38, 0, 15}, {1086, 39, 0, 15}, {1101, 40, 0, 14},
	{1116, 41, 0, 14}, {1130, 42, 0, 13}, {1144, 43, 0, 13}, {1157, 44, 0, 12},
	{1170, 45, 0, 12}, {1182, 46, 0, 11}, {1194, 47, 0, 11}, {1205, 48, 0, 10},
	{1216, 49, 0, 10}, {1226, 50, 0, 9}, {1236, 51, 0, 9},
}

var diagTable = buildDiagonal()

// Diagonal is the skewed 74x36 image layout used by the vendor tool for the
// GA401 panel. Images drawn for it appear upright on the lid.
type Diagonal struct{}

func (Diagonal) Width() int  { return DiagonalWidth }
func (Diagonal) Height() int { return DiagonalHeight }

func (Diagonal) Address(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= DiagonalWidth || y >= DiagonalHeight {
		return 0, false
	}
	idx := diagTable[y][x]
	if idx < 0 {
		return 0, false
	}
	return idx, true
}

func buildDiagonal() (t [DiagonalHeight][DiagonalWidth]int) {
	for y := range t {
		for x := range t[y] {
			t[y][x] = -1
		}
	}
	for _, r := range ga401Runs {
		for i := 0; i < r.n; i++ {
			t[DiagonalHeight-1-r.y0-i][r.x0+i] = r.start + i
		}
	}
	return t
}
