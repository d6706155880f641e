package bingo

// LineKind names the family of a winning line.
type LineKind int

const (
	LineRow LineKind = iota
	LineColumn
	LineDiagonal     // top-left to bottom-right
	LineAntiDiagonal // bottom-left to top-right
)

func (k LineKind) String() string {
	switch k {
	case LineRow:
		return "row"
	case LineColumn:
		return "column"
	case LineDiagonal:
		return "diagonal"
	case LineAntiDiagonal:
		return "anti-diagonal"
	default:
		return "unknown"
	}
}

// Line is a completed row, column or diagonal. Index is the row or column
// number and is zero for diagonals.
type Line struct {
	Kind  LineKind
	Index int
}

// Cells returns the (row, col) pairs covered by the line.
func (l Line) Cells() [Size][2]int {
	var out [Size][2]int
	for i := 0; i < Size; i++ {
		switch l.Kind {
		case LineRow:
			out[i] = [2]int{l.Index, i}
		case LineColumn:
			out[i] = [2]int{i, l.Index}
		case LineDiagonal:
			out[i] = [2]int{i, i}
		case LineAntiDiagonal:
			out[i] = [2]int{Size - 1 - i, i}
		}
	}
	return out
}

// Complete reports whether any row, column or main diagonal is finished.
// It is recomputed on every call.
func (b *Board) Complete() bool {
	_, ok := b.WinningLine()
	return ok
}

// WinningLine returns the first finished line, scanning rows, then columns,
// then the diagonal, then the anti-diagonal.
func (b *Board) WinningLine() (Line, bool) {
	done := func(r, c int) bool { return b.cells[r][c].Complete() }

	for r := 0; r < Size; r++ {
		if lineDone(func(i int) bool { return done(r, i) }) {
			return Line{Kind: LineRow, Index: r}, true
		}
	}
	for c := 0; c < Size; c++ {
		if lineDone(func(i int) bool { return done(i, c) }) {
			return Line{Kind: LineColumn, Index: c}, true
		}
	}
	if lineDone(func(i int) bool { return done(i, i) }) {
		return Line{Kind: LineDiagonal}, true
	}
	if lineDone(func(i int) bool { return done(Size-1-i, i) }) {
		return Line{Kind: LineAntiDiagonal}, true
	}
	return Line{}, false
}

func lineDone(cell func(i int) bool) bool {
	for i := 0; i < Size; i++ {
		if !cell(i) {
			return false
		}
	}
	return true
}
