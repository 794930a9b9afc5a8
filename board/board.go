// Package board implements the Reversi board: cell storage, the directional
// flip engine shared by legality testing and move application, move
// enumeration and piece-count scoring.
package board

import "reversi-local/types"

// MinSize is the smallest playable board.
const MinSize = 4

// direction holds the 8 unit steps scanned for bracketing runs.
var direction = [8][2]int{
	{0, 1}, {0, -1}, {1, 0}, {-1, 0},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// Board is a square Reversi board stored row-major in one slice.
type Board struct {
	size  int
	cells []types.CellState
}

// CheckSize returns a *SizeError unless size is even and at least MinSize.
func CheckSize(size int) error {
	if size < MinSize || size%2 != 0 {
		return &SizeError{Size: size}
	}
	return nil
}

// New creates a board with the standard opening: White on the main diagonal
// of the centre block, Black on the other diagonal.
func New(size int) (*Board, error) {
	if err := CheckSize(size); err != nil {
		return nil, err
	}
	b := &Board{
		size:  size,
		cells: make([]types.CellState, size*size),
	}
	m := size/2 - 1
	b.cells[b.index(m, m)] = types.White
	b.cells[b.index(m+1, m+1)] = types.White
	b.cells[b.index(m, m+1)] = types.Black
	b.cells[b.index(m+1, m)] = types.Black
	return b, nil
}

// Size returns the side length of the board.
func (b *Board) Size() int {
	return b.size
}

func (b *Board) index(row, col int) int {
	return row*b.size + col
}

func (b *Board) inBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// Contains reports whether p addresses a cell of this board.
func (b *Board) Contains(p types.Position) bool {
	return b.inBounds(p.Row, p.Col)
}

// Get returns the state of the cell at p.
func (b *Board) Get(p types.Position) (types.CellState, error) {
	if !b.Contains(p) {
		return types.Empty, &OutOfRangeError{Pos: p, Size: b.size}
	}
	return b.cells[b.index(p.Row, p.Col)], nil
}

// Set overwrites the cell at p. Outside of setup and tests, cells change only
// through Play.
func (b *Board) Set(p types.Position, s types.CellState) error {
	if !b.Contains(p) {
		return &OutOfRangeError{Pos: p, Size: b.size}
	}
	b.cells[b.index(p.Row, p.Col)] = s
	return nil
}

// Copy returns an independent board with the same contents.
func (b *Board) Copy() *Board {
	cells := make([]types.CellState, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells}
}

// flipsInDirection collects the opposing run starting next to start in
// direction d. The run is discarded unless it is non-empty and ends on a cell
// of player inside the board.
func (b *Board) flipsInDirection(start types.Position, player types.CellState, d [2]int) []types.Position {
	other := player.Opponent()
	var candidates []types.Position

	row, col := start.Row+d[0], start.Col+d[1]
	for b.inBounds(row, col) && b.cells[b.index(row, col)] == other {
		candidates = append(candidates, types.Position{Row: row, Col: col})
		row += d[0]
		col += d[1]
	}
	if !b.inBounds(row, col) || b.cells[b.index(row, col)] != player {
		return nil
	}
	return candidates
}

// Flips returns every cell m would flip, direction by direction. It is empty
// when the target is occupied, out of range, or brackets nothing.
func (b *Board) Flips(m types.Move) []types.Position {
	if !b.Contains(m.Pos) || b.cells[b.index(m.Pos.Row, m.Pos.Col)] != types.Empty {
		return nil
	}
	if m.Player != types.Black && m.Player != types.White {
		return nil
	}
	var flips []types.Position
	for _, d := range direction {
		flips = append(flips, b.flipsInDirection(m.Pos, m.Player, d)...)
	}
	return flips
}

// IsValid reports whether m targets an empty cell and brackets at least one
// opposing piece in some direction.
func (b *Board) IsValid(m types.Move) bool {
	if !b.Contains(m.Pos) || b.cells[b.index(m.Pos.Row, m.Pos.Col)] != types.Empty {
		return false
	}
	if m.Player != types.Black && m.Player != types.White {
		return false
	}
	for _, d := range direction {
		if len(b.flipsInDirection(m.Pos, m.Player, d)) > 0 {
			return true
		}
	}
	return false
}

// Play places the mover's piece and flips every bracketed run. The board is
// left untouched when an error is returned.
func (b *Board) Play(m types.Move) error {
	if !b.Contains(m.Pos) {
		return &OutOfRangeError{Pos: m.Pos, Size: b.size}
	}
	flips := b.Flips(m)
	if len(flips) == 0 {
		return &InvalidMoveError{Move: m, Board: b.Copy()}
	}
	b.cells[b.index(m.Pos.Row, m.Pos.Col)] = m.Player
	for _, p := range flips {
		b.cells[b.index(p.Row, p.Col)] = m.Player
	}
	return nil
}

// Positions returns every addressable cell in row-major order.
func (b *Board) Positions() []types.Position {
	out := make([]types.Position, 0, len(b.cells))
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			out = append(out, types.Position{Row: row, Col: col})
		}
	}
	return out
}

// PlayableMoves returns the legal moves for player in row-major order.
func (b *Board) PlayableMoves(player types.CellState) []types.Move {
	var moves []types.Move
	for _, p := range b.Positions() {
		m := types.Move{Player: player, Pos: p}
		if b.IsValid(m) {
			moves = append(moves, m)
		}
	}
	return moves
}

// FirstMove returns the first legal move for player in row-major order.
func (b *Board) FirstMove(player types.CellState) (types.Move, bool) {
	for _, p := range b.Positions() {
		m := types.Move{Player: player, Pos: p}
		if b.IsValid(m) {
			return m, true
		}
	}
	return types.Move{}, false
}

// HasMove reports whether player has any legal move.
func (b *Board) HasMove(player types.CellState) bool {
	_, ok := b.FirstMove(player)
	return ok
}

// Count returns the number of cells in state s.
func (b *Board) Count(s types.CellState) int {
	n := 0
	for _, c := range b.cells {
		if c == s {
			n++
		}
	}
	return n
}

// Score is player's piece count minus the opponent's.
func (b *Board) Score(player types.CellState) int {
	return b.Count(player) - b.Count(player.Opponent())
}

// Snapshot returns the cells as an independent [row][col] grid.
func (b *Board) Snapshot() [][]types.CellState {
	grid := make([][]types.CellState, b.size)
	for row := range grid {
		grid[row] = make([]types.CellState, b.size)
		copy(grid[row], b.cells[b.index(row, 0):b.index(row, 0)+b.size])
	}
	return grid
}

// Equal reports whether both boards have the same size and contents.
func (b *Board) Equal(o *Board) bool {
	if b.size != o.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}
