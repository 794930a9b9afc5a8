package verify

import (
	"errors"
	"strings"
	"testing"

	"reversi-local/board"
	"reversi-local/engine"
	"reversi-local/types"
)

func mv(player types.CellState, row, col int) types.Move {
	return types.Move{Player: player, Pos: types.Position{Row: row, Col: col}}
}

// playOut plays the first legal move each turn until the game ends.
func playOut(t *testing.T, size int) []types.Move {
	t.Helper()
	b, err := board.New(size)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	var moves []types.Move
	player := types.Black
	for player != types.Empty {
		m, ok := b.FirstMove(player)
		if !ok {
			t.Fatalf("%v has no move but was chosen to play", player)
		}
		if err := b.Play(m); err != nil {
			t.Fatalf("Play(%v): %v", m, err)
		}
		moves = append(moves, m)
		player = engine.NextPlayer(b, player)
	}
	return moves
}

func TestReplayCompleteGame(t *testing.T) {
	for _, size := range []int{4, 6, 8} {
		moves := playOut(t, size)
		report, err := Replay(size, moves)
		if err != nil {
			t.Fatalf("size %d: Replay: %v", size, err)
		}
		if report.Moves != len(moves) {
			t.Errorf("size %d: Moves = %d, want %d", size, report.Moves, len(moves))
		}
		if report.Black+report.White != report.Board.Size()*report.Board.Size()-report.Board.Count(types.Empty) {
			t.Errorf("size %d: piece counts do not add up", size)
		}
		if report.Board.HasMove(types.Black) || report.Board.HasMove(types.White) {
			t.Errorf("size %d: verified game left legal moves", size)
		}
	}
}

func TestReplayOccupiedCell(t *testing.T) {
	moves := []types.Move{
		mv(types.Black, 2, 3),
		mv(types.White, 2, 2),
		mv(types.Black, 3, 3), // occupied
	}
	_, err := Replay(8, moves)
	var moveErr *MoveError
	if !errors.As(err, &moveErr) {
		t.Fatalf("error = %v, want *MoveError", err)
	}
	if moveErr.Index != 2 {
		t.Errorf("Index = %d, want 2", moveErr.Index)
	}
	if moveErr.Move != moves[2] {
		t.Errorf("Move = %v, want %v", moveErr.Move, moves[2])
	}
	var invalid *board.InvalidMoveError
	if !errors.As(err, &invalid) {
		t.Errorf("error should wrap *board.InvalidMoveError, got %v", moveErr.Err)
	}
	msg := err.Error()
	for _, want := range []string{
		"You tried an invalid move.",
		"Regarding move number 2 (from zero) of player black at position (3, 3)",
		"  3|",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestReplayOutOfRange(t *testing.T) {
	_, err := Replay(8, []types.Move{mv(types.Black, 8, 0)})
	var rangeErr *board.OutOfRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("error = %v, want wrapped *board.OutOfRangeError", err)
	}
	if !strings.HasPrefix(err.Error(), "Illegal cell.") {
		t.Errorf("message = %q, want Illegal cell. prefix", err.Error())
	}
}

func TestReplaySkippedTurn(t *testing.T) {
	tests := []struct {
		name       string
		moves      []types.Move
		wantIndex  int
		wantPlayer types.CellState
	}{
		{"white opens", []types.Move{mv(types.White, 2, 4)}, 0, types.Black},
		{"black twice", []types.Move{mv(types.Black, 2, 3), mv(types.Black, 3, 2)}, 1, types.White},
	}
	for _, tt := range tests {
		_, err := Replay(8, tt.moves)
		var skipped *SkippedTurnError
		if !errors.As(err, &skipped) {
			t.Errorf("%s: error = %v, want *SkippedTurnError", tt.name, err)
			continue
		}
		if skipped.Index != tt.wantIndex {
			t.Errorf("%s: Index = %d, want %d", tt.name, skipped.Index, tt.wantIndex)
		}
		if skipped.Player != tt.wantPlayer || skipped.Move.Player != tt.wantPlayer {
			t.Errorf("%s: Player = %v, want %v", tt.name, skipped.Player, tt.wantPlayer)
		}
		if !skipped.Board.IsValid(skipped.Move) {
			t.Errorf("%s: reported move %v is not legal on the reported board", tt.name, skipped.Move)
		}
	}
}

func TestReplayPrematureEnd(t *testing.T) {
	moves := playOut(t, 6)
	_, err := Replay(6, moves[:len(moves)-1])
	var premature *PrematureEndError
	if !errors.As(err, &premature) {
		t.Fatalf("error = %v, want *PrematureEndError", err)
	}
	if premature.Index != len(moves)-1 {
		t.Errorf("Index = %d, want %d", premature.Index, len(moves)-1)
	}
	if !premature.Board.IsValid(premature.Move) {
		t.Errorf("reported move %v is not legal", premature.Move)
	}

	if _, err := Replay(8, nil); !errors.As(err, &premature) {
		t.Errorf("empty log error = %v, want *PrematureEndError", err)
	}
}

func TestReplayBadSize(t *testing.T) {
	_, err := Replay(5, nil)
	var sizeErr *board.SizeError
	if !errors.As(err, &sizeErr) {
		t.Fatalf("error = %v, want *board.SizeError", err)
	}
}
