package replay

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reversi-local/board"
	"reversi-local/engine"
	"reversi-local/engine/selfplay"
	"reversi-local/types"
)

func playedGame(t *testing.T, size int) (*selfplay.Engine, []types.Move) {
	t.Helper()
	e := selfplay.NewEngine(engine.GameConfig{BoardSize: size, BlackDepth: 1, WhiteDepth: 2})
	if err := e.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := e.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return e, e.Moves()
}

func TestReplayMatchesSelfPlay(t *testing.T) {
	played, moves := playedGame(t, 6)

	r := NewEngine(6, moves)
	if err := r.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if r.GetBoardState().PlayerToMove != types.Black {
		t.Errorf("opening player = %v", r.GetBoardState().PlayerToMove)
	}

	var ended string
	steps := 0
	r.OnMove(func(m types.Move, moveNumber int, state *types.BoardState) {
		steps++
		if m != moves[moveNumber-1] {
			t.Errorf("move %d = %v, want %v", moveNumber, m, moves[moveNumber-1])
		}
	})
	r.OnGameEnd(func(outcome string) { ended = outcome })

	for !r.Finished() {
		if err := r.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if steps != len(moves) {
		t.Errorf("%d steps for %d moves", steps, len(moves))
	}
	want := played.GetBoardState()
	got := r.GetBoardState()
	if got.Outcome != want.Outcome || ended != want.Outcome {
		t.Errorf("outcome = %q (callback %q), want %q", got.Outcome, ended, want.Outcome)
	}
	for row := range want.Board {
		for col := range want.Board[row] {
			if got.Board[row][col] != want.Board[row][col] {
				t.Fatalf("boards differ at (%d, %d)", row, col)
			}
		}
	}
	if err := r.Step(); !errors.Is(err, engine.ErrGameOver) {
		t.Errorf("Step after end = %v, want ErrGameOver", err)
	}
}

func TestReplayIncompleteLog(t *testing.T) {
	_, moves := playedGame(t, 4)
	r := NewEngine(4, moves[:2])
	if err := r.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	for !r.Finished() {
		if err := r.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	state := r.GetBoardState()
	if !state.Finished() || !strings.HasSuffix(state.Outcome, "(incomplete)") {
		t.Errorf("state = %+v, want finished and incomplete", state)
	}
}

func TestReplayIllegalMove(t *testing.T) {
	r := NewEngine(8, []types.Move{{Player: types.Black, Pos: types.Position{Row: 0, Col: 0}}})
	if err := r.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	err := r.Step()
	var invalid *board.InvalidMoveError
	if !errors.As(err, &invalid) {
		t.Fatalf("Step = %v, want *board.InvalidMoveError", err)
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.txt")
	content := "# size: 4\nblack 0 1\nwhite 0 0\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
	if err := r.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if r.GetBoardState().Size() != 4 {
		t.Errorf("board size = %d, want 4", r.GetBoardState().Size())
	}
}
