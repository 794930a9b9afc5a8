package selfplay

import (
	"errors"
	"testing"

	"reversi-local/engine"
	"reversi-local/gamelog"
	"reversi-local/types"
	"reversi-local/verify"
)

func TestSelfPlayProducesVerifiableGame(t *testing.T) {
	tests := []struct {
		size         int
		black, white int
	}{
		{4, 1, 1},
		{4, 2, 3},
		{6, 1, 2},
	}
	for _, tt := range tests {
		e := NewEngine(engine.GameConfig{BoardSize: tt.size, BlackDepth: tt.black, WhiteDepth: tt.white})
		if err := e.Connect(); err != nil {
			t.Fatalf("Connect: %v", err)
		}
		if err := e.Run(); err != nil {
			t.Fatalf("size %d: Run: %v", tt.size, err)
		}
		e.Close()

		moves := e.Moves()
		report, err := verify.Replay(tt.size, moves)
		if err != nil {
			t.Fatalf("size %d depths %d/%d: verify: %v", tt.size, tt.black, tt.white, err)
		}
		res := e.Result()
		if res.Black != report.Black || res.White != report.White {
			t.Errorf("Result() = %+v, verifier counted %d/%d", res, report.Black, report.White)
		}
		state := e.GetBoardState()
		if !state.Finished() || state.PlayerToMove != types.Empty {
			t.Errorf("final state = %+v, want finished", state)
		}
		if state.Outcome != res.Outcome {
			t.Errorf("state outcome %q != result outcome %q", state.Outcome, res.Outcome)
		}
	}
}

func TestCallbacks(t *testing.T) {
	e := NewEngine(engine.GameConfig{BoardSize: 4, BlackDepth: 2, WhiteDepth: 2})
	var numbers []int
	var ends []string
	e.OnMove(func(m types.Move, moveNumber int, state *types.BoardState) {
		numbers = append(numbers, moveNumber)
		if state.LastMove != m.Pos {
			t.Errorf("state.LastMove = %v, want %v", state.LastMove, m.Pos)
		}
		if state.Board[m.Pos.Row][m.Pos.Col] != m.Player {
			t.Errorf("move %v not reflected in snapshot", m)
		}
	})
	e.OnGameEnd(func(outcome string) { ends = append(ends, outcome) })

	if err := e.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := e.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, n := range numbers {
		if n != i+1 {
			t.Fatalf("move numbers = %v, want 1..n", numbers)
		}
	}
	if len(numbers) != len(e.Moves()) {
		t.Errorf("%d move callbacks for %d moves", len(numbers), len(e.Moves()))
	}
	if len(ends) != 1 || ends[0] != e.Result().Outcome {
		t.Errorf("end callbacks = %v, want [%q]", ends, e.Result().Outcome)
	}

	if err := e.Step(); !errors.Is(err, engine.ErrGameOver) {
		t.Errorf("Step after end = %v, want ErrGameOver", err)
	}
}

func TestFirstStep(t *testing.T) {
	e := NewEngine(engine.GameConfig{BoardSize: 8, BlackDepth: 1, WhiteDepth: 1})
	if err := e.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if got := e.GetBoardState().PlayerToMove; got != types.Black {
		t.Fatalf("first player = %v, want black", got)
	}
	if err := e.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	want := types.Move{Player: types.Black, Pos: types.Position{Row: 2, Col: 3}}
	if moves := e.Moves(); len(moves) != 1 || moves[0] != want {
		t.Errorf("moves = %v, want [%v]", moves, want)
	}
	state := e.GetBoardState()
	if state.PlayerToMove != types.White || state.MoveNumber != 1 {
		t.Errorf("state after one move = %+v", state)
	}
	if state.Count(types.Black) != 4 || state.Count(types.White) != 1 {
		t.Errorf("counts = %d/%d, want 4/1", state.Count(types.Black), state.Count(types.White))
	}
}

func TestRecording(t *testing.T) {
	dir := t.TempDir()
	e := NewEngine(engine.GameConfig{BoardSize: 4, BlackDepth: 1, WhiteDepth: 2, RecordDir: dir})
	if err := e.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := e.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	path := e.RecordPath()
	e.Close()

	moves, err := gamelog.ReadMoves(path)
	if err != nil {
		t.Fatalf("ReadMoves: %v", err)
	}
	played := e.Moves()
	if len(moves) != len(played) {
		t.Fatalf("recorded %d moves, played %d", len(moves), len(played))
	}
	for i := range moves {
		if moves[i] != played[i] {
			t.Errorf("move %d: recorded %v, played %v", i, moves[i], played[i])
		}
	}

	info, err := gamelog.ParseHeader(path)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if info.Result != e.Result().Outcome || info.BoardSize != 4 {
		t.Errorf("header = %+v", info)
	}
	if info.Black != PlayerName(1) || info.White != PlayerName(2) {
		t.Errorf("players = %q/%q", info.Black, info.White)
	}
}

func TestConnectRejectsBadConfig(t *testing.T) {
	for _, cfg := range []engine.GameConfig{
		{BoardSize: 5, BlackDepth: 1, WhiteDepth: 1},
		{BoardSize: 8, BlackDepth: 0, WhiteDepth: 1},
	} {
		if err := NewEngine(cfg).Connect(); err == nil {
			t.Errorf("Connect(%+v) succeeded", cfg)
		}
	}
}

func TestStepBeforeConnect(t *testing.T) {
	if err := NewEngine(engine.DefaultConfig()).Step(); err == nil {
		t.Error("Step before Connect should fail")
	}
}

func TestRandomOpeningStaysLegal(t *testing.T) {
	for i := 0; i < 10; i++ {
		e := NewEngine(engine.GameConfig{BoardSize: 6, BlackDepth: 1, WhiteDepth: 1, RandomOpening: 6})
		if err := e.Connect(); err != nil {
			t.Fatalf("Connect: %v", err)
		}
		if err := e.Run(); err != nil {
			t.Fatalf("Run: %v", err)
		}
		if _, err := verify.Replay(6, e.Moves()); err != nil {
			t.Fatalf("game with random opening failed verification: %v", err)
		}
	}
}
