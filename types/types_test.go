package types

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    CellState
		wantErr bool
	}{
		{"black", Black, false},
		{"BLACK", Black, false},
		{"White", White, false},
		{" w ", White, false},
		{"b", Black, false},
		{"red", Empty, true},
		{"", Empty, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestOpponent(t *testing.T) {
	if Black.Opponent() != White || White.Opponent() != Black {
		t.Fatal("black and white should be opponents")
	}
	if Empty.Opponent() != Empty {
		t.Fatal("empty has no opponent")
	}
}

func TestMoveString(t *testing.T) {
	m := Move{Player: White, Pos: Position{Row: 2, Col: 5}}
	if got := m.String(); got != "white 2 5" {
		t.Errorf("Move.String() = %q, want %q", got, "white 2 5")
	}
}

func TestNewBoardState(t *testing.T) {
	s := NewBoardState(6)
	if s.Size() != 6 {
		t.Fatalf("Size() = %d, want 6", s.Size())
	}
	if s.PlayerToMove != Black {
		t.Errorf("PlayerToMove = %v, want black", s.PlayerToMove)
	}
	if s.Finished() {
		t.Error("new state should not be finished")
	}
	if s.LastMove != NoPosition {
		t.Errorf("LastMove = %v, want %v", s.LastMove, NoPosition)
	}
	if s.Count(Empty) != 36 {
		t.Errorf("Count(Empty) = %d, want 36", s.Count(Empty))
	}
}
