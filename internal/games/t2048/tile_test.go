package t2048

import "testing"

func TestSpawnTileCoinFlip(t *testing.T) {
	tests := []struct {
		draw int
		want int
	}{
		{draw: 0, want: 2},
		{draw: 1, want: 4},
	}

	for _, tt := range tests {
		tile := SpawnTile(1, 2, &scriptedRand{vals: []int{tt.draw}})
		if tile.Value() != tt.want {
			t.Errorf("draw %d: value = %d, want %d", tt.draw, tile.Value(), tt.want)
		}
		if tile.Pos() != (Pos{Row: 1, Col: 2}) {
			t.Errorf("draw %d: position = %+v, want (1,2)", tt.draw, tile.Pos())
		}
	}
}

func TestTileMoveTo(t *testing.T) {
	tile := NewTile(0, 0, 8)
	tile.MoveTo(3, 1)

	if tile.Row() != 3 || tile.Col() != 1 {
		t.Errorf("position = (%d,%d), want (3,1)", tile.Row(), tile.Col())
	}
	if tile.Value() != 8 {
		t.Errorf("MoveTo changed value to %d", tile.Value())
	}
}

func TestMergeTiles(t *testing.T) {
	moving := NewTile(0, 3, 16)
	target := NewTile(0, 1, 16)

	merged := MergeTiles(moving, target)

	if merged.Value() != 32 {
		t.Errorf("merged value = %d, want 32", merged.Value())
	}
	if merged.Pos() != target.Pos() {
		t.Errorf("merged position = %+v, want target position %+v", merged.Pos(), target.Pos())
	}
	if moving.Value() != 16 || moving.Pos() != (Pos{Row: 0, Col: 3}) {
		t.Error("MergeTiles must not modify the moving tile")
	}
	if target.Value() != 16 {
		t.Error("MergeTiles must not modify the target tile")
	}
}
