package game

import (
	"fmt"
	"testing"
)

func newTestCardGenerator(seed int64) *CardGenerator {
	return NewCardGenerator(seed, DefaultColumnRanges())
}

func TestGenerateCardValidity(t *testing.T) {
	gen := newTestCardGenerator(1)
	ranges := DefaultColumnRanges()

	for i := 0; i < 20; i++ {
		card := gen.GenerateCard(fmt.Sprintf("player-%d", i))

		if card.Grid[2][2] != FreeCell {
			t.Fatalf("card %d: center cell = %d, want free", i, card.Grid[2][2])
		}

		seen := make(map[int]bool)
		for col := 0; col < GridSize; col++ {
			for row := 0; row < GridSize; row++ {
				v := card.Grid[col][row]
				if col == 2 && row == 2 {
					continue
				}
				if v < ranges[col].Min || v > ranges[col].Max {
					t.Errorf("card %d: column %d value %d outside [%d,%d]",
						i, col, v, ranges[col].Min, ranges[col].Max)
				}
				if seen[v] {
					t.Errorf("card %d: duplicate value %d", i, v)
				}
				seen[v] = true
			}
		}

		for row := 0; row < GridSize; row++ {
			for col := 0; col < GridSize; col++ {
				marked := card.Marks[row][col]
				if row == 2 && col == 2 {
					if !marked {
						t.Errorf("card %d: free space not pre-marked", i)
					}
				} else if marked {
					t.Errorf("card %d: cell (%d,%d) marked at creation", i, row, col)
				}
			}
		}
		if got := card.MarkedCount(); got != 1 {
			t.Errorf("card %d: MarkedCount = %d at creation, want 1", i, got)
		}
	}
}

func TestBatchUniquenessWithCap(t *testing.T) {
	gen := newTestCardGenerator(42)
	seen := make(map[string]bool)
	sigs := make(map[string]int)

	const n = 50
	for i := 0; i < n; i++ {
		card := gen.GenerateUniqueCard(fmt.Sprintf("player-%d", i), seen)
		if card == nil {
			t.Fatalf("card %d: generator returned nil", i)
		}
		sigs[card.Signature()]++
	}

	if len(sigs) != n {
		t.Errorf("generated %d distinct cards out of %d", len(sigs), n)
	}
}

func TestMarkNumber(t *testing.T) {
	gen := newTestCardGenerator(7)
	card := gen.GenerateCard("p1")
	target := card.Grid[0][0] // column 0, row 0

	if !card.MarkNumber(target) {
		t.Fatalf("MarkNumber(%d) = false, number is on the card", target)
	}
	if !card.Marks[0][0] {
		t.Errorf("mark for grid cell (col 0, row 0) not set")
	}
	if got := card.MarkedCount(); got != 2 {
		t.Errorf("MarkedCount = %d after one mark, want 2 (free space + 1)", got)
	}

	// Absent number mutates nothing.
	if card.MarkNumber(999) {
		t.Errorf("MarkNumber(999) = true, number is not on the card")
	}
	if got := card.MarkedCount(); got != 2 {
		t.Errorf("MarkedCount = %d after absent mark, want 2", got)
	}

	// Re-marking is idempotent and still reports presence.
	if !card.MarkNumber(target) {
		t.Errorf("second MarkNumber(%d) = false, want true", target)
	}
	if got := card.MarkedCount(); got != 2 {
		t.Errorf("MarkedCount = %d after re-mark, want 2", got)
	}

	// The free cell is not number-markable.
	if card.MarkNumber(FreeCell) {
		t.Errorf("MarkNumber(FreeCell) = true, want false")
	}
}

func TestWinPatternsSingleRow(t *testing.T) {
	gen := newTestCardGenerator(3)
	card := gen.GenerateCard("p1")

	for col := 0; col < GridSize; col++ {
		card.Marks[0][col] = true
	}
	// Undo the free space so only row 0 is satisfied.
	card.Marks[2][2] = false

	wins := card.WinPatterns()
	if len(wins) != 1 || wins[0] != "Row 1" {
		t.Errorf("WinPatterns = %v, want [Row 1]", wins)
	}
}

func TestWinPatternsFullGrid(t *testing.T) {
	gen := newTestCardGenerator(3)
	card := gen.GenerateCard("p1")

	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			card.Marks[row][col] = true
		}
	}

	want := []string{
		"Row 1", "Row 2", "Row 3", "Row 4", "Row 5",
		"B Column", "I Column", "N Column", "G Column", "O Column",
		"Diagonal (Top-Left to Bottom-Right)",
		"Diagonal (Top-Right to Bottom-Left)",
		"Full House",
	}
	wins := card.WinPatterns()
	if len(wins) != len(want) {
		t.Fatalf("WinPatterns returned %d patterns, want %d: %v", len(wins), len(want), wins)
	}
	for i := range want {
		if wins[i] != want[i] {
			t.Errorf("pattern %d = %q, want %q", i, wins[i], want[i])
		}
	}
}

func TestRangesForSpan(t *testing.T) {
	ranges := RangesForSpan(50)
	if ranges[0].Min != 1 || ranges[0].Max != 10 {
		t.Errorf("column 0 range = [%d,%d], want [1,10]", ranges[0].Min, ranges[0].Max)
	}
	if ranges[4].Min != 41 || ranges[4].Max != 50 {
		t.Errorf("column 4 range = [%d,%d], want [41,50]", ranges[4].Min, ranges[4].Max)
	}
}
