package game

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// GridSize is the card dimension (5x5).
const GridSize = 5

// FreeCell is the sentinel value of the free center cell.
const FreeCell = 0

// maxDedupAttempts caps the regeneration loop when a freshly generated
// card collides with one already handed out in the same room. Past the
// cap a duplicate is accepted; callers must tolerate that.
const maxDedupAttempts = 100

var columnNames = [GridSize]string{"B", "I", "N", "G", "O"}

// ColumnRange is the inclusive number range a single column draws from.
type ColumnRange struct {
	Min int
	Max int
}

// DefaultColumnRanges returns the classic 75-ball ranges:
// B 1-15, I 16-30, N 31-45, G 46-60, O 61-75.
func DefaultColumnRanges() [GridSize]ColumnRange {
	var ranges [GridSize]ColumnRange
	for col := 0; col < GridSize; col++ {
		ranges[col] = ColumnRange{Min: col*15 + 1, Max: (col + 1) * 15}
	}
	return ranges
}

// RangesForSpan divides 1..max into five equal columns. Used for
// movie-only lists played over 1..50 instead of 1..75.
func RangesForSpan(max int) [GridSize]ColumnRange {
	width := max / GridSize
	var ranges [GridSize]ColumnRange
	for col := 0; col < GridSize; col++ {
		ranges[col] = ColumnRange{Min: col*width + 1, Max: (col + 1) * width}
	}
	return ranges
}

// BingoCard is a single player's card. Grid is column-major
// (Grid[col][row]) and Marks is row-major (Marks[row][col]); the center
// cell is FreeCell and pre-marked at creation.
type BingoCard struct {
	OwnerID string                   `json:"id"`
	Grid    [GridSize][GridSize]int  `json:"grid"`
	Marks   [GridSize][GridSize]bool `json:"markedCells"`
}

// CardGenerator produces cards with uniform win probability by
// construction. The random source is injectable so tests can fix the
// seed; access to it is serialized because rooms generate concurrently.
type CardGenerator struct {
	ranges [GridSize]ColumnRange

	mu  sync.Mutex
	rng *rand.Rand
}

// NewCardGenerator returns a generator over the given column ranges.
func NewCardGenerator(seed int64, ranges [GridSize]ColumnRange) *CardGenerator {
	return &CardGenerator{
		ranges: ranges,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// GenerateCard builds one card: each column is an unbiased Fisher-Yates
// permutation of its range, truncated to five values, with the center
// forced to the free cell.
func (g *CardGenerator) GenerateCard(ownerID string) *BingoCard {
	g.mu.Lock()
	defer g.mu.Unlock()

	card := &BingoCard{OwnerID: ownerID}
	card.Marks[2][2] = true

	for col := 0; col < GridSize; col++ {
		r := g.ranges[col]
		numbers := make([]int, 0, r.Max-r.Min+1)
		for n := r.Min; n <= r.Max; n++ {
			numbers = append(numbers, n)
		}
		for i := len(numbers) - 1; i > 0; i-- {
			j := g.rng.Intn(i + 1)
			numbers[i], numbers[j] = numbers[j], numbers[i]
		}
		for row := 0; row < GridSize; row++ {
			if col == 2 && row == 2 {
				card.Grid[col][row] = FreeCell
			} else {
				card.Grid[col][row] = numbers[row]
			}
		}
	}

	return card
}

// GenerateUniqueCard generates a card whose grid signature is absent
// from seen, retrying up to maxDedupAttempts before accepting a
// possible duplicate. The returned card's signature is added to seen.
func (g *CardGenerator) GenerateUniqueCard(ownerID string, seen map[string]bool) *BingoCard {
	var card *BingoCard
	for attempt := 0; attempt < maxDedupAttempts; attempt++ {
		card = g.GenerateCard(ownerID)
		if !seen[card.Signature()] {
			break
		}
	}
	seen[card.Signature()] = true
	return card
}

// Signature returns a stable string identity for the card's grid.
func (c *BingoCard) Signature() string {
	var b strings.Builder
	for col := 0; col < GridSize; col++ {
		for row := 0; row < GridSize; row++ {
			fmt.Fprintf(&b, "%d,", c.Grid[col][row])
		}
	}
	return b.String()
}

// MarkNumber marks the cell holding number and reports whether the
// number is on the card. The free cell is not number-markable. Whether
// the number was actually called is the room's concern, not the card's.
func (c *BingoCard) MarkNumber(number int) bool {
	if number == FreeCell {
		return false
	}
	for col := 0; col < GridSize; col++ {
		for row := 0; row < GridSize; row++ {
			if c.Grid[col][row] == number {
				c.Marks[row][col] = true
				return true
			}
		}
	}
	return false
}

// WinPatterns returns the names of every fully marked pattern, in
// order: rows, columns, diagonals, full house.
func (c *BingoCard) WinPatterns() []string {
	var wins []string

	for row := 0; row < GridSize; row++ {
		if c.rowMarked(row) {
			wins = append(wins, fmt.Sprintf("Row %d", row+1))
		}
	}
	for col := 0; col < GridSize; col++ {
		if c.columnMarked(col) {
			wins = append(wins, columnNames[col]+" Column")
		}
	}
	if c.Marks[0][0] && c.Marks[1][1] && c.Marks[2][2] && c.Marks[3][3] && c.Marks[4][4] {
		wins = append(wins, "Diagonal (Top-Left to Bottom-Right)")
	}
	if c.Marks[0][4] && c.Marks[1][3] && c.Marks[2][2] && c.Marks[3][1] && c.Marks[4][0] {
		wins = append(wins, "Diagonal (Top-Right to Bottom-Left)")
	}
	if c.MarkedCount() == GridSize*GridSize {
		wins = append(wins, "Full House")
	}

	return wins
}

// MarkedCount returns the number of marked cells, free space included.
func (c *BingoCard) MarkedCount() int {
	count := 0
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if c.Marks[row][col] {
				count++
			}
		}
	}
	return count
}

// Clone returns an independent copy of the card.
func (c *BingoCard) Clone() *BingoCard {
	out := *c
	return &out
}

func (c *BingoCard) rowMarked(row int) bool {
	for col := 0; col < GridSize; col++ {
		if !c.Marks[row][col] {
			return false
		}
	}
	return true
}

func (c *BingoCard) columnMarked(col int) bool {
	for row := 0; row < GridSize; row++ {
		if !c.Marks[row][col] {
			return false
		}
	}
	return true
}
