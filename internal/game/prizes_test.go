package game

import "testing"

func prizeIDs(prizes []*Prize) []string {
	out := make([]string, len(prizes))
	for i, p := range prizes {
		out[i] = p.ID
	}
	return out
}

func TestEarlyFiveCountsFreeSpace(t *testing.T) {
	card := newTestCardGenerator(11).GenerateCard("p1")
	ledger := NewPrizeLedger()

	// Four marks plus the free space is five, without completing a line.
	card.Marks[0][0] = true
	card.Marks[0][1] = true
	card.Marks[1][0] = true
	card.Marks[1][3] = true

	won := ledger.Evaluate(card)
	if len(won) != 1 || won[0].ID != "early-5" {
		t.Errorf("Evaluate = %v, want [early-5]", prizeIDs(won))
	}

	// One mark fewer is only four and wins nothing.
	card.Marks[1][3] = false
	if won := ledger.Evaluate(card); len(won) != 0 {
		t.Errorf("Evaluate with 4 marks = %v, want none", prizeIDs(won))
	}
}

func TestEvaluateIsPure(t *testing.T) {
	card := newTestCardGenerator(11).GenerateCard("p1")
	ledger := NewPrizeLedger()

	for col := 0; col < GridSize; col++ {
		card.Marks[0][col] = true
	}

	first := ledger.Evaluate(card)
	second := ledger.Evaluate(card)
	if len(first) != len(second) {
		t.Fatalf("repeat Evaluate differs: %v then %v", prizeIDs(first), prizeIDs(second))
	}
	for _, p := range first {
		if p.Claimed {
			t.Errorf("Evaluate marked prize %s claimed", p.ID)
		}
	}
}

func TestClaimFirstWinnerTakesPrize(t *testing.T) {
	gen := newTestCardGenerator(13)
	ledger := NewPrizeLedger()

	alice := gen.GenerateCard("alice")
	bob := gen.GenerateCard("bob")

	for col := 0; col < GridSize; col++ {
		alice.Marks[0][col] = true
		bob.Marks[0][col] = true
	}
	// Bob also completes the B column.
	for row := 0; row < GridSize; row++ {
		bob.Marks[row][0] = true
	}

	wonAlice := ledger.Evaluate(alice)
	claimedAlice := ledger.Claim(wonAlice, PrizeWinner{PlayerID: "alice", PlayerName: "Alice"})
	if got := prizeIDs(claimedAlice); len(got) != 2 || got[0] != "early-5" || got[1] != "top-row" {
		t.Fatalf("alice claimed %v, want [early-5 top-row]", got)
	}

	// Bob arrives second: the shared prizes are gone but the column is
	// still open.
	wonBob := ledger.Evaluate(bob)
	claimedBob := ledger.Claim(wonBob, PrizeWinner{PlayerID: "bob", PlayerName: "Bob"})
	if got := prizeIDs(claimedBob); len(got) != 1 || got[0] != "b-column" {
		t.Fatalf("bob claimed %v, want [b-column]", got)
	}

	// Claiming an already-claimed list is a no-op.
	if again := ledger.Claim(wonAlice, PrizeWinner{PlayerID: "bob", PlayerName: "Bob"}); len(again) != 0 {
		t.Errorf("re-claim returned %v, want none", prizeIDs(again))
	}

	for _, p := range ledger.All() {
		switch p.ID {
		case "early-5", "top-row":
			if !p.Claimed || p.Winner == nil || p.Winner.PlayerID != "alice" {
				t.Errorf("prize %s: claimed=%v winner=%+v, want alice", p.ID, p.Claimed, p.Winner)
			}
		case "b-column":
			if !p.Claimed || p.Winner == nil || p.Winner.PlayerID != "bob" {
				t.Errorf("prize %s: claimed=%v winner=%+v, want bob", p.ID, p.Claimed, p.Winner)
			}
		default:
			if p.Claimed {
				t.Errorf("prize %s unexpectedly claimed", p.ID)
			}
		}
	}

	if open := ledger.Unclaimed(); len(open) != 7 {
		t.Errorf("Unclaimed has %d prizes, want 7", len(open))
	}
}

func TestFullHouseSweepsCatalog(t *testing.T) {
	card := newTestCardGenerator(17).GenerateCard("p1")
	ledger := NewPrizeLedger()

	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			card.Marks[row][col] = true
		}
	}

	won := ledger.Evaluate(card)
	if len(won) != 10 {
		t.Errorf("full grid wins %d prizes, want the whole catalog of 10: %v", len(won), prizeIDs(won))
	}
}
