package game

// PrizeWinner identifies the player a prize was awarded to.
type PrizeWinner struct {
	PlayerID   string `json:"id"`
	PlayerName string `json:"name"`
}

// Prize is one catalog entry plus its claim state. Claimed is
// monotonic: once true it never reverts for the lifetime of the room.
type Prize struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Claimed     bool         `json:"claimed"`
	Winner      *PrizeWinner `json:"winner,omitempty"`
}

// PrizeLedger holds the per-room prize catalog and claim state. It is
// not safe for concurrent use on its own; the owning room's lock
// serializes access, which is what makes Claim the single authoritative
// mutation point when two players complete a pattern in the same tick.
type PrizeLedger struct {
	prizes []*Prize
}

// NewPrizeLedger returns a ledger with the fixed ten-prize catalog.
func NewPrizeLedger() *PrizeLedger {
	return &PrizeLedger{prizes: []*Prize{
		{ID: "early-5", Name: "Early 5", Description: "First to mark 5 numbers"},
		{ID: "top-row", Name: "Top Row", Description: "Complete top row"},
		{ID: "middle-row", Name: "Middle Row", Description: "Complete middle row"},
		{ID: "bottom-row", Name: "Bottom Row", Description: "Complete bottom row"},
		{ID: "b-column", Name: "B Column", Description: "Complete B column"},
		{ID: "i-column", Name: "I Column", Description: "Complete I column"},
		{ID: "n-column", Name: "N Column", Description: "Complete N column"},
		{ID: "g-column", Name: "G Column", Description: "Complete G column"},
		{ID: "o-column", Name: "O Column", Description: "Complete O column"},
		{ID: "full-house", Name: "Full House", Description: "Mark all numbers"},
	}}
}

// Evaluate returns the not-yet-claimed prizes whose condition the
// card's marks currently satisfy. It mutates nothing, so callers can
// show "what you would win" before committing with Claim.
func (l *PrizeLedger) Evaluate(card *BingoCard) []*Prize {
	var won []*Prize
	for _, prize := range l.prizes {
		if prize.Claimed {
			continue
		}
		if prizeSatisfied(prize.ID, card) {
			won = append(won, prize)
		}
	}
	return won
}

// Claim transitions each prize to claimed and records the winner, in
// input order, skipping prizes a concurrent winner already took. The
// returned slice holds only the prizes actually claimed by this call.
func (l *PrizeLedger) Claim(prizes []*Prize, winner PrizeWinner) []*Prize {
	var claimed []*Prize
	for _, prize := range prizes {
		if prize.Claimed {
			continue
		}
		prize.Claimed = true
		w := winner
		prize.Winner = &w
		claimed = append(claimed, prize)
	}
	return claimed
}

// All returns a copy of the full catalog with claim state.
func (l *PrizeLedger) All() []Prize {
	out := make([]Prize, len(l.prizes))
	for i, p := range l.prizes {
		out[i] = *p
		if p.Winner != nil {
			w := *p.Winner
			out[i].Winner = &w
		}
	}
	return out
}

// Unclaimed returns copies of the prizes still open.
func (l *PrizeLedger) Unclaimed() []Prize {
	var out []Prize
	for _, p := range l.prizes {
		if !p.Claimed {
			out = append(out, *p)
		}
	}
	return out
}

func prizeSatisfied(id string, card *BingoCard) bool {
	switch id {
	case "early-5":
		// Free space counts toward the five.
		return card.MarkedCount() >= 5
	case "top-row":
		return card.rowMarked(0)
	case "middle-row":
		return card.rowMarked(2)
	case "bottom-row":
		return card.rowMarked(4)
	case "b-column":
		return card.columnMarked(0)
	case "i-column":
		return card.columnMarked(1)
	case "n-column":
		return card.columnMarked(2)
	case "g-column":
		return card.columnMarked(3)
	case "o-column":
		return card.columnMarked(4)
	case "full-house":
		return card.MarkedCount() == GridSize*GridSize
	}
	return false
}
