package game

import "github.com/ashureev/arctic-quest/internal/domain"

// HintLedger tracks which hints were bought during one attempt.
// Revealed hints stay revealed and are never refunded.
type HintLedger struct {
	hints    []domain.Hint
	revealed map[int]bool
	order    []int
	spent    int
}

// NewHintLedger creates an empty ledger over a riddle's hints.
func NewHintLedger(hints []domain.Hint) *HintLedger {
	return &HintLedger{
		hints:    hints,
		revealed: make(map[int]bool),
	}
}

// Reveal buys the hint at index from the wallet. It is a no-op returning
// false when the index is out of range, already revealed, or unaffordable.
func (l *HintLedger) Reveal(index int, w *Wallet) bool {
	if index < 0 || index >= len(l.hints) || l.revealed[index] {
		return false
	}
	cost := l.hints[index].Cost
	if !w.Debit(cost) {
		return false
	}
	l.revealed[index] = true
	l.order = append(l.order, index)
	l.spent += cost
	return true
}

// IsRevealed reports whether the hint at index was bought.
func (l *HintLedger) IsRevealed(index int) bool {
	return l.revealed[index]
}

// Revealed returns the bought hint indices in purchase order.
func (l *HintLedger) Revealed() []int {
	out := make([]int, len(l.order))
	copy(out, l.order)
	return out
}

// Spent returns the total cost of all revealed hints.
func (l *HintLedger) Spent() int {
	return l.spent
}
