package game

import "sync"

// Wallet is the single coin balance shared by hint purchases and rewards.
// Every mutation goes through set, so subscribers observe writes in order.
// Subscribers must not mutate the wallet from their callback.
type Wallet struct {
	notifyMu sync.Mutex
	mu       sync.Mutex
	balance  int
	nextID   int
	subs     map[int]func(balance int)
}

// NewWallet creates a wallet holding initial coins. Negative values clamp to zero.
func NewWallet(initial int) *Wallet {
	if initial < 0 {
		initial = 0
	}
	return &Wallet{
		balance: initial,
		subs:    make(map[int]func(int)),
	}
}

// Balance returns the current balance.
func (w *Wallet) Balance() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balance
}

// Credit adds amount to the balance and returns the new balance.
// Non-positive amounts are ignored.
func (w *Wallet) Credit(amount int) int {
	if amount <= 0 {
		return w.Balance()
	}
	next, _ := w.set(func(cur int) (int, bool) { return cur + amount, true })
	return next
}

// Debit removes amount from the balance. It returns false and leaves the
// balance untouched when the balance is lower than amount.
func (w *Wallet) Debit(amount int) bool {
	if amount < 0 {
		return false
	}
	_, ok := w.set(func(cur int) (int, bool) {
		if cur < amount {
			return cur, false
		}
		return cur - amount, true
	})
	return ok
}

// Subscribe registers fn to be called with the new balance after every change.
// The returned function removes the subscription.
func (w *Wallet) Subscribe(fn func(balance int)) func() {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.subs[id] = fn
	w.mu.Unlock()

	return func() {
		w.mu.Lock()
		delete(w.subs, id)
		w.mu.Unlock()
	}
}

func (w *Wallet) set(apply func(cur int) (int, bool)) (int, bool) {
	w.notifyMu.Lock()
	defer w.notifyMu.Unlock()

	w.mu.Lock()
	next, ok := apply(w.balance)
	if !ok || next < 0 {
		cur := w.balance
		w.mu.Unlock()
		return cur, false
	}
	changed := next != w.balance
	w.balance = next
	subs := make([]func(int), 0, len(w.subs))
	for _, fn := range w.subs {
		subs = append(subs, fn)
	}
	w.mu.Unlock()

	if changed {
		for _, fn := range subs {
			fn(next)
		}
	}
	return next, true
}
