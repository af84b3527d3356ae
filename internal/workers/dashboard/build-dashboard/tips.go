package builddashboard

import "sync"

// TipBoard holds the featured window over the tip pool. The scheduler
// advances it once a day; readers take a copy.
type TipBoard struct {
	mu      sync.RWMutex
	tips    []string
	perDay  int
	offset  int
	advance int
}

func NewTipBoard(tips []string, perDay int) *TipBoard {
	if len(tips) == 0 {
		tips = DefaultTips
	}
	if perDay <= 0 || perDay > len(tips) {
		perDay = 2
		if perDay > len(tips) {
			perDay = len(tips)
		}
	}
	return &TipBoard{tips: append([]string(nil), tips...), perDay: perDay}
}

// Featured returns the tips shown today.
func (b *TipBoard) Featured() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]string, 0, b.perDay)
	for i := 0; i < b.perDay; i++ {
		out = append(out, b.tips[(b.offset+i)%len(b.tips)])
	}
	return out
}

// Advance moves the window to the next perDay tips, wrapping around.
func (b *TipBoard) Advance() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.offset = (b.offset + b.perDay) % len(b.tips)
	b.advance++
}

// Rotations reports how many times the board has advanced.
func (b *TipBoard) Rotations() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.advance
}
