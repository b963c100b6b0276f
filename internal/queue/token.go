package queue

import (
	"fmt"
	"sync"
)

// Issuer hands out queue tokens 001, 002, ... zero-padded to three digits.
// Past 999 the token simply grows wider.
type Issuer struct {
	mu   sync.Mutex
	last int
}

func NewIssuer() *Issuer {
	return &Issuer{}
}

func (i *Issuer) Issue() string {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.last++
	return fmt.Sprintf("%03d", i.last)
}

func (i *Issuer) Reset() {
	i.mu.Lock()
	i.last = 0
	i.mu.Unlock()
}
