package ioreg

import "github.com/evo-automation/evo/internal/constants"

// Bank is a 1024-bit packed digital bank, backing both DI and DO buses
// (§4.7). It is read/written by value in the hot path: no heap allocation,
// no locking — the cycle orchestrator owns exclusive access to each bank
// for the duration of a cycle step.
type Bank [constants.BankWords]uint64

// Get reports bit n's value. n must be in [0, 1024); out-of-range n
// returns false rather than panicking, so a misconfigured pin never
// crashes the cycle; config loading does not check pin ranges.
func (b *Bank) Get(n int) bool {
	if n < 0 || n >= constants.MaxDI {
		return false
	}
	word := n / 64
	bit := uint(n % 64)
	return b[word]&(1<<bit) != 0
}

// Set assigns bit n. Out-of-range n is a silent no-op, for the same reason
// as Get.
func (b *Bank) Set(n int, v bool) {
	if n < 0 || n >= constants.MaxDI {
		return
	}
	word := n / 64
	bit := uint(n % 64)
	if v {
		b[word] |= 1 << bit
	} else {
		b[word] &^= 1 << bit
	}
}

// Clear zeroes every bit in the bank.
func (b *Bank) Clear() {
	for i := range b {
		b[i] = 0
	}
}
