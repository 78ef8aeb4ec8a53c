package relay

import (
	"errors"
	"fmt"
	"sync"
)

// Count is the number of relays on the board.
const Count = 8

// Pins maps relay index to BCM GPIO pin, matching the installed board.
var Pins = [Count]int{5, 6, 13, 16, 19, 20, 21, 26}

// ErrBadIndex marks a relay index outside 0..Count-1.
var ErrBadIndex = errors.New("relay: index out of range")

// ValidIndex reports whether n addresses an installed relay.
func ValidIndex(n int) bool {
	return n >= 0 && n < Count
}

// Controller drives the relay board. Hardware drivers are
// installation-specific and plug in behind this interface.
type Controller interface {
	Open(n int) error
	Close(n int) error
	OpenAll() error
	CloseAll() error
}

// Memory is an in-process controller that tracks relay state without
// touching hardware. It is the default when no driver is wired in and
// doubles as the test double.
type Memory struct {
	mu   sync.Mutex
	open [Count]bool
}

// NewMemory returns a controller with all relays closed.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Open(n int) error {
	if !ValidIndex(n) {
		return fmt.Errorf("%w: %d", ErrBadIndex, n)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open[n] = true
	return nil
}

func (m *Memory) Close(n int) error {
	if !ValidIndex(n) {
		return fmt.Errorf("%w: %d", ErrBadIndex, n)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open[n] = false
	return nil
}

func (m *Memory) OpenAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.open {
		m.open[i] = true
	}
	return nil
}

func (m *Memory) CloseAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.open {
		m.open[i] = false
	}
	return nil
}

// IsOpen reports whether relay n is currently open.
func (m *Memory) IsOpen(n int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return ValidIndex(n) && m.open[n]
}
