package view

import (
	"sync"

	"github.com/harrylevesque/ordercode/internal/models"
)

const (
	Title       = "Enter order number"
	Placeholder = "e.g. 1234"
	EmptyText   = "No data"
	SubmitLabel = "Send"
)

// Page is everything a front-end draws for one frame.
type Page struct {
	Input  string
	State  string
	Alert  string
	Groups models.GroupedView
}

// Flash keeps the latest alert until a front-end takes it.
type Flash struct {
	mu      sync.Mutex
	message string
}

func (f *Flash) Alert(message string) {
	f.mu.Lock()
	f.message = message
	f.mu.Unlock()
}

// Take returns the pending alert and clears it.
func (f *Flash) Take() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.message
	f.message = ""
	return m
}
