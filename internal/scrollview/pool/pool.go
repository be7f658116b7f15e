package pool

import (
	"errors"

	"pageloop/internal/scrollview/layout"
)

// ErrPageInUse is returned when a page is attached to a second slot
var ErrPageInUse = errors.New("page already attached to another slot")

// Pool recycles page objects between the three slots. A page is either
// attached to exactly one slot or sitting in the available list.
type Pool[P comparable] struct {
	factory   func() P
	reset     func(P)
	available []P
	attached  [layout.SlotCount]P
	created   int
}

// New creates a pool. factory builds a page when none is available and reset
// blanks a page before it is handed out again.
func New[P comparable](factory func() P, reset func(P)) *Pool[P] {
	return &Pool[P]{factory: factory, reset: reset}
}

// Dequeue returns a page that is not attached to any slot
func (p *Pool[P]) Dequeue() P {
	if n := len(p.available); n > 0 {
		page := p.available[n-1]
		p.available = p.available[:n-1]
		if p.reset != nil {
			p.reset(page)
		}
		return page
	}
	p.created++
	return p.factory()
}

// Attach binds page to slot. Whatever occupied the slot is returned to the
// available list first. Pages the pool never created are adopted.
func (p *Pool[P]) Attach(page P, slot layout.Slot) error {
	var zero P
	if page == zero {
		p.Detach(slot)
		return nil
	}
	for _, s := range layout.Slots {
		if s != slot && p.attached[s] == page {
			return ErrPageInUse
		}
	}
	if p.attached[slot] == page {
		return nil
	}
	p.Detach(slot)
	p.take(page)
	p.attached[slot] = page
	return nil
}

// Detach unbinds whatever is in slot and makes it available again
func (p *Pool[P]) Detach(slot layout.Slot) P {
	var zero P
	page := p.attached[slot]
	if page == zero {
		return zero
	}
	p.attached[slot] = zero
	p.available = append(p.available, page)
	return page
}

// Reclaim takes page back out of the available list without resetting it.
// It reports false when the page has already been handed out again.
func (p *Pool[P]) Reclaim(page P) bool {
	return p.take(page)
}

// Release hands back a dequeued page that was never attached. Pages
// already attached or available are left alone.
func (p *Pool[P]) Release(page P) {
	var zero P
	if page == zero {
		return
	}
	for _, a := range p.attached {
		if a == page {
			return
		}
	}
	for _, a := range p.available {
		if a == page {
			return
		}
	}
	p.available = append(p.available, page)
}

// Attached returns the page bound to slot
func (p *Pool[P]) Attached(slot layout.Slot) P {
	return p.attached[slot]
}

// Rotate moves attachments one slot towards dir, the same way the layout
// engine rotates slot roles. The page pushed out of range becomes available.
func (p *Pool[P]) Rotate(dir layout.Direction) P {
	out := layout.Rotate(&p.attached, dir)
	var zero P
	if out != zero {
		p.available = append(p.available, out)
	}
	return out
}

// Reset detaches every slot
func (p *Pool[P]) Reset() {
	for _, s := range layout.Slots {
		p.Detach(s)
	}
}

// InUse is the number of attached pages
func (p *Pool[P]) InUse() int {
	var zero P
	n := 0
	for _, page := range p.attached {
		if page != zero {
			n++
		}
	}
	return n
}

// Available is the number of pages waiting to be reused
func (p *Pool[P]) Available() int {
	return len(p.available)
}

// Created is the number of pages the factory has built
func (p *Pool[P]) Created() int {
	return p.created
}

func (p *Pool[P]) take(page P) bool {
	for i, a := range p.available {
		if a == page {
			p.available = append(p.available[:i], p.available[i+1:]...)
			return true
		}
	}
	return false
}
