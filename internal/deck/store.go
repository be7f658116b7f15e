package deck

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"pageloop/internal/domain"
	"pageloop/internal/scrollview"
)

// Store holds the slides of a deck, ordered by file name. It is safe for
// concurrent use; the UI reads it through immutable snapshots.
type Store struct {
	mu      sync.RWMutex
	slides  []domain.Slide
	version int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Replace swaps the whole deck
func (s *Store) Replace(slides []domain.Slide) {
	sorted := make([]domain.Slide, len(slides))
	copy(sorted, slides)
	sortSlides(sorted)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.slides = sorted
	s.version++
}

// Add inserts a slide, replacing one with the same path
func (s *Store) Add(slide domain.Slide) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.slides {
		if s.slides[i].Path == slide.Path {
			s.slides[i] = slide
			s.version++
			return
		}
	}
	s.slides = append(s.slides, slide)
	sortSlides(s.slides)
	s.version++
}

// Remove drops the slide at path. It reports whether one was removed.
func (s *Store) Remove(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.slides {
		if s.slides[i].Path == path {
			s.slides = append(s.slides[:i:i], s.slides[i+1:]...)
			s.version++
			return true
		}
	}
	return false
}

// Len returns the number of slides
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.slides)
}

// Version increases on every change
func (s *Store) Version() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot returns the current deck as a data source that does not change
// when the store does
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slides := make([]domain.Slide, len(s.slides))
	copy(slides, s.slides)
	return &Snapshot{slides: slides, version: s.version}
}

func sortSlides(slides []domain.Slide) {
	sort.SliceStable(slides, func(i, j int) bool {
		if slides[i].Name != slides[j].Name {
			return slides[i].Name < slides[j].Name
		}
		return slides[i].Path < slides[j].Path
	})
}

// Snapshot is a frozen view of a deck. It feeds the carousel.
type Snapshot struct {
	slides  []domain.Slide
	version int
}

// NumberOfPages returns the slide count
func (s *Snapshot) NumberOfPages() int {
	return len(s.slides)
}

// PageAt fills a recycled page with the slide at index
func (s *Snapshot) PageAt(v *scrollview.ScrollView, index int) *scrollview.Page {
	slide, ok := s.At(index)
	if !ok {
		return nil
	}
	p := v.DequeueReusablePage()
	p.Title = slide.Title
	p.Body = slide.Body
	p.Footer = fmt.Sprintf("%d/%d  %s", index+1, len(s.slides), slide.Name)
	p.Data = slide
	return p
}

// At returns the slide at index
func (s *Snapshot) At(index int) (domain.Slide, bool) {
	if index < 0 || index >= len(s.slides) {
		return domain.Slide{}, false
	}
	return s.slides[index], true
}

// IndexOf returns the index of the slide at path, or -1
func (s *Snapshot) IndexOf(path string) int {
	for i := range s.slides {
		if s.slides[i].Path == path {
			return i
		}
	}
	return -1
}

// Find returns the first slide after from, wrapping around, whose title,
// body or file name contains query regardless of case. It returns -1 when
// nothing matches.
func (s *Snapshot) Find(query string, from int) int {
	q := strings.ToLower(strings.TrimSpace(query))
	n := len(s.slides)
	if q == "" || n == 0 {
		return -1
	}
	for i := 1; i <= n; i++ {
		idx := ((from+i)%n + n) % n
		sl := s.slides[idx]
		if strings.Contains(strings.ToLower(sl.Title), q) ||
			strings.Contains(strings.ToLower(sl.Body), q) ||
			strings.Contains(strings.ToLower(sl.Name), q) {
			return idx
		}
	}
	return -1
}

// Version is the store version the snapshot was taken at
func (s *Snapshot) Version() int {
	return s.version
}
