package index

// Resolver maps virtual page positions onto data source indices.
// It holds no state beyond the page count and the wrap policy, so a
// new value is built whenever either changes.
type Resolver struct {
	Count int
	Wrap  bool
}

// New creates a resolver for count pages
func New(count int, wrap bool) Resolver {
	if count < 0 {
		count = 0
	}
	return Resolver{Count: count, Wrap: wrap}
}

// Empty reports whether there are no pages to resolve
func (r Resolver) Empty() bool {
	return r.Count <= 0
}

// Valid reports whether i is a real index
func (r Resolver) Valid(i int) bool {
	return !r.Empty() && i >= 0 && i < r.Count
}

// Normalize maps a virtual index onto a real index
func (r Resolver) Normalize(v int) (int, bool) {
	if r.Empty() {
		return 0, false
	}
	if r.Wrap {
		return ((v % r.Count) + r.Count) % r.Count, true
	}
	if v < 0 {
		return 0, true
	}
	if v >= r.Count {
		return r.Count - 1, true
	}
	return v, true
}

// Next returns the real index after i; false means there is no further page
func (r Resolver) Next(i int) (int, bool) {
	if !r.Valid(i) {
		return 0, false
	}
	if i+1 < r.Count {
		return i + 1, true
	}
	if r.Wrap {
		return 0, true
	}
	return 0, false
}

// Previous returns the real index before i; false means there is no earlier page
func (r Resolver) Previous(i int) (int, bool) {
	if !r.Valid(i) {
		return 0, false
	}
	if i > 0 {
		return i - 1, true
	}
	if r.Wrap {
		return r.Count - 1, true
	}
	return 0, false
}

// Step moves i by one page in the direction of the sign of step
func (r Resolver) Step(i, step int) (int, bool) {
	switch {
	case step > 0:
		return r.Next(i)
	case step < 0:
		return r.Previous(i)
	default:
		return i, r.Valid(i)
	}
}

// Distance returns the signed number of single steps from one real index to
// another. With wrap enabled the shorter way round wins, forward on a tie.
func (r Resolver) Distance(from, to int) int {
	if !r.Valid(from) || !r.Valid(to) {
		return 0
	}
	d := to - from
	if !r.Wrap {
		return d
	}
	d = ((d % r.Count) + r.Count) % r.Count
	if d*2 > r.Count {
		d -= r.Count
	}
	return d
}
