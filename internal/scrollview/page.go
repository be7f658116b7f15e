package scrollview

// Page is the view bound to one slot. Pages are recycled: a page handed
// out by DequeueReusablePage may have shown another index before.
type Page struct {
	ID     int
	Index  int
	Title  string
	Body   string
	Footer string
	Data   any
}

// PrepareForReuse blanks the page before it is handed out again
func (p *Page) PrepareForReuse() {
	p.Index = -1
	p.Title = ""
	p.Body = ""
	p.Footer = ""
	p.Data = nil
}

// Blank reports whether the page has no content
func (p *Page) Blank() bool {
	return p == nil || (p.Title == "" && p.Body == "" && p.Footer == "" && p.Data == nil)
}
