package domain

// Slide is one page of a deck, read from a file
type Slide struct {
	Path  string
	Name  string // file name, used for ordering
	Title string // first heading, or the file name without extension
	Body  string
}

// ScanProgress represents the current scanning state
type ScanProgress struct {
	IsScanning  bool
	SlidesFound int
	CurrentPath string
}
