package deck

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pageloop/internal/domain"
)

// maxSlideSize caps how much of a file is read
const maxSlideSize = 1 << 20

// LoadSlide reads a slide file. The first markdown heading becomes the
// title; files without one are titled by their name.
func LoadSlide(path string) (domain.Slide, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Slide{}, fmt.Errorf("failed to open slide: %w", err)
	}
	defer f.Close()

	slide, err := ParseSlide(filepath.Base(path), io.LimitReader(f, maxSlideSize))
	if err != nil {
		return domain.Slide{}, fmt.Errorf("failed to read slide %s: %w", path, err)
	}
	slide.Path = path
	return slide, nil
}

// ParseSlide builds a slide named name from r
func ParseSlide(name string, r io.Reader) (domain.Slide, error) {
	slide := domain.Slide{
		Name:  name,
		Title: strings.TrimSuffix(name, filepath.Ext(name)),
	}

	var body []string
	titled := false
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxSlideSize)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if !titled && strings.HasPrefix(line, "#") {
			if title := strings.TrimSpace(strings.TrimLeft(line, "#")); title != "" {
				slide.Title = title
				titled = true
				continue
			}
		}
		if len(body) == 0 && line == "" {
			continue
		}
		body = append(body, strings.ReplaceAll(line, "\t", "    "))
	}
	if err := sc.Err(); err != nil {
		return domain.Slide{}, err
	}

	for len(body) > 0 && body[len(body)-1] == "" {
		body = body[:len(body)-1]
	}
	slide.Body = strings.Join(body, "\n")
	return slide, nil
}
