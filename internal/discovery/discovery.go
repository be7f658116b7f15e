package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"pageloop/internal/deck"
	"pageloop/internal/domain"
	"pageloop/internal/eventbus"
)

// ErrScanInProgress is returned when a scan is started while one is running
var ErrScanInProgress = errors.New("scan already in progress")

// Options control what a scan picks up
type Options struct {
	Extensions []string
	MaxDepth   int
}

// DiscoveryService finds slide files in the deck directory
type DiscoveryService interface {
	StartScan(ctx context.Context, dir string) error
	StopScan()
	Scanning() bool
}

// discoveryService is the concrete implementation
type discoveryService struct {
	bus        eventbus.EventBus
	opts       Options
	mu         sync.Mutex
	isScanning bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewDiscoveryService creates a new discovery service
func NewDiscoveryService(bus eventbus.EventBus, opts Options) DiscoveryService {
	return &discoveryService{bus: bus, opts: opts}
}

// StartScan scans dir in the background. Every slide found is published
// as it is read, and the whole set with ScanCompleted.
func (ds *discoveryService) StartScan(ctx context.Context, dir string) error {
	ds.mu.Lock()
	if ds.isScanning {
		ds.mu.Unlock()
		return ErrScanInProgress
	}
	ds.isScanning = true

	scanCtx, cancel := context.WithCancel(ctx)
	ds.cancelFunc = cancel
	ds.mu.Unlock()

	ds.bus.Publish(eventbus.ScanStartedEvent{Dir: dir})

	ds.wg.Add(1)
	go func() {
		defer ds.wg.Done()
		defer cancel()

		slides, err := Scan(scanCtx, dir, ds.opts, func(s domain.Slide) {
			ds.bus.Publish(eventbus.SlideDiscoveredEvent{Slide: s})
		})
		cancelled := errors.Is(err, context.Canceled)
		if err != nil && !cancelled {
			log.Printf("Error scanning directory %s: %v", dir, err)
			ds.bus.Publish(eventbus.ErrorEvent{
				Message: fmt.Sprintf("Failed to scan %s", dir),
				Err:     err,
			})
		}

		ds.mu.Lock()
		ds.isScanning = false
		ds.cancelFunc = nil
		ds.mu.Unlock()

		ds.bus.Publish(eventbus.ScanCompletedEvent{Dir: dir, Slides: slides, Cancelled: cancelled})
	}()

	return nil
}

// StopScan stops any ongoing scan and waits for it to finish
func (ds *discoveryService) StopScan() {
	ds.mu.Lock()
	if ds.cancelFunc != nil {
		ds.cancelFunc()
	}
	ds.mu.Unlock()

	ds.wg.Wait()
}

// Scanning reports whether a scan is running
func (ds *discoveryService) Scanning() bool {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.isScanning
}

// skipDirs are never descended into
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"__pycache__":  true,
}

// Scan walks dir for slide files, calling found for each one read. Files
// that cannot be read are logged and skipped.
func Scan(ctx context.Context, dir string, opts Options, found func(domain.Slide)) ([]domain.Slide, error) {
	exts := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[strings.ToLower(e)] = true
	}

	var slides []domain.Slide
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			if path == dir {
				return err
			}
			log.Printf("Error walking path %s: %v", path, err)
			return nil
		}

		if d.IsDir() {
			if path == dir {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") || skipDirs[name] {
				return fs.SkipDir
			}
			relPath, _ := filepath.Rel(dir, path)
			if strings.Count(relPath, string(filepath.Separator))+1 > opts.MaxDepth {
				return fs.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") || !d.Type().IsRegular() {
			return nil
		}
		if len(exts) > 0 && !exts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		slide, err := deck.LoadSlide(path)
		if err != nil {
			log.Printf("Skipping %s: %v", path, err)
			return nil
		}
		slides = append(slides, slide)
		if found != nil {
			found(slide)
		}
		return nil
	})
	return slides, err
}
