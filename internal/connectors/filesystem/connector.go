// Package filesystem discovers transcripts in a local directory tree and
// watches it for new or changed files with fsnotify.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/tclean/internal/core/domain"
	"github.com/custodia-labs/tclean/internal/core/ports/driven"
	"github.com/custodia-labs/tclean/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// ConnectorType is the identifier reported by Type.
const ConnectorType = "filesystem"

// DefaultSettle is how long a file must be quiet before a change is
// reported. Word writes a document in several bursts.
const DefaultSettle = 500 * time.Millisecond

// Connector walks a directory tree for files matching a discovery filter.
type Connector struct {
	rootPath string
	filter   domain.DiscoveryFilter
	settle   time.Duration

	mu       sync.Mutex
	closed   bool
	watchers []*fsnotify.Watcher
}

// New creates a filesystem connector rooted at rootPath.
func New(rootPath string, filter domain.DiscoveryFilter) *Connector {
	return &Connector{
		rootPath: rootPath,
		filter:   filter,
		settle:   DefaultSettle,
	}
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return ConnectorType
}

// Root returns the directory the connector walks.
func (c *Connector) Root() string {
	return c.rootPath
}

// Validate checks the root exists and is a directory.
func (c *Connector) Validate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.checkRoot()
}

func (c *Connector) checkRoot() error {
	info, err := os.Stat(c.rootPath)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: root path does not exist: %s", domain.ErrNotFound, c.rootPath)
	}
	if err != nil {
		return fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: root path is not a directory: %s", domain.ErrInvalidInput, c.rootPath)
	}
	return nil
}

// Walk emits every matching file under the root in lexical order. Hidden
// files and directories are skipped. Unreadable subdirectories are
// reported on the error channel and the walk continues.
func (c *Connector) Walk(ctx context.Context) (<-chan domain.RawDocument, <-chan error) {
	docs := make(chan domain.RawDocument)
	errs := make(chan error, 16)

	go func() {
		defer close(docs)
		defer close(errs)

		if c.isClosed() {
			errs <- domain.ErrConnectorClosed
			return
		}
		if err := c.checkRoot(); err != nil {
			errs <- err
			return
		}

		walkErr := filepath.WalkDir(c.rootPath, func(path string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				sendErr(ctx, errs, fmt.Errorf("walk %s: %w", path, err))
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if path != c.rootPath && isHidden(d.Name()) {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			if !c.filter.Match(d.Name()) {
				return nil
			}

			doc := c.document(path)
			if info, err := d.Info(); err == nil {
				doc.Metadata["size"] = info.Size()
				doc.Metadata["modified"] = info.ModTime()
			}

			select {
			case docs <- doc:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if walkErr != nil && !errors.Is(walkErr, context.Canceled) {
			sendErr(ctx, errs, walkErr)
		}
	}()

	return docs, errs
}

// Watch reports created, updated and deleted matching files until ctx is
// cancelled or the connector is closed. New subdirectories are watched as
// they appear, and matching files already inside them are reported.
func (c *Connector) Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error) {
	if c.isClosed() {
		return nil, fmt.Errorf("watch: %w", domain.ErrConnectorClosed)
	}
	if err := c.checkRoot(); err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := c.addTree(watcher, c.rootPath); err != nil {
		watcher.Close()
		return nil, err
	}

	c.mu.Lock()
	c.watchers = append(c.watchers, watcher)
	c.mu.Unlock()

	changes := make(chan domain.RawDocumentChange)
	go c.watchLoop(ctx, watcher, changes)
	return changes, nil
}

type pendingChange struct {
	change domain.RawDocumentChange
	seen   time.Time
}

func (c *Connector) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, changes chan<- domain.RawDocumentChange) {
	defer close(changes)
	defer watcher.Close()

	pending := make(map[string]pendingChange)
	tick := c.settle / 2
	if tick <= 0 {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	queue := func(change *domain.RawDocumentChange) {
		uri := change.Document.URI
		if prev, ok := pending[uri]; ok && prev.change.Type == domain.ChangeCreated &&
			change.Type == domain.ChangeUpdated {
			change.Type = domain.ChangeCreated
		}
		pending[uri] = pendingChange{change: *change, seen: time.Now()}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) && !isHidden(filepath.Base(event.Name)) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					for _, change := range c.adoptDirectory(watcher, event.Name) {
						queue(&change)
					}
					continue
				}
			}
			if change := c.handleFsEvent(event); change != nil {
				queue(change)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Watch error: %v", err)

		case now := <-ticker.C:
			ready := make([]pendingChange, 0, len(pending))
			for uri, p := range pending {
				if now.Sub(p.seen) >= c.settle {
					ready = append(ready, p)
					delete(pending, uri)
				}
			}
			sort.Slice(ready, func(i, j int) bool { return ready[i].seen.Before(ready[j].seen) })
			for _, p := range ready {
				select {
				case changes <- p.change:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// handleFsEvent converts an fsnotify event into a change, or nil when the
// event is irrelevant: hidden paths, directories, non-matching names and
// attribute-only changes.
func (c *Connector) handleFsEvent(event fsnotify.Event) *domain.RawDocumentChange {
	name := filepath.Base(event.Name)
	if isHidden(name) || !c.filter.Match(name) {
		return nil
	}

	var changeType domain.ChangeType
	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		changeType = domain.ChangeDeleted
	case event.Has(fsnotify.Create):
		changeType = domain.ChangeCreated
	case event.Has(fsnotify.Write):
		changeType = domain.ChangeUpdated
	default:
		return nil
	}

	if changeType != domain.ChangeDeleted {
		info, err := os.Stat(event.Name)
		if err != nil || !info.Mode().IsRegular() {
			return nil
		}
	}

	return &domain.RawDocumentChange{
		Type:     changeType,
		Document: c.document(event.Name),
	}
}

// adoptDirectory watches a newly created directory tree and returns
// Created changes for matching files already in it.
func (c *Connector) adoptDirectory(watcher *fsnotify.Watcher, dir string) []domain.RawDocumentChange {
	if err := c.addTree(watcher, dir); err != nil {
		logger.Warn("Cannot watch %s: %v", dir, err)
	}

	var found []domain.RawDocumentChange
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path != dir && isHidden(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && c.filter.Match(d.Name()) {
			found = append(found, domain.RawDocumentChange{
				Type:     domain.ChangeCreated,
				Document: c.document(path),
			})
		}
		return nil
	})
	return found
}

// addTree adds root and every non-hidden directory below it to watcher.
func (c *Connector) addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Debug("Skipping unwatchable %s: %v", path, err)
			return fs.SkipDir
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(d.Name()) {
			return fs.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (c *Connector) document(path string) domain.RawDocument {
	return domain.RawDocument{
		URI:      path,
		MIMEType: domain.MIMETypeForPath(path),
		Metadata: map[string]any{
			"filename":  filepath.Base(path),
			"directory": filepath.Base(filepath.Dir(path)),
		},
	}
}

// Close stops all watchers. It is safe to call more than once.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	var errs []error
	for _, w := range c.watchers {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.watchers = nil
	return errors.Join(errs...)
}

func (c *Connector) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// isHidden reports whether a single path element is hidden.
// "." and ".." are not.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

func sendErr(ctx context.Context, errs chan<- error, err error) {
	select {
	case errs <- err:
	case <-ctx.Done():
	}
}

// Factory creates filesystem connectors.
type Factory struct{}

// Ensure Factory implements the interface.
var _ driven.ConnectorFactory = Factory{}

// NewFactory creates a connector factory.
func NewFactory() Factory {
	return Factory{}
}

// Create returns a connector rooted at root.
func (Factory) Create(root string, filter domain.DiscoveryFilter) (driven.Connector, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: input directory is empty", domain.ErrInvalidInput)
	}
	return New(filepath.Clean(root), filter), nil
}
