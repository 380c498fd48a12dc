package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/redlinehq/redline/internal/core/domain"
	"github.com/redlinehq/redline/internal/core/ports/driven"
	"github.com/redlinehq/redline/internal/logger"
)

// debounceWindow coalesces bursts of filesystem events (e.g. a large
// copy into a watched folder) into a single snapshot rebuild.
const debounceWindow = 500 * time.Millisecond

// TreeNode is one entry in the document tree snapshot.
type TreeNode struct {
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	IsDir    bool       `json:"isDir,omitempty"`
	Children []TreeNode `json:"children,omitempty"`
}

// TreeWatcher keeps the stored file-tree snapshot in sync with the
// PDF documents under a set of root directories.
type TreeWatcher struct {
	roots []string
	store driven.WorkspaceStore
	now   func() time.Time
}

// NewTreeWatcher creates a watcher over the given roots.
func NewTreeWatcher(roots []string, store driven.WorkspaceStore) *TreeWatcher {
	return &TreeWatcher{
		roots: roots,
		store: store,
		now:   time.Now,
	}
}

// Snapshot scans the roots and persists a fresh tree snapshot.
func (w *TreeWatcher) Snapshot(ctx context.Context) error {
	nodes := make([]TreeNode, 0, len(w.roots))
	for _, root := range w.roots {
		node, err := scanDir(root)
		if err != nil {
			logger.Warn("scanning document root %s: %v", root, err)
			continue
		}
		nodes = append(nodes, node)
	}

	tree, err := json.Marshal(nodes)
	if err != nil {
		return err
	}
	return w.store.SaveFileTree(ctx, &domain.FileTreeSnapshot{
		Tree:       tree,
		CapturedAt: w.now().UTC(),
	})
}

// Watch takes an initial snapshot, then rebuilds it whenever the
// document tree changes. Blocks until the context is cancelled.
func (w *TreeWatcher) Watch(ctx context.Context) error {
	if err := w.Snapshot(ctx); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, root := range w.roots {
		if err := addRecursive(watcher, root); err != nil {
			logger.Warn("watching document root %s: %v", root, err)
		}
	}

	var timer *time.Timer
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			// New directories need watches of their own.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(watcher, event.Name); err != nil {
						logger.Warn("watching new directory %s: %v", event.Name, err)
					}
				}
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				pending = timer.C
			} else {
				timer.Reset(debounceWindow)
			}

		case <-pending:
			timer = nil
			pending = nil
			if err := w.Snapshot(ctx); err != nil {
				logger.Warn("rebuilding file tree snapshot: %v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error: %v", err)
		}
	}
}

// relevant reports whether an event can change the document tree.
// Chmod-only events and hidden paths are ignored.
func (w *TreeWatcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if isHidden(event.Name) {
		return false
	}
	if isPDF(event.Name) {
		return true
	}
	// Directory events matter too; on Remove/Rename we cannot stat,
	// so anything without a known file extension is assumed to be one.
	return filepath.Ext(event.Name) == ""
}

// scanDir builds the tree node for one directory, recursively.
// Only PDF files and the directories leading to them are included.
func scanDir(dir string) (TreeNode, error) {
	node := TreeNode{
		Name:  filepath.Base(dir),
		Path:  dir,
		IsDir: true,
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return node, err
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		full := filepath.Join(dir, name)
		if entry.IsDir() {
			child, err := scanDir(full)
			if err != nil {
				logger.Warn("scanning %s: %v", full, err)
				continue
			}
			node.Children = append(node.Children, child)
		} else if isPDF(name) {
			node.Children = append(node.Children, TreeNode{Name: name, Path: full})
		}
	}

	sort.Slice(node.Children, func(i, j int) bool {
		if node.Children[i].IsDir != node.Children[j].IsDir {
			return node.Children[i].IsDir
		}
		return node.Children[i].Name < node.Children[j].Name
	})
	return node, nil
}

// addRecursive watches dir and every subdirectory beneath it.
func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if isHidden(path) && path != dir {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// isPDF reports whether the path names a PDF document.
func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// isHidden reports whether any path element starts with a dot.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if len(part) > 1 && strings.HasPrefix(part, ".") && part != ".." {
			return true
		}
	}
	return false
}
