package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/redlinehq/redline/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/redlinehq/redline/internal/core/domain"
	"github.com/redlinehq/redline/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// the annotation and workspace store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.redline/data/annotations.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".redline", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "annotations.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// AnnotationStore returns an AnnotationStore interface backed by this store.
func (s *Store) AnnotationStore() driven.AnnotationStore {
	return &annotationStore{store: s}
}

// WorkspaceStore returns a WorkspaceStore interface backed by this store.
func (s *Store) WorkspaceStore() driven.WorkspaceStore {
	return &workspaceStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Annotation Store ====================

// annotationStore implements driven.AnnotationStore.
type annotationStore struct {
	store *Store
}

var _ driven.AnnotationStore = (*annotationStore)(nil)

const annotationColumns = `id, document_id, page_number, rects, selected_text,
	note, category, creator, tags, parent_id, created_at, updated_at`

// Save stores or updates an annotation.
func (s *annotationStore) Save(ctx context.Context, a *domain.Annotation) error {
	if a.ID == "" {
		return domain.ErrInvalidInput
	}

	rectsJSON, err := json.Marshal(a.Rects)
	if err != nil {
		return fmt.Errorf("marshalling rects: %w", err)
	}

	var tagsJSON sql.NullString
	if a.Tags != nil {
		raw, err := json.Marshal(a.Tags)
		if err != nil {
			return fmt.Errorf("marshalling tags: %w", err)
		}
		tagsJSON = sql.NullString{String: string(raw), Valid: true}
	}

	var parentID sql.NullString
	if a.ParentID != nil && *a.ParentID != "" {
		parentID = sql.NullString{String: *a.ParentID, Valid: true}
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO annotations (`+annotationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			document_id = excluded.document_id,
			page_number = excluded.page_number,
			rects = excluded.rects,
			selected_text = excluded.selected_text,
			note = excluded.note,
			category = excluded.category,
			creator = excluded.creator,
			tags = excluded.tags,
			parent_id = excluded.parent_id,
			updated_at = excluded.updated_at
	`, a.ID, a.DocumentID, a.PageNumber, string(rectsJSON), a.SelectedText,
		a.Note, string(a.Category), string(a.Creator), tagsJSON, parentID,
		a.CreatedAt, a.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving annotation: %w", err)
	}
	return nil
}

// Get retrieves an annotation by ID.
func (s *annotationStore) Get(ctx context.Context, id string) (*domain.Annotation, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+annotationColumns+`
		FROM annotations WHERE id = ?
	`, id)

	return scanAnnotation(row)
}

// Delete removes an annotation.
func (s *annotationStore) Delete(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM annotations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting annotation: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting annotation: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByDocument returns annotations for a document in creation order.
func (s *annotationStore) ListByDocument(ctx context.Context, documentID string) ([]domain.Annotation, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+annotationColumns+`
		FROM annotations WHERE document_id = ?
		ORDER BY created_at, id
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying annotations: %w", err)
	}
	defer rows.Close()

	return scanAnnotations(rows)
}

// List returns all annotations in creation order.
func (s *annotationStore) List(ctx context.Context) ([]domain.Annotation, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+annotationColumns+`
		FROM annotations
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying annotations: %w", err)
	}
	defer rows.Close()

	return scanAnnotations(rows)
}

// scanAnnotation scans a single annotation row.
func scanAnnotation(row *sql.Row) (*domain.Annotation, error) {
	var a domain.Annotation
	var category, creator, rectsJSON string
	var tagsJSON, parentID sql.NullString

	if err := row.Scan(&a.ID, &a.DocumentID, &a.PageNumber, &rectsJSON, &a.SelectedText,
		&a.Note, &category, &creator, &tagsJSON, &parentID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning annotation: %w", err)
	}

	if err := fillAnnotation(&a, category, creator, rectsJSON, tagsJSON, parentID); err != nil {
		return nil, err
	}
	return &a, nil
}

// scanAnnotations scans multiple annotation rows.
func scanAnnotations(rows *sql.Rows) ([]domain.Annotation, error) {
	var annotations []domain.Annotation //nolint:prealloc // size unknown from query
	for rows.Next() {
		var a domain.Annotation
		var category, creator, rectsJSON string
		var tagsJSON, parentID sql.NullString

		if err := rows.Scan(&a.ID, &a.DocumentID, &a.PageNumber, &rectsJSON, &a.SelectedText,
			&a.Note, &category, &creator, &tagsJSON, &parentID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning annotation: %w", err)
		}

		if err := fillAnnotation(&a, category, creator, rectsJSON, tagsJSON, parentID); err != nil {
			return nil, err
		}
		annotations = append(annotations, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating annotations: %w", err)
	}

	return annotations, nil
}

// fillAnnotation decodes the JSON and nullable columns onto the record.
func fillAnnotation(a *domain.Annotation, category, creator, rectsJSON string, tagsJSON, parentID sql.NullString) error {
	a.Category = domain.Category(category)
	a.Creator = domain.Creator(creator)

	if err := json.Unmarshal([]byte(rectsJSON), &a.Rects); err != nil {
		return fmt.Errorf("unmarshalling rects: %w", err)
	}
	if tagsJSON.Valid {
		if err := json.Unmarshal([]byte(tagsJSON.String), &a.Tags); err != nil {
			return fmt.Errorf("unmarshalling tags: %w", err)
		}
	}
	if parentID.Valid {
		a.ParentID = &parentID.String
	}
	return nil
}

// ==================== Workspace Store ====================

// workspaceStore implements driven.WorkspaceStore.
type workspaceStore struct {
	store *Store
}

var _ driven.WorkspaceStore = (*workspaceStore)(nil)

// RecentFiles returns the stored recent-files list, newest first.
func (s *workspaceStore) RecentFiles(ctx context.Context) ([]domain.RecentFile, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT path, name, opened_at
		FROM recent_files
		ORDER BY opened_at DESC, path
	`)
	if err != nil {
		return nil, fmt.Errorf("querying recent files: %w", err)
	}
	defer rows.Close()

	var files []domain.RecentFile //nolint:prealloc // size unknown from query
	for rows.Next() {
		var f domain.RecentFile
		if err := rows.Scan(&f.Path, &f.Name, &f.OpenedAt); err != nil {
			return nil, fmt.Errorf("scanning recent file: %w", err)
		}
		files = append(files, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recent files: %w", err)
	}

	return files, nil
}

// SaveRecentFiles replaces the stored recent-files list.
func (s *workspaceStore) SaveRecentFiles(ctx context.Context, files []domain.RecentFile) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM recent_files"); err != nil {
		return fmt.Errorf("clearing recent files: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO recent_files (path, name, opened_at) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, f := range files {
		if _, err := stmt.ExecContext(ctx, f.Path, f.Name, f.OpenedAt); err != nil {
			return fmt.Errorf("saving recent file: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// FileTree returns the stored file-tree snapshot, or nil when none exists.
func (s *workspaceStore) FileTree(ctx context.Context) (*domain.FileTreeSnapshot, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT tree, captured_at FROM file_tree WHERE id = 1
	`)

	var snapshot domain.FileTreeSnapshot
	var tree string
	if err := row.Scan(&tree, &snapshot.CapturedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning file tree: %w", err)
	}
	snapshot.Tree = []byte(tree)
	return &snapshot, nil
}

// SaveFileTree replaces the stored file-tree snapshot.
func (s *workspaceStore) SaveFileTree(ctx context.Context, snapshot *domain.FileTreeSnapshot) error {
	if snapshot == nil {
		if _, err := s.store.db.ExecContext(ctx, "DELETE FROM file_tree WHERE id = 1"); err != nil {
			return fmt.Errorf("clearing file tree: %w", err)
		}
		return nil
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO file_tree (id, tree, captured_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			tree = excluded.tree,
			captured_at = excluded.captured_at
	`, string(snapshot.Tree), snapshot.CapturedAt)

	if err != nil {
		return fmt.Errorf("saving file tree: %w", err)
	}
	return nil
}
