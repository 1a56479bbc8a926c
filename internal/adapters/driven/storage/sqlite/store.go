package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/stitchworks/techpack-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/stitchworks/techpack-cli/internal/core/domain"
	"github.com/stitchworks/techpack-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// the tech pack and revision store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.techpack/data/techpack.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".techpack", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "techpack.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
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

// TechPackStore returns a TechPackStore interface backed by this store.
func (s *Store) TechPackStore() driven.TechPackStore {
	return &techPackStore{store: s}
}

// RevisionStore returns a RevisionStore interface backed by this store.
func (s *Store) RevisionStore() driven.RevisionStore {
	return &revisionStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
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

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Tech Pack Store ====================

// techPackStore implements driven.TechPackStore.
type techPackStore struct {
	store *Store
}

var _ driven.TechPackStore = (*techPackStore)(nil)

// Save stores or replaces a whole tech pack.
func (s *techPackStore) Save(ctx context.Context, pack *domain.TechPack) error {
	sectionsJSON, err := json.Marshal(pack.Sections)
	if err != nil {
		return fmt.Errorf("marshalling sections: %w", err)
	}

	now := time.Now().UTC()
	if pack.CreatedAt.IsZero() {
		pack.CreatedAt = now
	}
	pack.UpdatedAt = now

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO tech_packs (product_id, sections, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(product_id) DO UPDATE SET
			sections = excluded.sections,
			updated_at = excluded.updated_at
	`, pack.ProductID, string(sectionsJSON), pack.CreatedAt, pack.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving tech pack: %w", err)
	}
	return nil
}

// Get retrieves a tech pack by product ID.
func (s *techPackStore) Get(ctx context.Context, productID string) (*domain.TechPack, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT product_id, sections, created_at, updated_at
		FROM tech_packs WHERE product_id = ?
	`, productID)

	return scanTechPack(row)
}

// UpdateSection replaces one section (or nested field) inside a
// read-modify-write transaction.
func (s *techPackStore) UpdateSection(ctx context.Context, productID, section, field string, value domain.Value) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	row := tx.QueryRowContext(ctx, `
		SELECT product_id, sections, created_at, updated_at
		FROM tech_packs WHERE product_id = ?
	`, productID)

	pack, err := scanTechPack(row)
	if err != nil {
		return err
	}

	if err := pack.SetSection(section, field, value); err != nil {
		return err
	}

	sectionsJSON, err := json.Marshal(pack.Sections)
	if err != nil {
		return fmt.Errorf("marshalling sections: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE tech_packs SET sections = ?, updated_at = ? WHERE product_id = ?
	`, string(sectionsJSON), pack.UpdatedAt, productID); err != nil {
		return fmt.Errorf("updating section: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// List returns the product IDs of all stored tech packs.
func (s *techPackStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT product_id FROM tech_packs ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("querying tech packs: %w", err)
	}
	defer rows.Close()

	var ids []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning product id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tech packs: %w", err)
	}

	return ids, nil
}

// Delete removes a tech pack.
func (s *techPackStore) Delete(ctx context.Context, productID string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM tech_packs WHERE product_id = ?", productID)
	if err != nil {
		return fmt.Errorf("deleting tech pack: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// rowScanner abstracts sql.Row and sql.Rows for scanTechPack.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTechPack reads one tech pack row. Section values are re-coerced
// against the schema registry on load so a document written by an older
// schema still comes back shape-valid.
func scanTechPack(row rowScanner) (*domain.TechPack, error) {
	var pack domain.TechPack
	var sectionsJSON string
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&pack.ProductID, &sectionsJSON, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning tech pack: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(sectionsJSON), &raw); err != nil {
		return nil, fmt.Errorf("unmarshaling sections: %w", err)
	}

	pack.Sections = make(map[string]domain.Value, len(raw))
	for section, candidate := range raw {
		if !domain.KnownSection(section) {
			continue
		}
		pack.Sections[section] = domain.Coerce(section, "", candidate)
	}

	if createdAt.Valid {
		pack.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		pack.UpdatedAt = updatedAt.Time
	}

	return &pack, nil
}

// ==================== Revision Store ====================

// revisionStore implements driven.RevisionStore.
type revisionStore struct {
	store *Store
}

var _ driven.RevisionStore = (*revisionStore)(nil)

// revisionColumns is the column list shared by revision queries.
const revisionColumns = `id, product_id, view_type, revision_number, batch_id,
	image_url, edit_prompt, is_active, is_deleted, created_at`

// NextRevisionNumber returns max(existing)+1 for the (product, view)
// pair. Soft-deleted revisions still count so numbers never repeat.
func (s *revisionStore) NextRevisionNumber(ctx context.Context, productID string, view domain.ViewType) (int, error) {
	var next int
	row := s.store.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(revision_number), 0) + 1
		FROM view_revisions
		WHERE product_id = ? AND view_type = ?
	`, productID, string(view))
	if err := row.Scan(&next); err != nil {
		return 0, fmt.Errorf("scanning next revision number: %w", err)
	}
	return next, nil
}

// Commit deactivates the current active revision for the pair and
// inserts the new one inside a single transaction, so readers never
// observe zero or two active revisions.
func (s *revisionStore) Commit(ctx context.Context, rev domain.ViewRevision) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `
		UPDATE view_revisions SET is_active = 0
		WHERE product_id = ? AND view_type = ? AND is_active = 1 AND is_deleted = 0
	`, rev.ProductID, string(rev.ViewType)); err != nil {
		return fmt.Errorf("deactivating previous revision: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO view_revisions
			(id, product_id, view_type, revision_number, batch_id, image_url, edit_prompt, is_active, is_deleted, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, ?)
	`, rev.ID, rev.ProductID, string(rev.ViewType), rev.RevisionNumber, rev.BatchID,
		rev.ImageURL, rev.EditPrompt, boolToInt(rev.IsActive), rev.CreatedAt); err != nil {
		return fmt.Errorf("inserting revision: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves a single revision by ID.
func (s *revisionStore) Get(ctx context.Context, id string) (*domain.ViewRevision, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+revisionColumns+`
		FROM view_revisions WHERE id = ?
	`, id)

	rev, err := scanRevision(row)
	if err != nil {
		return nil, err
	}
	return rev, nil
}

// ActiveRevision returns the active, non-deleted revision for a pair.
func (s *revisionStore) ActiveRevision(ctx context.Context, productID string, view domain.ViewType) (*domain.ViewRevision, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+revisionColumns+`
		FROM view_revisions
		WHERE product_id = ? AND view_type = ? AND is_active = 1 AND is_deleted = 0
	`, productID, string(view))

	rev, err := scanRevision(row)
	if err != nil {
		return nil, err
	}
	return rev, nil
}

// ListByProduct returns all non-deleted revisions for a product, newest
// first.
func (s *revisionStore) ListByProduct(ctx context.Context, productID string) ([]domain.ViewRevision, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+revisionColumns+`
		FROM view_revisions
		WHERE product_id = ? AND is_deleted = 0
		ORDER BY created_at DESC, revision_number DESC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("querying revisions: %w", err)
	}
	defer rows.Close()

	var revs []domain.ViewRevision //nolint:prealloc // size unknown from query
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		revs = append(revs, *rev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating revisions: %w", err)
	}

	return revs, nil
}

// SoftDeleteRevision marks a single revision deleted and inactive.
func (s *revisionStore) SoftDeleteRevision(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE view_revisions SET is_deleted = 1, is_active = 0 WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("soft-deleting revision: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking soft delete: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDeleteBatch marks every revision sharing a batch id deleted and
// inactive.
func (s *revisionStore) SoftDeleteBatch(ctx context.Context, batchID string) error {
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE view_revisions SET is_deleted = 1, is_active = 0 WHERE batch_id = ?
	`, batchID)
	if err != nil {
		return fmt.Errorf("soft-deleting batch: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking batch soft delete: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanRevision reads one revision row.
func scanRevision(row rowScanner) (*domain.ViewRevision, error) {
	var rev domain.ViewRevision
	var viewType string
	var isActive, isDeleted int
	var createdAt sql.NullTime
	if err := row.Scan(&rev.ID, &rev.ProductID, &viewType, &rev.RevisionNumber,
		&rev.BatchID, &rev.ImageURL, &rev.EditPrompt, &isActive, &isDeleted, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning revision: %w", err)
	}

	rev.ViewType = domain.ViewType(viewType)
	rev.IsActive = isActive == 1
	rev.IsDeleted = isDeleted == 1
	if createdAt.Valid {
		rev.CreatedAt = createdAt.Time
	}

	return &rev, nil
}

// boolToInt converts a bool to its SQLite integer representation.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
