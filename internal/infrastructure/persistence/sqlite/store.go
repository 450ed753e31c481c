// Package sqlite persists authored trees in an embedded SQLite database.
// Tree structure is stored as a JSON document per tree; provenance records
// are additionally flattened into their own table so the library can be
// queried by source taxonomy without decoding every document.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/agrabowski5/TaxonomyViewing/internal/domain/builder"
	"github.com/agrabowski5/TaxonomyViewing/internal/infrastructure/monitoring/logging"
	"github.com/agrabowski5/TaxonomyViewing/pkg/errors"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

const schema = `
CREATE TABLE IF NOT EXISTS authored_trees (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	node_count INTEGER NOT NULL,
	document   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS authored_provenance (
	tree_id         TEXT NOT NULL REFERENCES authored_trees(id) ON DELETE CASCADE,
	node_id         TEXT NOT NULL,
	source_taxonomy TEXT NOT NULL,
	source_code     TEXT NOT NULL,
	PRIMARY KEY (tree_id, node_id)
);
CREATE INDEX IF NOT EXISTS idx_provenance_source
	ON authored_provenance (source_taxonomy, source_code);
`

// Store implements builder.Repository over an embedded SQLite database.
type Store struct {
	db     *sql.DB
	logger logging.Logger
}

// Open opens (creating if needed) the database at path and applies the
// schema.  Use ":memory:" for an ephemeral store in tests.
func Open(path string, logger logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStoreError, "failed to open builder library")
	}
	// modernc's driver serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, errors.ErrCodeStoreError, "failed to enable foreign keys")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, errors.ErrCodeStoreError, "failed to apply builder schema")
	}
	return &Store{db: db, logger: logger.Named("sqlite")}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts or replaces a tree and rebuilds its provenance rows.
func (s *Store) Save(ctx context.Context, tree *builder.Tree) error {
	if tree == nil {
		return errors.New(errors.ErrCodeTreeInvalid, "nil tree")
	}
	if err := tree.Validate(); err != nil {
		return err
	}
	doc, err := json.Marshal(tree.Roots)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode authored tree")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeStoreError, "failed to begin transaction")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO authored_trees (id, name, created_at, updated_at, node_count, document)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			updated_at = excluded.updated_at,
			node_count = excluded.node_count,
			document = excluded.document`,
		tree.ID, tree.Name,
		tree.CreatedAt.UTC().Format(time.RFC3339Nano),
		tree.UpdatedAt.UTC().Format(time.RFC3339Nano),
		tree.NodeCount(), string(doc))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeStoreError, "failed to save authored tree")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM authored_provenance WHERE tree_id = ?`, tree.ID); err != nil {
		return errors.Wrap(err, errors.ErrCodeStoreError, "failed to clear provenance rows")
	}
	if err := insertProvenance(ctx, tx, tree); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.ErrCodeStoreError, "failed to commit authored tree")
	}
	s.logger.Debug("saved authored tree",
		logging.String("tree_id", tree.ID),
		logging.Int("nodes", tree.NodeCount()))
	return nil
}

func insertProvenance(ctx context.Context, tx *sql.Tx, tree *builder.Tree) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO authored_provenance (tree_id, node_id, source_taxonomy, source_code)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeStoreError, "failed to prepare provenance insert")
	}
	defer stmt.Close()

	var walk func(*builder.Node) error
	walk = func(n *builder.Node) error {
		if n.Provenance != nil {
			if _, err := stmt.ExecContext(ctx, tree.ID, n.ID,
				string(n.Provenance.SourceTaxonomy), n.Provenance.SourceCode); err != nil {
				return errors.Wrap(err, errors.ErrCodeStoreError, "failed to insert provenance row")
			}
		}
		for _, child := range n.Children {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	for _, root := range tree.Roots {
		if err := walk(root); err != nil {
			return err
		}
	}
	return nil
}

// Get loads one tree by identifier.
func (s *Store) Get(ctx context.Context, id string) (*builder.Tree, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at, document
		FROM authored_trees WHERE id = ?`, id)

	var tree builder.Tree
	var created, updated, doc string
	if err := row.Scan(&tree.ID, &tree.Name, &created, &updated, &doc); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New(errors.ErrCodeTreeNotFound, "authored tree not found").WithDetail(id)
		}
		return nil, errors.Wrap(err, errors.ErrCodeStoreError, "failed to load authored tree")
	}
	var err error
	if tree.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStoreError, "corrupt created_at timestamp")
	}
	if tree.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStoreError, "corrupt updated_at timestamp")
	}
	if err := json.Unmarshal([]byte(doc), &tree.Roots); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode authored tree")
	}
	return &tree, nil
}

// List returns summaries of every stored tree, most recently updated first.
func (s *Store) List(ctx context.Context) ([]builder.Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at, node_count
		FROM authored_trees ORDER BY updated_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStoreError, "failed to list authored trees")
	}
	defer rows.Close()

	summaries := make([]builder.Summary, 0)
	for rows.Next() {
		var sum builder.Summary
		var created, updated string
		if err := rows.Scan(&sum.ID, &sum.Name, &created, &updated, &sum.NodeCount); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeStoreError, "failed to scan authored tree row")
		}
		if sum.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeStoreError, "corrupt created_at timestamp")
		}
		if sum.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeStoreError, "corrupt updated_at timestamp")
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStoreError, "failed to iterate authored trees")
	}
	return summaries, nil
}

// Delete removes a tree and, through the cascade, its provenance rows.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM authored_trees WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeStoreError, "failed to delete authored tree")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeStoreError, "failed to read delete result")
	}
	if affected == 0 {
		return errors.New(errors.ErrCodeTreeNotFound, "authored tree not found").WithDetail(id)
	}
	return nil
}

// TreesReferencing lists the identifiers of trees containing at least one
// node cloned from the given taxonomy and code.
func (s *Store) TreesReferencing(ctx context.Context, tax ttypes.ID, code string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT tree_id FROM authored_provenance
		WHERE source_taxonomy = ? AND source_code = ?`, string(tax), code)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStoreError, "failed to query provenance")
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeStoreError, "failed to scan provenance row")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStoreError, "failed to iterate provenance rows")
	}
	return ids, nil
}
