// Package store provides SQLite-backed persistence for model sources
// and their export history, so hosts can save and reload models.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store handles database operations for saved models and exports.
type Store struct {
	db *sql.DB
}

// Model is a saved source buffer.
type Model struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Export records one serialization of a model to a file.
type Export struct {
	ID        string    `json:"id"`
	ModelID   string    `json:"model_id"`
	Filename  string    `json:"filename"`
	Triangles int       `json:"triangles"`
	CreatedAt time.Time `json:"created_at"`
}

// New opens (or creates) the store at the given database path.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS models (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		source TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS exports (
		id TEXT PRIMARY KEY,
		model_id TEXT NOT NULL,
		filename TEXT NOT NULL,
		triangles INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (model_id) REFERENCES models(id)
	);

	CREATE INDEX IF NOT EXISTS idx_models_name ON models(name);
	CREATE INDEX IF NOT EXISTS idx_exports_model ON exports(model_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveModel inserts a new model and returns it with a fresh ID.
func (s *Store) SaveModel(name, source string) (*Model, error) {
	now := time.Now().UTC()
	m := &Model{
		ID:        uuid.New().String(),
		Name:      name,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.db.Exec(
		`INSERT INTO models (id, name, source, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Source, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("save model: %w", err)
	}
	return m, nil
}

// UpdateModel replaces a saved model's source.
func (s *Store) UpdateModel(id, source string) error {
	res, err := s.db.Exec(
		`UPDATE models SET source = ?, updated_at = ? WHERE id = ?`,
		source, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update model: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("update model: %s not found", id)
	}
	return nil
}

// Model retrieves a saved model by ID.
func (s *Store) Model(id string) (*Model, error) {
	row := s.db.QueryRow(
		`SELECT id, name, source, created_at, updated_at FROM models WHERE id = ?`, id,
	)
	var m Model
	if err := row.Scan(&m.ID, &m.Name, &m.Source, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, fmt.Errorf("load model %s: %w", id, err)
	}
	return &m, nil
}

// ListModels returns all saved models, most recently updated first.
func (s *Store) ListModels() ([]*Model, error) {
	rows, err := s.db.Query(
		`SELECT id, name, source, created_at, updated_at FROM models ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var models []*Model
	for rows.Next() {
		var m Model
		if err := rows.Scan(&m.ID, &m.Name, &m.Source, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		models = append(models, &m)
	}
	return models, rows.Err()
}

// RecordExport logs one export of a model.
func (s *Store) RecordExport(modelID, filename string, triangles int) (*Export, error) {
	e := &Export{
		ID:        uuid.New().String(),
		ModelID:   modelID,
		Filename:  filename,
		Triangles: triangles,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(
		`INSERT INTO exports (id, model_id, filename, triangles, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.ModelID, e.Filename, e.Triangles, e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("record export: %w", err)
	}
	return e, nil
}

// ListExports returns a model's export history, newest first.
func (s *Store) ListExports(modelID string) ([]*Export, error) {
	rows, err := s.db.Query(
		`SELECT id, model_id, filename, triangles, created_at
		 FROM exports WHERE model_id = ? ORDER BY created_at DESC`, modelID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exports []*Export
	for rows.Next() {
		var e Export
		if err := rows.Scan(&e.ID, &e.ModelID, &e.Filename, &e.Triangles, &e.CreatedAt); err != nil {
			return nil, err
		}
		exports = append(exports, &e)
	}
	return exports, rows.Err()
}
