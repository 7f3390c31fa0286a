package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/labelforge/labelforge/api"
)

var (
	// ErrCacheDisabled indicates caching is disabled.
	ErrCacheDisabled = errors.New("caching is disabled")
	// ErrNotFound indicates the template was not found in the cache.
	ErrNotFound = errors.New("template not found")
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS templates (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	customer TEXT NOT NULL DEFAULT '',
	thumbnail TEXT NOT NULL DEFAULT '',
	design TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	accessed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	expires_at TIMESTAMP,
	UNIQUE(name, customer)
);
CREATE INDEX IF NOT EXISTS idx_templates_customer ON templates(customer);
`

// CacheConfig holds template cache configuration.
type CacheConfig struct {
	DBPath   string        // Database file path (default: ~/.cache/labelforge.db)
	TTL      time.Duration // Entry time-to-live; zero means entries never expire
	Disabled bool
}

// Cache keeps copies of loaded templates in SQLite so the editor can open
// designs while the template service is unreachable.
type Cache struct {
	db     *sql.DB
	config CacheConfig
}

// NewCache opens (and if needed creates) the template cache database.
func NewCache(config CacheConfig) (*Cache, error) {
	if config.DBPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		config.DBPath = filepath.Join(homeDir, ".cache", "labelforge.db")
	}

	if err := os.MkdirAll(filepath.Dir(config.DBPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	c := &Cache{db: db, config: config}
	if _, err := c.Prune(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// Put stores a template, replacing any cached copy of the same name for the
// same customer.
func (c *Cache) Put(customer string, t api.Template) error {
	if c.config.Disabled {
		return nil
	}
	if t.Name == "" {
		return fmt.Errorf("template has no name")
	}

	design, err := json.Marshal(t.Design)
	if err != nil {
		return fmt.Errorf("encode design: %w", err)
	}

	var expiresAt *time.Time
	if c.config.TTL != 0 {
		exp := time.Now().Add(c.config.TTL)
		expiresAt = &exp
	}

	query := `
		INSERT INTO templates (name, customer, thumbnail, design, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name, customer) DO UPDATE SET
			thumbnail = excluded.thumbnail,
			design = excluded.design,
			expires_at = excluded.expires_at,
			accessed_at = CURRENT_TIMESTAMP
	`
	if _, err := c.db.Exec(query, t.Name, customer, t.Thumbnail, string(design), expiresAt); err != nil {
		return fmt.Errorf("failed to cache template %s: %w", t.Name, err)
	}
	return nil
}

// Get retrieves a cached template by name.
func (c *Cache) Get(customer, name string) (api.Template, error) {
	if c.config.Disabled {
		return api.Template{}, ErrCacheDisabled
	}

	query := `
		SELECT id, name, thumbnail, design
		FROM templates
		WHERE name = ? AND customer = ?
		  AND (expires_at IS NULL OR expires_at > CURRENT_TIMESTAMP)
		LIMIT 1
	`
	var (
		id     int64
		t      api.Template
		design string
	)
	err := c.db.QueryRow(query, name, customer).Scan(&id, &t.Name, &t.Thumbnail, &design)
	if err == sql.ErrNoRows {
		return api.Template{}, ErrNotFound
	}
	if err != nil {
		return api.Template{}, fmt.Errorf("failed to get template %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(design), &t.Design); err != nil {
		return api.Template{}, fmt.Errorf("decode design for %s: %w", name, err)
	}

	_, _ = c.db.Exec("UPDATE templates SET accessed_at = CURRENT_TIMESTAMP WHERE id = ?", id)
	return t, nil
}

// List returns every unexpired cached template for the customer, most
// recently stored first.
func (c *Cache) List(customer string) ([]api.Template, error) {
	if c.config.Disabled {
		return nil, ErrCacheDisabled
	}

	query := `
		SELECT name, thumbnail, design
		FROM templates
		WHERE customer = ?
		  AND (expires_at IS NULL OR expires_at > CURRENT_TIMESTAMP)
		ORDER BY created_at DESC
	`
	rows, err := c.db.Query(query, customer)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []api.Template
	for rows.Next() {
		var (
			t      api.Template
			design string
		)
		if err := rows.Scan(&t.Name, &t.Thumbnail, &design); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		if err := json.Unmarshal([]byte(design), &t.Design); err != nil {
			return nil, fmt.Errorf("decode design for %s: %w", t.Name, err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// Delete removes one cached template.
func (c *Cache) Delete(customer, name string) error {
	if c.config.Disabled {
		return nil
	}
	if _, err := c.db.Exec("DELETE FROM templates WHERE name = ? AND customer = ?", name, customer); err != nil {
		return fmt.Errorf("failed to delete template %s: %w", name, err)
	}
	return nil
}

// Prune removes expired entries and reports how many were dropped.
func (c *Cache) Prune() (int64, error) {
	result, err := c.db.Exec("DELETE FROM templates WHERE expires_at IS NOT NULL AND expires_at < CURRENT_TIMESTAMP")
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}
