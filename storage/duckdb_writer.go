package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rotisserie/eris"

	"maps-scraper/models"
)

// DuckDBWriter keeps a local analytical copy of every scraped business.
type DuckDBWriter struct {
	db *sql.DB
}

func NewDuckDBWriter(ctx context.Context, path string) (*DuckDBWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, eris.Wrap(err, "duckdb: create output dir")
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, eris.Wrap(err, "duckdb: open")
	}

	defs := make([]string, len(Columns))
	for i, c := range Columns {
		defs[i] = c + " TEXT"
	}
	query := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS businesses (
		%s,
		updated_at TIMESTAMP DEFAULT current_timestamp,
		PRIMARY KEY (name, search_term, area)
	);`, strings.Join(defs, ",\n\t\t"))
	if _, err := db.ExecContext(ctx, query); err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "duckdb: init schema")
	}
	return &DuckDBWriter{db: db}, nil
}

func (w *DuckDBWriter) Write(businesses []*models.Business) error {
	if len(businesses) == 0 {
		return nil
	}
	ctx := context.Background()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(Columns)), ", ")
	var updates []string
	for _, c := range Columns {
		switch c {
		case "name", "search_term", "area":
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = COALESCE(NULLIF(EXCLUDED.%s, ''), businesses.%s)", c, c, c))
	}
	updates = append(updates, "updated_at = current_timestamp")
	query := fmt.Sprintf(`
	INSERT INTO businesses (%s) VALUES (%s)
	ON CONFLICT (name, search_term, area) DO UPDATE SET %s;`,
		strings.Join(Columns, ", "), placeholders, strings.Join(updates, ", "))

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "duckdb: begin")
	}
	for _, b := range businesses {
		if _, err := tx.ExecContext(ctx, query, args(b)...); err != nil {
			_ = tx.Rollback()
			return eris.Wrapf(err, "duckdb: upsert %q", b.Name)
		}
	}
	return eris.Wrap(tx.Commit(), "duckdb: commit")
}

func (w *DuckDBWriter) Close() error {
	return w.db.Close()
}
