package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/rotisserie/eris"

	"maps-scraper/models"
)

// PostgresWriter persists businesses to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: open")
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "postgres: ping failed after retries")
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "postgres: migrate")
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS businesses (
			id           UUID PRIMARY KEY,
			name         TEXT NOT NULL,
			rating       TEXT NOT NULL DEFAULT '',
			review_count TEXT NOT NULL DEFAULT '',
			address      TEXT NOT NULL DEFAULT '',
			category     TEXT NOT NULL DEFAULT '',
			phone        TEXT NOT NULL DEFAULT '',
			website      TEXT NOT NULL DEFAULT '',
			email        TEXT NOT NULL DEFAULT '',
			facebook     TEXT NOT NULL DEFAULT '',
			instagram    TEXT NOT NULL DEFAULT '',
			twitter      TEXT NOT NULL DEFAULT '',
			linkedin     TEXT NOT NULL DEFAULT '',
			youtube      TEXT NOT NULL DEFAULT '',
			whatsapp     TEXT NOT NULL DEFAULT '',
			search_term  TEXT NOT NULL DEFAULT '',
			area         TEXT NOT NULL DEFAULT '',
			coordinates  TEXT NOT NULL DEFAULT '',
			scraped_date TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (name, search_term, area)
		);

		CREATE INDEX IF NOT EXISTS idx_businesses_area     ON businesses(area);
		CREATE INDEX IF NOT EXISTS idx_businesses_category ON businesses(category);
	`)
	return err
}

// Write upserts businesses in batches. A re-scraped business keeps values
// the new scrape left empty.
func (pw *PostgresWriter) Write(businesses []*models.Business) error {
	businesses = uniqueByKey(businesses)
	if len(businesses) == 0 {
		return nil
	}

	const batchSize = 50
	for i := 0; i < len(businesses); i += batchSize {
		end := i + batchSize
		if end > len(businesses) {
			end = len(businesses)
		}
		if err := pw.upsertBatch(businesses[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) upsertBatch(batch []*models.Business) error {
	width := len(Columns) + 1
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*width)

	for idx, b := range batch {
		placeholders := make([]string, width)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", idx*width+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs, uuid.NewString())
		valueArgs = append(valueArgs, args(b)...)
	}

	var updates []string
	for _, c := range Columns {
		switch c {
		case "name", "search_term", "area":
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = COALESCE(NULLIF(EXCLUDED.%s, ''), businesses.%s)", c, c, c))
	}

	query := fmt.Sprintf(`
		INSERT INTO businesses (id, %s)
		VALUES %s
		ON CONFLICT (name, search_term, area) DO UPDATE SET %s
	`, strings.Join(Columns, ", "), strings.Join(valueStrings, ","), strings.Join(updates, ", "))

	if _, err := pw.db.Exec(query, valueArgs...); err != nil {
		return eris.Wrap(err, "postgres: upsert batch")
	}
	return nil
}

// FetchAll retrieves every stored business, oldest first.
func (pw *PostgresWriter) FetchAll() ([]*models.Business, error) {
	rows, err := pw.db.Query(fmt.Sprintf(`SELECT %s FROM businesses ORDER BY created_at, name`, strings.Join(Columns, ", ")))
	if err != nil {
		return nil, eris.Wrap(err, "postgres: fetch all")
	}
	defer rows.Close()

	var out []*models.Business
	for rows.Next() {
		b := &models.Business{}
		if err := rows.Scan(scanTargets(b)...); err != nil {
			return nil, eris.Wrap(err, "postgres: scan row")
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

func scanTargets(b *models.Business) []interface{} {
	return []interface{}{
		&b.Name, &b.Rating, &b.ReviewCount, &b.Address, &b.Category, &b.Phone, &b.Website,
		&b.Email, &b.Facebook, &b.Instagram, &b.Twitter, &b.LinkedIn, &b.YouTube, &b.WhatsApp,
		&b.SearchTerm, &b.Area, &b.Coordinates, &b.ScrapedDate,
	}
}

// uniqueByKey keeps the last record per (name, search_term, area); a single
// upsert statement may not touch the same row twice.
func uniqueByKey(businesses []*models.Business) []*models.Business {
	index := make(map[string]int, len(businesses))
	out := make([]*models.Business, 0, len(businesses))
	for _, b := range businesses {
		key := b.Name + "\x00" + b.SearchTerm + "\x00" + b.Area
		if i, ok := index[key]; ok {
			out[i] = b
			continue
		}
		index[key] = len(out)
		out = append(out, b)
	}
	return out
}
