package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/validata/backend/internal/dataset"
)

// DBTX is the subset of pgx operations the store needs. Satisfied by
// both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres stores dataset records in a csv_datasets table. The columns
// and preview_data fields are JSONB.
type Postgres struct {
	db DBTX
}

// NewPostgres creates a Postgres store over db.
func NewPostgres(db DBTX) *Postgres {
	return &Postgres{db: db}
}

const createDatasetsTable = `
CREATE TABLE IF NOT EXISTS csv_datasets (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	file_name    TEXT NOT NULL,
	file_path    TEXT NOT NULL,
	uploaded_at  TIMESTAMPTZ NOT NULL,
	columns      JSONB NOT NULL,
	row_count    INTEGER NOT NULL,
	preview_data JSONB NOT NULL
)`

func (s *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createDatasetsTable); err != nil {
		return fmt.Errorf("ensure csv_datasets table: %w", err)
	}
	return nil
}

func (s *Postgres) Insert(ctx context.Context, d *dataset.Dataset) error {
	columns, err := json.Marshal(d.Columns)
	if err != nil {
		return fmt.Errorf("encode columns: %w", err)
	}
	preview, err := json.Marshal(d.Preview)
	if err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO csv_datasets (id, name, file_name, file_path, uploaded_at, columns, row_count, preview_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		d.ID, d.Name, d.FileName, d.FilePath, d.UploadedAt, columns, d.RowCount, preview,
	)
	if err != nil {
		return fmt.Errorf("insert dataset %s: %w", d.ID, err)
	}
	return nil
}

const selectDataset = `
SELECT id, name, file_name, file_path, uploaded_at, columns, row_count, preview_data
FROM csv_datasets`

func (s *Postgres) Get(ctx context.Context, id string) (*dataset.Dataset, error) {
	row := s.db.QueryRow(ctx, selectDataset+" WHERE id = $1", id)
	d, err := scanDataset(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, dataset.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get dataset %s: %w", id, err)
	}
	return d, nil
}

func (s *Postgres) List(ctx context.Context) ([]*dataset.Dataset, error) {
	rows, err := s.db.Query(ctx, selectDataset+" ORDER BY uploaded_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()

	var datasets []*dataset.Dataset
	for rows.Next() {
		d, err := scanDataset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dataset: %w", err)
		}
		datasets = append(datasets, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	return datasets, nil
}

func scanDataset(row pgx.Row) (*dataset.Dataset, error) {
	var (
		d       dataset.Dataset
		columns []byte
		preview []byte
	)
	if err := row.Scan(&d.ID, &d.Name, &d.FileName, &d.FilePath, &d.UploadedAt, &columns, &d.RowCount, &preview); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(columns, &d.Columns); err != nil {
		return nil, fmt.Errorf("decode columns: %w", err)
	}
	if err := json.Unmarshal(preview, &d.Preview); err != nil {
		return nil, fmt.Errorf("decode preview: %w", err)
	}
	return &d, nil
}
