package journal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/docportal/internal/dbx"
	"github.com/dmitrijs2005/docportal/internal/server/journal/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, rec *Record) error {
	query := `
		INSERT INTO uploads (id, request_id, file_name, mime_type, size, folder_id,
			attachment_id, document_id, status, error, archive_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id)
		DO UPDATE SET
			attachment_id = EXCLUDED.attachment_id,
			document_id = EXCLUDED.document_id,
			status = EXCLUDED.status,
			error = EXCLUDED.error,
			archive_key = EXCLUDED.archive_key
	`
	res, err := r.db.ExecContext(ctx, query,
		rec.ID.String(), rec.RequestID, rec.FileName, rec.MimeType, rec.Size, rec.FolderID,
		rec.AttachmentID, rec.DocumentID, string(rec.Status), rec.Error, rec.ArchiveKey, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
	return nil
}

func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]*Record, error) {
	query := `
		SELECT id, request_id, file_name, mime_type, size, folder_id,
			attachment_id, document_id, status, error, archive_key, created_at
		FROM uploads
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select uploads: %w", err)
	}
	defer rows.Close()

	result := []*Record{}
	for rows.Next() {
		var item Record
		var status string
		if err := rows.Scan(&item.ID, &item.RequestID, &item.FileName, &item.MimeType, &item.Size, &item.FolderID,
			&item.AttachmentID, &item.DocumentID, &status, &item.Error, &item.ArchiveKey, &item.CreatedAt); err != nil {
			return nil, err
		}
		item.Status = Status(status)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}

// OpenPostgres opens dsn with the pgx driver and migrates the schema.
// The caller closes the returned *sql.DB.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresRepository, *sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}

	return NewPostgresRepository(db), db, nil
}
