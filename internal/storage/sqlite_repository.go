package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const recordColumns = `id, path, heading, start_line, end_line, status, title,
	original_title, original_text, notes, dialect, scheduled, length_minutes,
	due, start, created, completion, reminder, priority, repeat, block_reference,
	tags, children, extra`

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) PutRecord(ctx context.Context, in Record) error {
	_, err := r.db.ExecContext(ctx, upsertRecordSQL, recordArgs(in)...)
	return err
}

func (r *SQLiteRepository) GetRecord(ctx context.Context, id string) (Record, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

func (r *SQLiteRepository) DeleteRecord(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListRecords(ctx context.Context, filter RecordListFilter) ([]Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records`
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if filter.Path != "" {
		clauses = append(clauses, "path = ?")
		args = append(args, filter.Path)
	}
	if filter.Tag != "" {
		// Tags are stored as a JSON array of strings.
		clauses = append(clauses, "tags LIKE ?")
		args = append(args, `%"`+filter.Tag+`"%`)
	}
	if filter.Dialect != "" {
		clauses = append(clauses, "dialect = ?")
		args = append(args, filter.Dialect)
	}
	if filter.ScheduledDay != "" {
		clauses = append(clauses, "scheduled LIKE ?")
		args = append(args, filter.ScheduledDay+"%")
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY path ASC, start_line ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		rec, scanErr := scanRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ReplacePath(ctx context.Context, path string, records []Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE path = ?`, path); err != nil {
		return err
	}
	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, upsertRecordSQL, recordArgs(rec)...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

const upsertRecordSQL = `
	INSERT INTO records (` + recordColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		path = excluded.path,
		heading = excluded.heading,
		start_line = excluded.start_line,
		end_line = excluded.end_line,
		status = excluded.status,
		title = excluded.title,
		original_title = excluded.original_title,
		original_text = excluded.original_text,
		notes = excluded.notes,
		dialect = excluded.dialect,
		scheduled = excluded.scheduled,
		length_minutes = excluded.length_minutes,
		due = excluded.due,
		start = excluded.start,
		created = excluded.created,
		completion = excluded.completion,
		reminder = excluded.reminder,
		priority = excluded.priority,
		repeat = excluded.repeat,
		block_reference = excluded.block_reference,
		tags = excluded.tags,
		children = excluded.children,
		extra = excluded.extra`

func recordArgs(in Record) []any {
	return []any{
		in.ID, in.Path, in.Heading, in.StartLine, in.EndLine, in.Status,
		in.Title, in.OriginalTitle, in.OriginalText, in.Notes, in.Dialect,
		in.Scheduled, nullInt(in.LengthMinutes), in.Due, in.Start, in.Created,
		in.Completion, in.Reminder, in.Priority, in.Repeat, in.BlockReference,
		in.Tags, in.Children, in.Extra,
	}
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var out Record
	var length sql.NullInt64
	if err := s.Scan(
		&out.ID, &out.Path, &out.Heading, &out.StartLine, &out.EndLine,
		&out.Status, &out.Title, &out.OriginalTitle, &out.OriginalText,
		&out.Notes, &out.Dialect, &out.Scheduled, &length, &out.Due,
		&out.Start, &out.Created, &out.Completion, &out.Reminder,
		&out.Priority, &out.Repeat, &out.BlockReference, &out.Tags,
		&out.Children, &out.Extra,
	); err != nil {
		return Record{}, err
	}
	if length.Valid {
		minutes := int(length.Int64)
		out.LengthMinutes = &minutes
	}
	return out, nil
}
