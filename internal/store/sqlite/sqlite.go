// Package sqlite implements the expense store on SQLite via modernc.org's
// pure-Go driver, with schema managed by embedded golang-migrate migrations.
// It supplements the in-memory backend when expenses should survive restarts.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"splitledger/internal/core"
	"splitledger/internal/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) Add(ctx context.Context, d store.Draft) (core.Expense, error) {
	now := time.Now().UTC()
	e := core.Expense{
		Amount:      d.Amount,
		Description: d.Description,
		Payer:       d.Payer,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (amount_cents, description, payer, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Amount.Cents, e.Description, e.Payer,
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Expense{}, fmt.Errorf("last insert id: %w", err)
	}
	e.ID = id

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", e.ID,
		"description", e.Description,
		"amount_cents", e.Amount.Cents,
		"payer", e.Payer)
	return e, nil
}

func (s *Store) List(ctx context.Context) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, amount_cents, description, payer, created_at, updated_at
		 FROM expenses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id int64) (core.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, amount_cents, description, payer, created_at, updated_at
		 FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, store.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

func (s *Store) Update(ctx context.Context, id int64, p store.Patch) (core.Expense, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return core.Expense{}, err
	}

	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Payer != nil {
		e.Payer = *p.Payer
	}
	e.UpdatedAt = time.Now().UTC()
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE expenses SET amount_cents = ?, description = ?, payer = ?, updated_at = ?
		 WHERE id = ?`,
		e.Amount.Cents, e.Description, e.Payer, e.UpdatedAt.Format(time.RFC3339Nano), id)
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	return e, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(row scanner) (core.Expense, error) {
	var (
		e                    core.Expense
		createdAt, updatedAt string
	)
	if err := row.Scan(&e.ID, &e.Amount.Cents, &e.Description, &e.Payer, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Expense{}, err
		}
		return core.Expense{}, fmt.Errorf("scan expense: %w", err)
	}
	var err error
	if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return core.Expense{}, fmt.Errorf("parse created_at: %w", err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return core.Expense{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return e, nil
}
