package db

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"

	"hradmin/internal/platform/apperr"
)

// Table describes one CRUD-backed relation. Select is the full projection (joins for display
// names included) without WHERE or ORDER BY; KeyRef is the key column as referenced inside it.
type Table[T any] struct {
	Name    string
	Entity  string
	Key     string
	KeyRef  string
	Select  string
	OrderBy string
	// Touch sets updated_at = now() on patch unless the payload carries updated_at itself.
	Touch bool
	// OnConflict is appended to every INSERT, e.g. "ON CONFLICT DO NOTHING".
	OnConflict string
}

type Filter struct {
	Where string
	Args  []any
}

// Page limits a listing. A zero Limit returns every row.
type Page struct {
	Limit  int
	Offset int
}

func (t Table[T]) List(ctx context.Context, q Querier, filter Filter, page Page) ([]T, int, error) {
	query := t.Select
	if filter.Where != "" {
		query += " WHERE " + filter.Where
	}

	total := -1
	if page.Limit > 0 {
		if err := q.QueryRow(ctx, "SELECT COUNT(1) FROM ("+query+") AS counted", filter.Args...).Scan(&total); err != nil {
			return nil, 0, err
		}
	}

	args := slices.Clone(filter.Args)
	if t.OrderBy != "" {
		query += " ORDER BY " + t.OrderBy
	}
	if page.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, page.Limit, page.Offset)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, 0, err
	}
	if out == nil {
		out = []T{}
	}
	if total < 0 {
		total = len(out)
	}
	return out, total, nil
}

func (t Table[T]) Get(ctx context.Context, q Querier, id string) (T, error) {
	var zero T
	rows, err := q.Query(ctx, t.Select+" WHERE "+t.KeyRef+" = $1", id)
	if err != nil {
		return zero, err
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, apperr.NotFound(t.Entity)
		}
		return zero, err
	}
	return row, nil
}

// Insert writes every input; more than one input runs inside a single transaction.
func (t Table[T]) Insert(ctx context.Context, db DB, inputs ...any) error {
	if len(inputs) == 1 {
		return t.insertOne(ctx, db, inputs[0])
	}
	return InTx(ctx, db, func(tx pgx.Tx) error {
		for _, input := range inputs {
			if err := t.insertOne(ctx, tx, input); err != nil {
				return err
			}
		}
		return nil
	})
}

func (t Table[T]) insertOne(ctx context.Context, q Querier, input any) error {
	cols, args := Columns(input)
	if len(cols) == 0 {
		return fmt.Errorf("%s: no columns to insert", t.Entity)
	}
	query := insertSQL(t.Name, cols)
	if t.OnConflict != "" {
		query += " " + t.OnConflict
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", t.Entity, apperr.FromDB(err))
	}
	return nil
}

func (t Table[T]) Patch(ctx context.Context, q Querier, id string, patch any) error {
	cols, args := Columns(patch)
	if len(cols) == 0 {
		return apperr.ErrEmptyPatch
	}
	touch := t.Touch && !slices.Contains(cols, "updated_at")
	tag, err := q.Exec(ctx, updateSQL(t.Name, t.Key, cols, touch), append(args, id)...)
	if err != nil {
		return fmt.Errorf("update %s: %w", t.Entity, apperr.FromDB(err))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(t.Entity)
	}
	return nil
}

func (t Table[T]) Delete(ctx context.Context, q Querier, id string) error {
	tag, err := q.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = $1", t.Name, t.Key), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", t.Entity, apperr.FromDB(err))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(t.Entity)
	}
	return nil
}
