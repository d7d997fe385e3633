// Package crud implements the list / get / create / patch / remove surface shared by every
// table-backed entity.
package crud

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"hradmin/internal/platform/db"
)

type ListQuery struct {
	Page    db.Page
	Filters map[string]string
}

type Resource[T, C, P any] interface {
	List(ctx context.Context, q ListQuery) ([]T, int, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, inputs []C) error
	Patch(ctx context.Context, id string, patch P) error
	Remove(ctx context.Context, id string) error
}

// Repo is the pgx-backed Resource. Filters maps accepted filter names to column references.
type Repo[T, C, P any] struct {
	DB      db.DB
	Table   db.Table[T]
	Filters map[string]string
	// Prepare runs on every input before insert; returning an error aborts the whole batch.
	Prepare func(ctx context.Context, input *C) error
	// PreparePatch runs before the update; returning an error leaves the row untouched.
	PreparePatch func(ctx context.Context, id string, patch *P) error
}

func (r *Repo[T, C, P]) List(ctx context.Context, q ListQuery) ([]T, int, error) {
	filter := r.filter(q.Filters)
	rows, total, err := r.Table.List(ctx, r.DB, filter, q.Page)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", r.Table.Entity, err)
	}
	return rows, total, nil
}

func (r *Repo[T, C, P]) Get(ctx context.Context, id string) (T, error) {
	return r.Table.Get(ctx, r.DB, id)
}

func (r *Repo[T, C, P]) Create(ctx context.Context, inputs []C) error {
	if len(inputs) == 0 {
		return nil
	}
	batch := make([]any, 0, len(inputs))
	for i := range inputs {
		input := inputs[i]
		if r.Prepare != nil {
			if err := r.Prepare(ctx, &input); err != nil {
				return err
			}
		}
		batch = append(batch, input)
	}
	return r.Table.Insert(ctx, r.DB, batch...)
}

func (r *Repo[T, C, P]) Patch(ctx context.Context, id string, patch P) error {
	if r.PreparePatch != nil {
		if err := r.PreparePatch(ctx, id, &patch); err != nil {
			return err
		}
	}
	return r.Table.Patch(ctx, r.DB, id, patch)
}

func (r *Repo[T, C, P]) Remove(ctx context.Context, id string) error {
	return r.Table.Delete(ctx, r.DB, id)
}

func (r *Repo[T, C, P]) filter(values map[string]string) db.Filter {
	names := make([]string, 0, len(values))
	for name, value := range values {
		if _, ok := r.Filters[name]; ok && strings.TrimSpace(value) != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var filter db.Filter
	conds := make([]string, 0, len(names))
	for _, name := range names {
		filter.Args = append(filter.Args, values[name])
		conds = append(conds, fmt.Sprintf("%s = $%d", r.Filters[name], len(filter.Args)))
	}
	filter.Where = strings.Join(conds, " AND ")
	return filter
}

// Observed wraps a Resource and calls onWrite after every successful create, patch or remove.
type Observed[T, C, P any] struct {
	Resource[T, C, P]
	OnWrite func(ctx context.Context)
}

func (o Observed[T, C, P]) Create(ctx context.Context, inputs []C) error {
	if err := o.Resource.Create(ctx, inputs); err != nil {
		return err
	}
	o.OnWrite(ctx)
	return nil
}

func (o Observed[T, C, P]) Patch(ctx context.Context, id string, patch P) error {
	if err := o.Resource.Patch(ctx, id, patch); err != nil {
		return err
	}
	o.OnWrite(ctx)
	return nil
}

func (o Observed[T, C, P]) Remove(ctx context.Context, id string) error {
	if err := o.Resource.Remove(ctx, id); err != nil {
		return err
	}
	o.OnWrite(ctx)
	return nil
}
