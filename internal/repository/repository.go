package repository

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"coopcycle-service/internal/models"

	"github.com/jackc/pgx/v5"
)

// Repository is the generic entity façade. Reads go through the joined
// query, writes touch the root table only. Each call is one statement and
// therefore its own transaction.
type Repository[E any] struct {
	db    DBTX
	table *Table[E]
}

func New[E any](db DBTX, table *Table[E]) *Repository[E] {
	return &Repository[E]{db: db, table: table}
}

func (r *Repository[E]) Table() *Table[E] {
	return r.table
}

// Each streams the assembled entities of one query in database order. The
// rows stay open until the consumer stops ranging or the result ends.
func (r *Repository[E]) Each(ctx context.Context, page *Pageable, where *Condition) iter.Seq2[*E, error] {
	return func(yield func(*E, error) bool) {
		sql, args, err := r.table.SelectSQL(page, where)
		if err != nil {
			yield(nil, err)
			return
		}

		rows, err := r.db.Query(ctx, sql, args...)
		if err != nil {
			yield(nil, storeError(err, "failed to query %s", r.table.Name))
			return
		}
		defer rows.Close()

		for rows.Next() {
			row, err := scanRow(rows)
			if err != nil {
				yield(nil, fmt.Errorf("failed to scan %s: %w", r.table.Name, err))
				return
			}
			e, err := r.table.Assemble(row)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(e, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(nil, fmt.Errorf("failed to complete row iteration: %w", err))
		}
	}
}

func (r *Repository[E]) FindAll(ctx context.Context, page *Pageable, filter Filter) ([]*E, error) {
	where, err := r.table.filterCondition(filter)
	if err != nil {
		return nil, err
	}

	var out []*E
	for e, err := range r.Each(ctx, page, where) {
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// FindByAssociation lists the rows whose foreign key for association is id.
func (r *Repository[E]) FindByAssociation(ctx context.Context, association string, id models.ID) ([]*E, error) {
	return r.FindAll(ctx, nil, Filter{Association: association, ID: id})
}

func (r *Repository[E]) FindWhereAssociationIsNull(ctx context.Context, association string) ([]*E, error) {
	return r.FindAll(ctx, nil, Filter{Association: association, IsNull: true})
}

func (r *Repository[E]) FindByID(ctx context.Context, id models.ID) (*E, error) {
	if !id.IsSet() {
		return nil, fmt.Errorf("%w: ID cannot be empty", ErrInvalidInput)
	}

	where := Eq(rootColumn("id"), int64(id))
	for e, err := range r.Each(ctx, nil, &where) {
		if err != nil {
			return nil, fmt.Errorf("get %s %d: %w", r.table.Name, id, err)
		}
		return e, nil
	}
	return nil, ErrNotFound
}

func (r *Repository[E]) ExistsByID(ctx context.Context, id models.ID) (bool, error) {
	sql := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)", quote(r.table.Name), quote("id"))

	var exists bool
	if err := r.db.QueryRow(ctx, sql, int64(id)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s %d: %w", r.table.Name, id, err)
	}
	return exists, nil
}

func (r *Repository[E]) Count(ctx context.Context, filter Filter) (int64, error) {
	where, err := r.table.filterCondition(filter)
	if err != nil {
		return 0, err
	}

	sql, args := r.table.countSQL(where)

	var n int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", r.table.Name, err)
	}
	return n, nil
}

// Save inserts e when it has no id and assigns the generated one; otherwise
// it replaces every scalar column of the row with that id. Updating a
// missing row returns ErrNotFound.
func (r *Repository[E]) Save(ctx context.Context, e *E) (*E, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: %s cannot be nil", ErrInvalidInput, r.table.Name)
	}

	if !r.table.ID(e).IsSet() {
		sql, args := r.table.insertSQL(e)

		var id int64
		if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
			return nil, storeError(err, "failed to create %s", r.table.Name)
		}
		r.table.SetID(e, models.ID(id))
		return e, nil
	}

	sql, args := r.table.updateSQL(e)
	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, storeError(err, "failed to update %s %d", r.table.Name, r.table.ID(e))
	}
	if result.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return e, nil
}

func (r *Repository[E]) DeleteByID(ctx context.Context, id models.ID) error {
	if !id.IsSet() {
		return fmt.Errorf("%w: ID cannot be empty", ErrInvalidInput)
	}

	sql := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", quote(r.table.Name), quote("id"))

	result, err := r.db.Exec(ctx, sql, int64(id))
	if err != nil {
		return storeError(err, "failed to delete %s %d", r.table.Name, id)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, pgx.ErrNoRows)
}
