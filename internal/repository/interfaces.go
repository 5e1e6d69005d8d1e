package repository

import (
	"context"

	"coopcycle-service/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the part of *pgxpool.Pool the repositories need.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is the per-entity façade consumed by the service layer.
type Store[E any] interface {
	FindAll(ctx context.Context, page *Pageable, filter Filter) ([]*E, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	FindByID(ctx context.Context, id models.ID) (*E, error)
	ExistsByID(ctx context.Context, id models.ID) (bool, error)
	Save(ctx context.Context, e *E) (*E, error)
	DeleteByID(ctx context.Context, id models.ID) error
}

var (
	_ Store[models.Order]           = (*Repository[models.Order])(nil)
	_ Store[models.Basket]          = (*Repository[models.Basket])(nil)
	_ Store[models.Payment]         = (*Repository[models.Payment])(nil)
	_ Store[models.Restaurant]      = (*Repository[models.Restaurant])(nil)
	_ Store[models.RestaurantOwner] = (*Repository[models.RestaurantOwner])(nil)
	_ Store[models.Shareholder]     = (*Repository[models.Shareholder])(nil)
	_ Store[models.Client]          = (*Repository[models.Client])(nil)
)
