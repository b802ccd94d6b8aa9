package postgres

import (
	"context"
	"errors"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-portfolio-api/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
)

// querier is what both the pool and an open transaction provide.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type txKey struct{}

// Gateway executes parameterized SQL and scans rows into typed values.
// Stores never talk to the pool directly.
type Gateway struct {
	pool *pgxpool.Pool
}

func NewGateway(pool *pgxpool.Pool) *Gateway {
	return &Gateway{pool: pool}
}

func (g *Gateway) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return g.pool
}

// Execute scans every returned row into dst, a pointer to a slice.
func (g *Gateway) Execute(ctx context.Context, dst any, sql string, args ...any) error {
	return translate(pgxscan.Select(ctx, g.conn(ctx), dst, sql, args...))
}

// ExecuteOne scans the first row into dst and reports whether there was one.
func (g *Gateway) ExecuteOne(ctx context.Context, dst any, sql string, args ...any) (bool, error) {
	err := pgxscan.Get(ctx, g.conn(ctx), dst, sql, args...)
	if pgxscan.NotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, translate(err)
	}
	return true, nil
}

// ExecuteRequired is ExecuteOne failing with NotFound(notFound) on zero rows.
func (g *Gateway) ExecuteRequired(ctx context.Context, notFound string, dst any, sql string, args ...any) error {
	found, err := g.ExecuteOne(ctx, dst, sql, args...)
	if err != nil {
		return err
	}
	if !found {
		return apperror.NotFound(notFound)
	}
	return nil
}

// Exec runs a statement and returns the number of affected rows.
func (g *Gateway) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := g.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, translate(err)
	}
	return tag.RowsAffected(), nil
}

const uniqueViolation = "23505"

// translate maps constraint violations the API surfaces to typed errors.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperror.Conflict("Resource already exists.").Wrap(err)
	}
	return err
}

// WithinTx runs fn in a transaction. Nested calls join the outer one.
func (g *Gateway) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}
	return pgx.BeginFunc(ctx, g.pool, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

var _ repository.Transactor = (*Gateway)(nil)
