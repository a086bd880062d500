package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Executor is satisfied by both *pgxpool.Pool and pgx.Tx.
type Executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func NewQueryBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// SqlToListOfModels runs the query and adapts every row from its db model.
func SqlToListOfModels[DBModel, Model any](ctx context.Context, exec Executor,
	query squirrel.Sqlizer, adapter func(DBModel) (Model, error),
) ([]Model, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "can't build sql query")
	}

	rows, err := exec.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing sql query")
	}
	defer rows.Close()

	dbModels, err := pgx.CollectRows(rows, pgx.RowToStructByName[DBModel])
	if err != nil {
		return nil, errors.Wrapf(err, "error scanning rows to %T", *new(DBModel))
	}

	out := make([]Model, len(dbModels))
	for i, dbModel := range dbModels {
		if out[i], err = adapter(dbModel); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ExecBuilder builds and executes a statement, discarding the command tag.
func ExecBuilder(ctx context.Context, exec Executor, builder squirrel.Sqlizer) error {
	sql, args, err := builder.ToSql()
	if err != nil {
		return errors.Wrap(err, "can't build sql query")
	}
	if _, err := exec.Exec(ctx, sql, args...); err != nil {
		return errors.Wrap(err, "error executing sql query")
	}
	return nil
}
