package pgxutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// WithPgxConn acquires a *pgx.Conn via the stdlib bridge and executes fn with it.
func WithPgxConn(ctx context.Context, db *sql.DB, fn func(*pgx.Conn) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("get conn from pool: %w", err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			// connection close failure is best-effort and ignored
			_ = closeErr
		}
	}()

	return conn.Raw(func(dc any) error {
		std, ok := dc.(*stdlib.Conn)
		if !ok {
			return errors.New("unexpected driver connection type; expected *stdlib.Conn")
		}
		pgxConn := std.Conn()
		return fn(pgxConn)
	})
}

// WithPgxTx runs the given function within a pgx transaction using the stdlib bridge.
func WithPgxTx(ctx context.Context, db *sql.DB, fn func(pgx.Tx) error) error {
	return WithPgxConn(ctx, db, func(pgxConn *pgx.Conn) error {
		tx, err := pgxConn.BeginTx(ctx, pgx.TxOptions{})
		if err != nil {
			return fmt.Errorf("begin pgx tx: %w", err)
		}
		defer func() {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				// rollback failure is safe to ignore here
				_ = rollbackErr
			}
		}()
		if fnErr := fn(tx); fnErr != nil {
			return fnErr
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			return fmt.Errorf("commit pgx tx: %w", commitErr)
		}
		return nil
	})
}
