package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/division-gg/division-api/internal/data/pgxutil"
	"github.com/division-gg/division-api/internal/domain/model"
)

// EmailRepo provides database operations for captured signup emails.
type EmailRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewEmailRepo creates a new EmailRepo with real time provider.
func NewEmailRepo(db *sql.DB) *EmailRepo {
	return &EmailRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewEmailRepoWithTimeProvider creates a new EmailRepo with a custom time provider (useful for tests).
func NewEmailRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *EmailRepo {
	return &EmailRepo{DB: db, timeProvider: tp}
}

// Capture inserts a signup email. Inserting an email that already exists is
// treated as success; the existing row is returned and created reports false.
func (r *EmailRepo) Capture(
	ctx context.Context,
	req *model.CaptureEmailRequest,
) (*model.CapturedEmail, bool, error) {
	if req == nil {
		return nil, false, errors.New("capture email request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, false, err
	}

	email := req.NormalizedEmail()
	source := req.Source
	if source == "" {
		source = "landing"
	}

	var out model.CapturedEmail
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO captured_emails (email, source, created_at)
			VALUES ($1, $2, $3)
			RETURNING id, email, source, created_at
		`, email, source, r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.CapturedEmail])
		return err
	})
	if err == nil {
		return &out, true, nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		existing, getErr := r.GetByEmail(ctx, email)
		if getErr != nil {
			return nil, false, getErr
		}
		return existing, false, nil
	}
	return nil, false, fmt.Errorf("failed to capture email: %w", err)
}

// GetByEmail retrieves a captured email by its normalized address.
func (r *EmailRepo) GetByEmail(ctx context.Context, email string) (*model.CapturedEmail, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}

	var out model.CapturedEmail
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, emailGetByAddressQuery, email)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.CapturedEmail])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("captured email %q: %w", email, sql.ErrNoRows)
		}
		return nil, fmt.Errorf("failed to get captured email: %w", err)
	}
	return &out, nil
}

// List retrieves captured emails newest first with pagination. Used by the
// dev-only debug listing.
func (r *EmailRepo) List(ctx context.Context, limit, offset int) ([]*model.CapturedEmail, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.CapturedEmail
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, emailListQuery, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.CapturedEmail])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list captured emails: %w", err)
	}

	res := make([]*model.CapturedEmail, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Count returns the number of captured emails.
func (r *EmailRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `SELECT count(*) FROM captured_emails`).Scan(&n)
	}); err != nil {
		return 0, fmt.Errorf("failed to count captured emails: %w", err)
	}
	return n, nil
}

const (
	emailGetByAddressQuery = `
		SELECT id, email, source, created_at
		FROM captured_emails
		WHERE email = $1`

	emailListQuery = `
		SELECT id, email, source, created_at
		FROM captured_emails
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
)
