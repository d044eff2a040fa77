package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/division-gg/division-api/internal/data/pgxutil"
	"github.com/division-gg/division-api/internal/domain/model"
	apperrors "github.com/division-gg/division-api/internal/errors"
)

// VerificationRepo provides database operations for the verification flow
// state machine.
type VerificationRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewVerificationRepo creates a new VerificationRepo with real time provider.
func NewVerificationRepo(db *sql.DB) *VerificationRepo {
	return &VerificationRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewVerificationRepoWithTimeProvider creates a new VerificationRepo with a custom time provider (useful for tests).
func NewVerificationRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *VerificationRepo {
	return &VerificationRepo{DB: db, timeProvider: tp}
}

// Start creates a verification record for a Discord user, or returns the
// existing one. A user restarting the flow before completing it is reset to
// awaiting_authorization; a verified user is returned unchanged.
func (r *VerificationRepo) Start(
	ctx context.Context,
	req *model.StartVerificationRequest,
) (*model.Verification, error) {
	if req == nil {
		return nil, errors.New("start verification request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.Verification
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO verifications (user_id, username, state, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
			ON CONFLICT (user_id) DO UPDATE SET
				username = EXCLUDED.username,
				state = CASE
					WHEN verifications.state = 'verified' THEN verifications.state
					ELSE EXCLUDED.state
				END,
				updated_at = EXCLUDED.updated_at
			RETURNING id, user_id, username, state, verified_at, created_at, updated_at
		`, req.UserID, req.Username, model.VerificationAwaitingAuthorization, now)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Verification])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start verification: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// GetByUserID retrieves the verification record for a Discord user.
func (r *VerificationRepo) GetByUserID(ctx context.Context, userID string) (*model.Verification, error) {
	var out model.Verification
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, verificationGetByUserIDQuery, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Verification])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVerificationNotFound
		}
		return nil, fmt.Errorf("failed to get verification: %w", err)
	}
	return &out, nil
}

// Transition moves a user's verification to the next state. The row is
// locked for the duration of the check so concurrent transitions serialize.
// Moving to verified also stamps verified_at.
func (r *VerificationRepo) Transition(
	ctx context.Context,
	userID string,
	next model.VerificationState,
) (*model.Verification, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown state %q", ErrInvalidStateTransition, next)
	}

	now := r.timeProvider.Now().UTC()
	var out model.Verification
	err := pgxutil.WithPgxTx(ctx, r.DB, func(tx pgx.Tx) error {
		var current model.VerificationState
		err := tx.QueryRow(ctx,
			`SELECT state FROM verifications WHERE user_id = $1 FOR UPDATE`,
			userID,
		).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrVerificationNotFound
			}
			return err
		}
		if !current.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, current, next)
		}

		var verifiedAt *time.Time
		if next == model.VerificationVerified {
			verifiedAt = &now
		}
		rows, err := tx.Query(ctx, `
			UPDATE verifications
			SET state = $2,
			    verified_at = COALESCE($3, verified_at),
			    updated_at = $4
			WHERE user_id = $1
			RETURNING id, user_id, username, state, verified_at, created_at, updated_at
		`, userID, next, verifiedAt, now)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Verification])
		return err
	})
	if err != nil {
		if errors.Is(err, ErrVerificationNotFound) || errors.Is(err, ErrInvalidStateTransition) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to transition verification: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

const verificationGetByUserIDQuery = `
	SELECT id, user_id, username, state, verified_at, created_at, updated_at
	FROM verifications
	WHERE user_id = $1`
