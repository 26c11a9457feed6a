// Package sharelink implements public share-link persistence using PostgreSQL.
// At most one link per event is active at a time.
package sharelink

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/stockcheck-backend/internal/adapter/postgres"
	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

// Repo provides share link persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new share link repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var linkColumns = []string{"id", "event_id", "token", "active", "created_by", "created_at", "revoked_at"}

type linkRow struct {
	ID        uuid.UUID  `db:"id"`
	EventID   uuid.UUID  `db:"event_id"`
	Token     string     `db:"token"`
	Active    bool       `db:"active"`
	CreatedBy string     `db:"created_by"`
	CreatedAt time.Time  `db:"created_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}

// tokenID satisfies fmt.Stringer for error messages without echoing the token.
type tokenID string

func (t tokenID) String() string {
	if len(t) <= 4 {
		return "****"
	}
	return string(t[:4]) + "****"
}

// GetActiveByEvent returns the active link of an event, or domain.ErrNotFound.
func (r *Repo) GetActiveByEvent(ctx context.Context, eventID uuid.UUID) (domain.ShareLink, error) {
	sql, args, err := postgres.Psql.
		Select(linkColumns...).
		From("event_share_links").
		Where(squirrel.Eq{"event_id": eventID, "active": true}).
		ToSql()
	if err != nil {
		return domain.ShareLink{}, fmt.Errorf("build get active share link: %w", err)
	}

	var row linkRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return domain.ShareLink{}, postgres.MapError(err, "share_link for event", eventID)
	}
	return toDomain(row), nil
}

// GetByToken returns the link for a token regardless of its state.
func (r *Repo) GetByToken(ctx context.Context, token string) (domain.ShareLink, error) {
	sql, args, err := postgres.Psql.
		Select(linkColumns...).
		From("event_share_links").
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		return domain.ShareLink{}, fmt.Errorf("build get share link: %w", err)
	}

	var row linkRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return domain.ShareLink{}, postgres.MapError(err, "share_link", tokenID(token))
	}
	return toDomain(row), nil
}

// Create inserts a new active link.
func (r *Repo) Create(ctx context.Context, link domain.ShareLink) (domain.ShareLink, error) {
	sql, args, err := postgres.Psql.
		Insert("event_share_links").
		Columns("id", "event_id", "token", "active", "created_by").
		Values(link.ID, link.EventID, link.Token, true, link.CreatedBy).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return domain.ShareLink{}, fmt.Errorf("build insert share link: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&link.CreatedAt); err != nil {
		return domain.ShareLink{}, postgres.MapError(err, "share_link", link.ID)
	}
	link.Active = true
	return link, nil
}

// DeactivateByEvent revokes every active link of the event and returns how
// many were revoked.
func (r *Repo) DeactivateByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	sql, args, err := postgres.Psql.
		Update("event_share_links").
		Set("active", false).
		Set("revoked_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"event_id": eventID, "active": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build deactivate share links: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "share_link for event", eventID)
	}
	return tag.RowsAffected(), nil
}

func toDomain(row linkRow) domain.ShareLink {
	return domain.ShareLink{
		ID:        row.ID,
		EventID:   row.EventID,
		Token:     row.Token,
		Active:    row.Active,
		CreatedBy: row.CreatedBy,
		CreatedAt: row.CreatedAt,
		RevokedAt: row.RevokedAt,
	}
}
