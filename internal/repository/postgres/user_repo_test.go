package postgres

import (
	"context"
	"strings"
	"testing"

	"github.com/garagelog/garagelog-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow scans a canned user row or fails with a canned error
type fakeRow struct {
	err  error
	user *domain.User
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int32) = r.user.ID
	*dest[1].(*string) = r.user.FirebaseUID
	*dest[2].(*string) = r.user.Email
	*dest[3].(*string) = r.user.Name
	*dest[4].(*string) = r.user.Picture
	return nil
}

// fakeQuerier replays a scripted sequence of row results
type fakeQuerier struct {
	rows []fakeRow
	sql  []string
}

func (q *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.sql = append(q.sql, sql)
	row := q.rows[0]
	q.rows = q.rows[1:]
	return row
}

func TestCreateOrGet_ReturnsExistingRow(t *testing.T) {
	existing := &domain.User{ID: 1, FirebaseUID: "uid-1", Email: "a@example.com"}
	db := &fakeQuerier{rows: []fakeRow{{user: existing}}}
	repo := &UserRepository{db: db}

	user, err := repo.CreateOrGet(context.Background(), &domain.User{FirebaseUID: "uid-1", Email: "stale@example.com"})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)
	assert.Equal(t, "a@example.com", user.Email, "existing row is returned unmodified")
	assert.Len(t, db.sql, 1)
}

func TestCreateOrGet_InsertsOnFirstSight(t *testing.T) {
	created := &domain.User{ID: 7, FirebaseUID: "uid-1", Email: "a@example.com"}
	db := &fakeQuerier{rows: []fakeRow{
		{err: pgx.ErrNoRows},
		{user: created},
	}}
	repo := &UserRepository{db: db}

	user, err := repo.CreateOrGet(context.Background(), &domain.User{FirebaseUID: "uid-1", Email: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int32(7), user.ID)
	require.Len(t, db.sql, 2)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(db.sql[1]), "INSERT"))
}

func TestCreateOrGet_DuplicateInsertRaceRereads(t *testing.T) {
	// Two first-time authentications race: this caller's lookup misses, its
	// insert loses to the unique constraint on firebase_uid, and the winner's
	// committed row is re-read instead of surfacing the violation.
	winner := &domain.User{ID: 3, FirebaseUID: "uid-1", Email: "winner@example.com"}
	db := &fakeQuerier{rows: []fakeRow{
		{err: pgx.ErrNoRows},
		{err: &pgconn.PgError{Code: pgUniqueViolation}},
		{user: winner},
	}}
	repo := &UserRepository{db: db}

	user, err := repo.CreateOrGet(context.Background(), &domain.User{FirebaseUID: "uid-1", Email: "loser@example.com"})
	require.NoError(t, err)
	assert.Equal(t, winner.ID, user.ID)
	assert.Equal(t, "winner@example.com", user.Email)
	require.Len(t, db.sql, 3)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(db.sql[2]), "SELECT"))
}

func TestCreateOrGet_NonConstraintErrorSurfaces(t *testing.T) {
	storeErr := &pgconn.PgError{Code: "53300"} // too_many_connections
	db := &fakeQuerier{rows: []fakeRow{
		{err: pgx.ErrNoRows},
		{err: storeErr},
	}}
	repo := &UserRepository{db: db}

	_, err := repo.CreateOrGet(context.Background(), &domain.User{FirebaseUID: "uid-1"})
	assert.ErrorIs(t, err, storeErr)
	assert.Len(t, db.sql, 2, "only a unique violation triggers the re-read")
}
