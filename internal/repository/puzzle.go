package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Queries struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Queries {
	return &Queries{db: db}
}

// Puzzle is one cached nonogram: the site ID and kind it was fetched
// as, the gob-encoded definition and, once solved, the gob-encoded
// solution grid.
type Puzzle struct {
	PuzzleId  int64
	SiteId    string
	Kind      string
	Data      []byte
	Solution  []byte
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type CreatePuzzleParams struct {
	SiteId   string
	Kind     string
	Data     []byte
	Solution []byte
}

// CreatePuzzle inserts a freshly crawled puzzle. When another request
// cached the same puzzle first, the existing row wins and is returned.
func (q Queries) CreatePuzzle(ctx context.Context, params CreatePuzzleParams) (*Puzzle, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO puzzle (site_id, kind, data, solution)
		VALUES (@site_id, @kind, @data, @solution)
		RETURNING *;`,
		pgx.NamedArgs{
			"site_id":  params.SiteId,
			"kind":     params.Kind,
			"data":     params.Data,
			"solution": params.Solution,
		},
	)
	puzzle, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Puzzle])

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return q.FetchPuzzle(ctx, params.SiteId, params.Kind)
	}
	return puzzle, err
}

func (q Queries) FetchPuzzle(ctx context.Context, siteId, kind string) (*Puzzle, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM puzzle WHERE site_id = $1 AND kind = $2",
		siteId, kind,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Puzzle])
}

type UpdatePuzzleParams struct {
	Data     []byte
	Solution []byte
}

// UpdatePuzzle replaces a cached puzzle's definition and solution,
// used when a caller forces a refetch from the site.
func (q Queries) UpdatePuzzle(
	ctx context.Context, puzzleId int64, params UpdatePuzzleParams,
) (*Puzzle, error) {
	rows, _ := q.db.Query(
		ctx,
		`UPDATE puzzle
		SET data = @data, solution = @solution, updated_at = now()
		WHERE puzzle_id = @puzzle_id
		RETURNING *;`,
		pgx.NamedArgs{
			"puzzle_id": puzzleId,
			"data":      params.Data,
			"solution":  params.Solution,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Puzzle])
}
