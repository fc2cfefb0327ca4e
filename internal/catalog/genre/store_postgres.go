package genre

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhngyn/opusdb/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, search string, limit, offset int) ([]*Genre, int, error) {
	query := `SELECT id, name, slug, createdat FROM catalog.genre`
	countQuery := `SELECT count(*) FROM catalog.genre`

	args := []any{}
	countArgs := []any{}

	if search != "" {
		searchTerm := "%" + search + "%"
		query += ` WHERE name ILIKE $1`
		countQuery += ` WHERE name ILIKE $1`
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_genres")
	}

	query += ` ORDER BY name ASC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	genres := make([]*Genre, 0)
	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, total, nil
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Genre, error) {
	query := `SELECT id, name, slug, createdat FROM catalog.genre WHERE slug = $1`

	g := &Genre{}
	err := repository.db.QueryRow(context, query, slug).Scan(&g.ID, &g.Name, &g.Slug, &g.CreatedAt)

	return g, dberr.Wrap(err, "find_genre_by_slug")
}

func (repository *PostgresRepository) Create(context context.Context, genre *Genre) error {
	query := `
		INSERT INTO catalog.genre (name, slug, createdat)
		VALUES ($1, $2, NOW())
		RETURNING id, createdat
	`

	err := repository.db.QueryRow(context, query, genre.Name, genre.Slug).Scan(&genre.ID, &genre.CreatedAt)
	return dberr.Wrap(err, "create_genre")
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	cmd, err := repository.db.Exec(context, `DELETE FROM catalog.genre WHERE slug = $1`, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_genre")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
