package category

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

func (repository *PostgresRepository) List(context context.Context, search string, limit, offset int) ([]*Category, int, error) {
	query := `SELECT id, name, slug, createdat FROM catalog.category`
	countQuery := `SELECT count(*) FROM catalog.category`

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
		return nil, 0, dberr.Wrap(err, "count_categories")
	}

	query += ` ORDER BY name ASC LIMIT $` + itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	return categories, total, nil
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Category, error) {
	query := `SELECT id, name, slug, createdat FROM catalog.category WHERE slug = $1`

	c := &Category{}
	err := repository.db.QueryRow(context, query, slug).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)

	return c, dberr.Wrap(err, "find_category_by_slug")
}

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	query := `
		INSERT INTO catalog.category (name, slug, createdat)
		VALUES ($1, $2, NOW())
		RETURNING id, createdat
	`

	err := repository.db.QueryRow(context, query, category.Name, category.Slug).Scan(&category.ID, &category.CreatedAt)
	return dberr.Wrap(err, "create_category")
}

func (repository *PostgresRepository) DeleteBySlug(context context.Context, slug string) error {
	cmd, err := repository.db.Exec(context, `DELETE FROM catalog.category WHERE slug = $1`, slug)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func itos(i int) string {
	return strconv.Itoa(i)
}
