// Copyright (c) 2026 OpusDB. All rights reserved.
// Author: minh.ngyn.dev@gmail.com

package title

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minhngyn/opusdb/internal/catalog/category"
	"github.com/minhngyn/opusdb/internal/catalog/genre"
	"github.com/minhngyn/opusdb/internal/platform/dberr"
)

// ratingSubquery computes the average review score per title at read time.
// A title with no reviews yields NULL, which surfaces as a null rating.
const ratingSubquery = `(SELECT AVG(r.score)::float8 FROM feedback.review r WHERE r.titleid = t.id)`

const titleSelect = `
	SELECT t.id, t.name, t.year, t.description, t.createdat,
	       c.id, c.name, c.slug,
	       ` + ratingSubquery + ` AS rating
	FROM catalog.title t
	LEFT JOIN catalog.category c ON t.categoryid = c.id
`

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	where, args := buildFilter(filter)

	countQuery := `SELECT count(*) FROM catalog.title t LEFT JOIN catalog.category c ON t.categoryid = c.id` + where

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_titles")
	}

	query := titleSelect + where +
		` ORDER BY t.name ASC, t.id ASC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_titles")
	}
	defer rows.Close()

	titles := make([]*Title, 0)
	titleMap := make(map[int]*Title)

	for rows.Next() {
		t, err := scanTitle(rows.Scan)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_title")
		}
		titles = append(titles, t)
		titleMap[t.ID] = t
	}
	rows.Close()

	if err := repository.attachGenres(context, titleMap); err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int) (*Title, error) {
	row := repository.db.QueryRow(context, titleSelect+` WHERE t.id = $1`, id)

	t, err := scanTitle(row.Scan)
	if err != nil {
		return nil, dberr.Wrap(err, "find_title_by_id")
	}

	if err := repository.attachGenres(context, map[int]*Title{t.ID: t}); err != nil {
		return nil, err
	}

	return t, nil
}

func (repository *PostgresRepository) Create(context context.Context, title *Title) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_title")
	}
	defer tx.Rollback(context)

	query := `
		INSERT INTO catalog.title (name, year, description, categoryid, createdat)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, createdat
	`

	err = tx.QueryRow(context, query,
		title.Name, title.Year, title.Description, categoryID(title),
	).Scan(&title.ID, &title.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_title")
	}

	for _, g := range title.Genres {
		if _, err := tx.Exec(context,
			`INSERT INTO catalog.title_genre (titleid, genreid) VALUES ($1, $2)`,
			title.ID, g.ID,
		); err != nil {
			return dberr.Wrap(err, "link_title_genre")
		}
	}

	return dberr.Wrap(tx.Commit(context), "commit_create_title")
}

func (repository *PostgresRepository) Update(context context.Context, title *Title, replaceGenres bool) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_title")
	}
	defer tx.Rollback(context)

	query := `
		UPDATE catalog.title
		SET name = $2, year = $3, description = $4, categoryid = $5
		WHERE id = $1
	`

	cmd, err := tx.Exec(context, query,
		title.ID, title.Name, title.Year, title.Description, categoryID(title),
	)
	if err != nil {
		return dberr.Wrap(err, "update_title")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	if replaceGenres {
		if _, err := tx.Exec(context, `DELETE FROM catalog.title_genre WHERE titleid = $1`, title.ID); err != nil {
			return dberr.Wrap(err, "unlink_title_genres")
		}
		for _, g := range title.Genres {
			if _, err := tx.Exec(context,
				`INSERT INTO catalog.title_genre (titleid, genreid) VALUES ($1, $2)`,
				title.ID, g.ID,
			); err != nil {
				return dberr.Wrap(err, "link_title_genre")
			}
		}
	}

	return dberr.Wrap(tx.Commit(context), "commit_update_title")
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	cmd, err := repository.db.Exec(context, `DELETE FROM catalog.title WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_title")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ResolveCategory(context context.Context, slug string) (*category.Category, error) {
	c := &category.Category{}
	err := repository.db.QueryRow(context,
		`SELECT id, name, slug FROM catalog.category WHERE slug = $1`, slug,
	).Scan(&c.ID, &c.Name, &c.Slug)

	return c, dberr.Wrap(err, "resolve_category")
}

func (repository *PostgresRepository) ResolveGenres(context context.Context, slugs []string) ([]genre.Genre, error) {
	rows, err := repository.db.Query(context,
		`SELECT id, name, slug FROM catalog.genre WHERE slug = ANY($1) ORDER BY name ASC`, slugs,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "resolve_genres")
	}
	defer rows.Close()

	var genres []genre.Genre
	for rows.Next() {
		g := genre.Genre{}
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
			return nil, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, nil
}

// attachGenres loads genre links for the given titles in a single query.
func (repository *PostgresRepository) attachGenres(context context.Context, titleMap map[int]*Title) error {
	if len(titleMap) == 0 {
		return nil
	}

	ids := make([]int, 0, len(titleMap))
	for id, t := range titleMap {
		ids = append(ids, id)
		t.Genres = make([]genre.Genre, 0)
	}

	rows, err := repository.db.Query(context, `
		SELECT tg.titleid, g.id, g.name, g.slug
		FROM catalog.title_genre tg
		JOIN catalog.genre g ON g.id = tg.genreid
		WHERE tg.titleid = ANY($1)
		ORDER BY g.name ASC
	`, ids)
	if err != nil {
		return dberr.Wrap(err, "list_title_genres")
	}
	defer rows.Close()

	for rows.Next() {
		var titleID int
		g := genre.Genre{}
		if err := rows.Scan(&titleID, &g.ID, &g.Name, &g.Slug); err != nil {
			return dberr.Wrap(err, "scan_title_genre")
		}
		if t, ok := titleMap[titleID]; ok {
			t.Genres = append(t.Genres, g)
		}
	}

	return nil
}

// scanTitle reads one row of titleSelect, handling the nullable category join.
func scanTitle(scan func(dest ...any) error) (*Title, error) {
	t := &Title{}
	var cID *int
	var cName, cSlug *string

	if err := scan(&t.ID, &t.Name, &t.Year, &t.Description, &t.CreatedAt, &cID, &cName, &cSlug, &t.Rating); err != nil {
		return nil, err
	}

	if cID != nil {
		t.Category = &category.Category{ID: *cID, Name: *cName, Slug: *cSlug}
	}

	return t, nil
}

// buildFilter translates a Filter into a WHERE clause with numbered args.
func buildFilter(filter Filter) (string, []any) {
	var clauses []string
	var args []any

	if len(filter.Names) > 0 {
		// Exact membership, not substring search: ?name=Dune must not
		// match "Dune Messiah".
		args = append(args, filter.Names)
		clauses = append(clauses, fmt.Sprintf("t.name = ANY($%d)", len(args)))
	}

	if filter.CategorySlug != "" {
		args = append(args, filter.CategorySlug)
		clauses = append(clauses, fmt.Sprintf("c.slug = $%d", len(args)))
	}

	if len(filter.GenreSlugs) > 0 {
		args = append(args, filter.GenreSlugs)
		clauses = append(clauses, fmt.Sprintf(`t.id IN (
			SELECT tg.titleid FROM catalog.title_genre tg
			JOIN catalog.genre g ON g.id = tg.genreid
			WHERE g.slug = ANY($%d))`, len(args)))
	}

	if filter.Year != nil {
		args = append(args, *filter.Year)
		clauses = append(clauses, fmt.Sprintf("t.year = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}

	where := " WHERE " + clauses[0]
	for _, clause := range clauses[1:] {
		where += " AND " + clause
	}
	return where, args
}

// categoryID returns the FK value for the title's category, or nil.
func categoryID(title *Title) *int {
	if title.Category == nil {
		return nil
	}
	return &title.Category.ID
}
