package notes

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/corkboard/internal/common"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, note *Note) (*Note, error) {

	query :=
		`INSERT INTO notes (id, board_id, body, x, y, kind, author_uid, author_name)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		note.ID, note.BoardID, note.Text, note.X, note.Y, note.Kind,
		note.User.UID, note.User.Name).Scan(&note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return note, nil
}

func (r *PostgresRepository) Edit(ctx context.Context, id string, text string, x, y float64, user UserRef) error {

	query :=
		`UPDATE notes
		 SET body = $2, x = $3, y = $4, author_uid = $5, author_name = $6, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, text, x, y, user.UID, user.Name)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return checkAffected(res)
}

func (r *PostgresRepository) Move(ctx context.Context, id string, x, y float64) error {

	query :=
		`UPDATE notes
		 SET x = $2, y = $3, updated_at = now()
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, x, y)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return checkAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {

	query := `DELETE FROM notes WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return checkAffected(res)
}

func (r *PostgresRepository) ListByBoard(ctx context.Context, boardID string) ([]*Note, error) {

	query :=
		`SELECT id, board_id, body, x, y, kind, author_uid, author_name, created_at, updated_at
		 FROM notes
		 WHERE board_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	result := []*Note{}
	for rows.Next() {
		note := &Note{}
		err := rows.Scan(&note.ID, &note.BoardID, &note.Text, &note.X, &note.Y,
			&note.Kind, &note.User.UID, &note.User.Name, &note.CreatedAt, &note.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %v", err)
		}
		result = append(result, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %v", err)
	}

	return result, nil
}

func checkAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking affected rows: %v", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}
