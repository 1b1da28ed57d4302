package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"branches-api/internal/model"
)

type BoardRepository struct {
	pool *pgxpool.Pool
}

func NewBoardRepository(pool *pgxpool.Pool) *BoardRepository {
	return &BoardRepository{pool: pool}
}

func (r *BoardRepository) ListBoards(ctx context.Context) ([]model.Board, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, owner_email, created_at FROM boards ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	boards := make([]model.Board, 0)
	for rows.Next() {
		var b model.Board
		if err := rows.Scan(&b.ID, &b.Name, &b.OwnerEmail, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan board: %w", err)
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

func (r *BoardRepository) CreateBoard(ctx context.Context, b model.Board) (model.Board, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO boards (name, owner_email, created_at)
		 VALUES ($1, $2, $3) RETURNING id`,
		b.Name, b.OwnerEmail, b.CreatedAt).Scan(&b.ID)
	if err != nil {
		return model.Board{}, fmt.Errorf("create board: %w", err)
	}
	return b, nil
}

// DeleteBoard removes the board; its columns go with it via the ON DELETE
// CASCADE foreign key.
func (r *BoardRepository) DeleteBoard(ctx context.Context, boardID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM boards WHERE id = $1`, boardID)
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBoardNotFound
	}
	return nil
}

func (r *BoardRepository) ListColumns(ctx context.Context, boardID int64) ([]model.Column, error) {
	if err := r.boardExists(ctx, boardID); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, board_id, name, position
		 FROM board_columns WHERE board_id = $1 ORDER BY position`, boardID)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	defer rows.Close()

	columns := make([]model.Column, 0)
	for rows.Next() {
		var c model.Column
		if err := rows.Scan(&c.ID, &c.BoardID, &c.Name, &c.Position); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		columns = append(columns, c)
	}
	return columns, rows.Err()
}

// CreateColumn appends the column at the end of the board. The position is
// computed inside the INSERT so two concurrent appends cannot read the same
// max under the default isolation level's single-statement snapshot.
func (r *BoardRepository) CreateColumn(ctx context.Context, boardID int64, name string) (model.Column, error) {
	if err := r.boardExists(ctx, boardID); err != nil {
		return model.Column{}, err
	}

	c := model.Column{BoardID: boardID, Name: name}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO board_columns (board_id, name, position)
		 SELECT $1, $2, COALESCE(MAX(position), 0) + 1
		 FROM board_columns WHERE board_id = $1
		 RETURNING id, position`,
		boardID, name).Scan(&c.ID, &c.Position)
	if err != nil {
		return model.Column{}, fmt.Errorf("create column: %w", err)
	}
	return c, nil
}

func (r *BoardRepository) RenameColumn(ctx context.Context, boardID int64, columnID int64, name string) (model.Column, error) {
	c := model.Column{ID: columnID, BoardID: boardID, Name: name}
	err := r.pool.QueryRow(ctx,
		`UPDATE board_columns SET name = $3
		 WHERE id = $1 AND board_id = $2
		 RETURNING position`,
		columnID, boardID, name).Scan(&c.Position)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Column{}, model.ErrColumnNotFound
	}
	if err != nil {
		return model.Column{}, fmt.Errorf("rename column: %w", err)
	}
	return c, nil
}

func (r *BoardRepository) DeleteColumn(ctx context.Context, boardID int64, columnID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM board_columns WHERE id = $1 AND board_id = $2`, columnID, boardID)
	if err != nil {
		return fmt.Errorf("delete column: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrColumnNotFound
	}
	return nil
}

func (r *BoardRepository) boardExists(ctx context.Context, boardID int64) error {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM boards WHERE id = $1)`, boardID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check board exists: %w", err)
	}
	if !exists {
		return model.ErrBoardNotFound
	}
	return nil
}
