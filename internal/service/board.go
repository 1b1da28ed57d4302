package service

import (
	"context"
	"strings"
	"time"

	"branches-api/internal/model"
)

// BoardStore persists boards and their columns. CreateColumn assigns the next
// position (max existing + 1) atomically with the insert; DeleteBoard removes
// the board's columns with it.
type BoardStore interface {
	ListBoards(ctx context.Context) ([]model.Board, error)
	CreateBoard(ctx context.Context, board model.Board) (model.Board, error)
	DeleteBoard(ctx context.Context, boardID int64) error
	ListColumns(ctx context.Context, boardID int64) ([]model.Column, error)
	CreateColumn(ctx context.Context, boardID int64, name string) (model.Column, error)
	RenameColumn(ctx context.Context, boardID int64, columnID int64, name string) (model.Column, error)
	DeleteColumn(ctx context.Context, boardID int64, columnID int64) error
}

type BoardService struct {
	store BoardStore
}

func NewBoardService(store BoardStore) *BoardService {
	return &BoardService{store: store}
}

func (s *BoardService) ListBoards(ctx context.Context) ([]model.Board, error) {
	return s.store.ListBoards(ctx)
}

func (s *BoardService) CreateBoard(ctx context.Context, name string, owner model.Identity) (model.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Board{}, model.ErrInvalidInput
	}

	return s.store.CreateBoard(ctx, model.Board{
		Name:       name,
		OwnerEmail: owner.Email,
		CreatedAt:  time.Now().UTC(),
	})
}

func (s *BoardService) DeleteBoard(ctx context.Context, boardID int64) error {
	return s.store.DeleteBoard(ctx, boardID)
}

func (s *BoardService) ListColumns(ctx context.Context, boardID int64) ([]model.Column, error) {
	return s.store.ListColumns(ctx, boardID)
}

func (s *BoardService) AddColumn(ctx context.Context, boardID int64, name string) (model.Column, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Column{}, model.ErrInvalidInput
	}

	return s.store.CreateColumn(ctx, boardID, name)
}

func (s *BoardService) RenameColumn(ctx context.Context, boardID int64, columnID int64, name string) (model.Column, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Column{}, model.ErrInvalidInput
	}

	return s.store.RenameColumn(ctx, boardID, columnID, name)
}

func (s *BoardService) RemoveColumn(ctx context.Context, boardID int64, columnID int64) error {
	return s.store.DeleteColumn(ctx, boardID, columnID)
}
