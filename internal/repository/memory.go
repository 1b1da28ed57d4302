package repository

import (
	"context"
	"sort"
	"sync"

	"branches-api/internal/model"
)

// MemoryUserStore is the dependency-free credential store used by the memory
// deployment variant and the test suite. Create performs its check-then-insert
// under the write lock, so the unique-email invariant holds under concurrent
// registration.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: map[string]model.User{}}
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[email]
	if !exists {
		return model.User{}, model.ErrUserNotFound
	}
	return user, nil
}

func (s *MemoryUserStore) Create(_ context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Email]; exists {
		return model.ErrEmailTaken
	}
	s.users[user.Email] = user
	return nil
}

func (s *MemoryUserStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; !exists {
		return model.ErrUserNotFound
	}
	delete(s.users, email)
	return nil
}

// MemoryBoardStore keeps boards and columns in maps with serial IDs. It
// mirrors the relational store's semantics: append positions of max+1, no
// renumbering on delete, cascade on board delete.
type MemoryBoardStore struct {
	mu           sync.RWMutex
	boards       map[int64]model.Board
	columns      map[int64]model.Column
	nextBoardID  int64
	nextColumnID int64
}

func NewMemoryBoardStore() *MemoryBoardStore {
	return &MemoryBoardStore{
		boards:  map[int64]model.Board{},
		columns: map[int64]model.Column{},
	}
}

func (s *MemoryBoardStore) ListBoards(_ context.Context) ([]model.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	boards := make([]model.Board, 0, len(s.boards))
	for _, b := range s.boards {
		boards = append(boards, b)
	}
	sort.Slice(boards, func(i, j int) bool { return boards[i].ID < boards[j].ID })
	return boards, nil
}

func (s *MemoryBoardStore) CreateBoard(_ context.Context, b model.Board) (model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextBoardID++
	b.ID = s.nextBoardID
	s.boards[b.ID] = b
	return b, nil
}

func (s *MemoryBoardStore) DeleteBoard(_ context.Context, boardID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.boards[boardID]; !exists {
		return model.ErrBoardNotFound
	}
	delete(s.boards, boardID)

	for id, c := range s.columns {
		if c.BoardID == boardID {
			delete(s.columns, id)
		}
	}
	return nil
}

func (s *MemoryBoardStore) ListColumns(_ context.Context, boardID int64) ([]model.Column, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.boards[boardID]; !exists {
		return nil, model.ErrBoardNotFound
	}

	columns := make([]model.Column, 0)
	for _, c := range s.columns {
		if c.BoardID == boardID {
			columns = append(columns, c)
		}
	}
	sort.Slice(columns, func(i, j int) bool { return columns[i].Position < columns[j].Position })
	return columns, nil
}

func (s *MemoryBoardStore) CreateColumn(_ context.Context, boardID int64, name string) (model.Column, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.boards[boardID]; !exists {
		return model.Column{}, model.ErrBoardNotFound
	}

	maxPosition := 0
	for _, c := range s.columns {
		if c.BoardID == boardID && c.Position > maxPosition {
			maxPosition = c.Position
		}
	}

	s.nextColumnID++
	column := model.Column{
		ID:       s.nextColumnID,
		BoardID:  boardID,
		Name:     name,
		Position: maxPosition + 1,
	}
	s.columns[column.ID] = column
	return column, nil
}

func (s *MemoryBoardStore) RenameColumn(_ context.Context, boardID int64, columnID int64, name string) (model.Column, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	column, exists := s.columns[columnID]
	if !exists || column.BoardID != boardID {
		return model.Column{}, model.ErrColumnNotFound
	}

	column.Name = name
	s.columns[columnID] = column
	return column, nil
}

func (s *MemoryBoardStore) DeleteColumn(_ context.Context, boardID int64, columnID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	column, exists := s.columns[columnID]
	if !exists || column.BoardID != boardID {
		return model.ErrColumnNotFound
	}
	delete(s.columns, columnID)
	return nil
}
