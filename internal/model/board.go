package model

import "time"

type Board struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	OwnerEmail string    `json:"-"`
	CreatedAt  time.Time `json:"-"`
}

// Column belongs to exactly one board. Position orders columns within a board
// (1,2,3,...); deletions leave gaps, positions are never renumbered.
type Column struct {
	ID       int64  `json:"id"`
	BoardID  int64  `json:"board_id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}
