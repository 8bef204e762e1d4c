package store

import (
	"context"
	"errors"
	"time"
)

var ErrBadLimit = errors.New("limit must be positive")

type Placement struct {
	Name   string `json:"name"`
	Rank   int    `json:"rank"`
	Health int    `json:"health"`
}

// GameResult is written once per finished game.
type GameResult struct {
	ID         string      `json:"id"`
	Session    string      `json:"session"`
	Rounds     int         `json:"rounds"`
	FinishedAt time.Time   `json:"finished_at"`
	Placements []Placement `json:"placements"`
}

type Results interface {
	Record(ctx context.Context, r GameResult) error
	// Recent returns the newest results first.
	Recent(ctx context.Context, limit int) ([]GameResult, error)
}
