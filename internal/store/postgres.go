package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type gameRow struct {
	ID         string `gorm:"primaryKey"`
	Session    string `gorm:"index"`
	Rounds     int
	FinishedAt time.Time      `gorm:"index"`
	Placements []placementRow `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
}

func (gameRow) TableName() string { return "games" }

type placementRow struct {
	ID     uint   `gorm:"primaryKey"`
	GameID string `gorm:"index"`
	Name   string
	Rank   int `gorm:"column:place"`
	Health int
}

func (placementRow) TableName() string { return "game_placements" }

// PostgresResults keeps finished games in Postgres through gorm.
type PostgresResults struct {
	db *gorm.DB
}

// OpenPostgres connects with the pgx driver, checks the connection and
// migrates the results tables.
func OpenPostgres(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresResults, error) {
	connCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	sqlDB := stdlib.OpenDB(*connCfg)
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: NewGormLogger(logger),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	if err := db.WithContext(ctx).AutoMigrate(&gameRow{}, &placementRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &PostgresResults{db: db}, nil
}

func (p *PostgresResults) Record(ctx context.Context, r GameResult) error {
	row := toRow(r)
	if err := p.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("record game %s: %w", row.ID, err)
	}
	return nil
}

func (p *PostgresResults) Recent(ctx context.Context, limit int) ([]GameResult, error) {
	if limit <= 0 {
		return nil, ErrBadLimit
	}
	var rows []gameRow
	err := p.db.WithContext(ctx).
		Preload("Placements", func(db *gorm.DB) *gorm.DB { return db.Order("place asc") }).
		Order("finished_at desc").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("recent games: %w", err)
	}
	out := make([]GameResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out, nil
}

func (p *PostgresResults) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toRow(r GameResult) gameRow {
	row := gameRow{
		ID:         r.ID,
		Session:    r.Session,
		Rounds:     r.Rounds,
		FinishedAt: r.FinishedAt,
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.FinishedAt.IsZero() {
		row.FinishedAt = time.Now().UTC()
	}
	for _, pl := range r.Placements {
		row.Placements = append(row.Placements, placementRow{
			GameID: row.ID,
			Name:   pl.Name,
			Rank:   pl.Rank,
			Health: pl.Health,
		})
	}
	return row
}

func fromRow(row gameRow) GameResult {
	r := GameResult{
		ID:         row.ID,
		Session:    row.Session,
		Rounds:     row.Rounds,
		FinishedAt: row.FinishedAt,
	}
	for _, pl := range row.Placements {
		r.Placements = append(r.Placements, Placement{Name: pl.Name, Rank: pl.Rank, Health: pl.Health})
	}
	return r
}
