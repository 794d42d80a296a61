package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &DB{Pool: pool}, nil
}

func (db *DB) Close() {
	db.Pool.Close()
}

// Migrate creates the schema if it doesn't exist.
func (db *DB) Migrate(ctx context.Context) error {
	sql := `
	CREATE TABLE IF NOT EXISTS subscriptions (
		id          BIGSERIAL PRIMARY KEY,
		chat_id     BIGINT NOT NULL,
		region      TEXT NOT NULL,
		group_id    TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (chat_id, region, group_id)
	);

	CREATE INDEX IF NOT EXISTS idx_subscriptions_chat_id ON subscriptions(chat_id);
	CREATE INDEX IF NOT EXISTS idx_subscriptions_region  ON subscriptions(region);
	`
	_, err := db.Pool.Exec(ctx, sql)
	return err
}

// Subscription links a Telegram chat to one outage group of a region.
type Subscription struct {
	ID        int64     `json:"id"`
	ChatID    int64     `json:"chat_id"`
	Region    string    `json:"region"`
	GroupID   string    `json:"group_id"`
	CreatedAt time.Time `json:"created_at"`
}

// UpsertSubscription creates a subscription or returns the existing one.
func (db *DB) UpsertSubscription(ctx context.Context, chatID int64, region, group string) (*Subscription, error) {
	var s Subscription
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO subscriptions (chat_id, region, group_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (chat_id, region, group_id) DO UPDATE SET chat_id = $1
		RETURNING id, chat_id, region, group_id, created_at
	`, chatID, region, group).Scan(&s.ID, &s.ChatID, &s.Region, &s.GroupID, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSubscription removes one subscription. The chat ID scopes the
// delete so a chat can only remove its own rows.
func (db *DB) DeleteSubscription(ctx context.Context, id, chatID int64) error {
	_, err := db.Pool.Exec(ctx, `
		DELETE FROM subscriptions WHERE id = $1 AND chat_id = $2
	`, id, chatID)
	return err
}

// GetSubscriptionsByChat returns all subscriptions of one chat.
func (db *DB) GetSubscriptionsByChat(ctx context.Context, chatID int64) ([]*Subscription, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, chat_id, region, group_id, created_at
		FROM subscriptions
		WHERE chat_id = $1
		ORDER BY region, group_id
	`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*Subscription
	for rows.Next() {
		var s Subscription
		if err := rows.Scan(&s.ID, &s.ChatID, &s.Region, &s.GroupID, &s.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, &s)
	}
	return subs, rows.Err()
}

// GetSubscribersByRegion returns every subscription for a region, for
// fan-out after a schedule update.
func (db *DB) GetSubscribersByRegion(ctx context.Context, region string) ([]*Subscription, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, chat_id, region, group_id, created_at
		FROM subscriptions
		WHERE region = $1
		ORDER BY chat_id, group_id
	`, region)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*Subscription
	for rows.Next() {
		var s Subscription
		if err := rows.Scan(&s.ID, &s.ChatID, &s.Region, &s.GroupID, &s.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, &s)
	}
	return subs, rows.Err()
}
