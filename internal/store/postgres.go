package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AlekSi/pointer"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS relay_settings (
    id INT PRIMARY KEY CHECK (id = 1),
    origin_channels BIGINT[] NOT NULL DEFAULT '{}',
    destination_channels BIGINT[] NOT NULL DEFAULT '{}',
    admins TEXT[] NOT NULL DEFAULT '{}',
    paused BOOLEAN
)`

// PostgresStore keeps the settings document as a single row.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("store.NewPostgresStore: cannot connect to database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(60 * time.Minute)

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("store.NewPostgresStore: cannot create schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (ps *PostgresStore) Load() (Settings, error) {
	var row struct {
		OriginChannels      pq.Int64Array  `db:"origin_channels"`
		DestinationChannels pq.Int64Array  `db:"destination_channels"`
		Admins              pq.StringArray `db:"admins"`
		Paused              *bool          `db:"paused"`
	}

	err := ps.db.Get(&row, `
	    SELECT origin_channels, destination_channels, admins, paused
	    FROM relay_settings
	    WHERE id = 1
	`)
	if errors.Is(err, sql.ErrNoRows) {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("PostgresStore.Load: %w", err)
	}

	return Settings{
		OriginChannels:      []int64(row.OriginChannels),
		DestinationChannels: []int64(row.DestinationChannels),
		Admins:              []string(row.Admins),
		Paused:              pointer.GetBool(row.Paused),
	}, nil
}

func (ps *PostgresStore) Save(s Settings) error {
	_, err := ps.db.Exec(`
	    INSERT INTO relay_settings (id, origin_channels, destination_channels, admins, paused)
	    VALUES (1, $1, $2, $3, $4)
	    ON CONFLICT (id) DO UPDATE SET
	        origin_channels = EXCLUDED.origin_channels,
	        destination_channels = EXCLUDED.destination_channels,
	        admins = EXCLUDED.admins,
	        paused = EXCLUDED.paused
	`, pq.Array(s.OriginChannels), pq.Array(s.DestinationChannels), pq.Array(s.Admins), s.Paused)

	if err != nil {
		return fmt.Errorf("PostgresStore.Save: %w", err)
	}

	return nil
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
