package guildconfig

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"
)

// Guild holds a server's registration: the setup channel the bot manages and
// the member who registered it (the per-server bot admin).
type Guild struct {
	ChannelID string
	AdminID   string
}

// Registry stores per-guild registrations in SQLite and keeps them cached in
// memory, so lookups on the hot message path never touch the database.
// Reload re-reads the table explicitly.
type Registry struct {
	db     *sql.DB
	mu     sync.RWMutex
	guilds map[string]Guild
}

// Open opens (or creates) the registry database at the given path, applies
// PRAGMAs, runs migrations, and loads all registrations into memory.
func Open(ctx context.Context, path string) (*Registry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Single-writer engine; keep the pool at one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	r := &Registry{db: db, guilds: make(map[string]Guild)}
	if err := r.Reload(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initial load: %w", err)
	}
	return r, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *Registry) Close() error {
	return r.db.Close()
}

// Register records the guild's setup channel and admin, replacing any
// previous registration, and updates the in-memory cache.
func (r *Registry) Register(ctx context.Context, guildID, channelID, adminID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO guilds (guild_id, channel_id, admin_id)
		VALUES (?, ?, ?)
		ON CONFLICT(guild_id) DO UPDATE SET
			channel_id = excluded.channel_id,
			admin_id   = excluded.admin_id`,
		guildID, channelID, adminID,
	)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.guilds[guildID] = Guild{ChannelID: channelID, AdminID: adminID}
	r.mu.Unlock()
	return nil
}

// Lookup returns the guild's registration from the in-memory cache.
func (r *Registry) Lookup(guildID string) (Guild, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.guilds[guildID]
	return g, ok
}

// Reload replaces the in-memory cache with the current table contents.
func (r *Registry) Reload(ctx context.Context) error {
	rows, err := r.db.QueryContext(ctx, `SELECT guild_id, channel_id, admin_id FROM guilds`)
	if err != nil {
		return err
	}
	defer rows.Close()

	guilds := make(map[string]Guild)
	for rows.Next() {
		var guildID string
		var g Guild
		if err := rows.Scan(&guildID, &g.ChannelID, &g.AdminID); err != nil {
			return err
		}
		guilds[guildID] = g
	}
	if err := rows.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	r.guilds = guilds
	r.mu.Unlock()
	return nil
}
