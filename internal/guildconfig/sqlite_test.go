package guildconfig

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := Open(context.Background(), filepath.Join(t.TempDir(), "guilds.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestRegisterAndLookup(t *testing.T) {
	r := openTestRegistry(t)
	ctx := context.Background()

	if err := r.Register(ctx, "g1", "chan1", "admin1"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	g, ok := r.Lookup("g1")
	if !ok {
		t.Fatal("registered guild not found")
	}
	if g.ChannelID != "chan1" || g.AdminID != "admin1" {
		t.Errorf("want chan1/admin1, got %s/%s", g.ChannelID, g.AdminID)
	}

	if _, ok := r.Lookup("g2"); ok {
		t.Error("unknown guild found")
	}
}

func TestRegisterReplaces(t *testing.T) {
	r := openTestRegistry(t)
	ctx := context.Background()

	if err := r.Register(ctx, "g1", "chan1", "admin1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(ctx, "g1", "chan2", "admin2"); err != nil {
		t.Fatalf("Register (replace): %v", err)
	}

	g, _ := r.Lookup("g1")
	if g.ChannelID != "chan2" || g.AdminID != "admin2" {
		t.Errorf("registration not replaced: got %s/%s", g.ChannelID, g.AdminID)
	}
}

func TestReloadReflectsTable(t *testing.T) {
	r := openTestRegistry(t)
	ctx := context.Background()

	if err := r.Register(ctx, "g1", "chan1", "admin1"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Mutate the table behind the cache's back, then reload.
	if _, err := r.db.ExecContext(ctx, `UPDATE guilds SET channel_id = 'chanX' WHERE guild_id = 'g1'`); err != nil {
		t.Fatalf("raw update: %v", err)
	}
	if g, _ := r.Lookup("g1"); g.ChannelID != "chan1" {
		t.Fatalf("cache should still hold old value, got %s", g.ChannelID)
	}

	if err := r.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if g, _ := r.Lookup("g1"); g.ChannelID != "chanX" {
		t.Errorf("want chanX after reload, got %s", g.ChannelID)
	}
}
