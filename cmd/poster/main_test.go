package main

import (
	"context"
	"path/filepath"
	"testing"

	"faal-poster/internal/adapters/journal"
	"faal-poster/internal/config"
	"faal-poster/internal/domain"
)

func TestRootCmd_HasServeAndConfigFlag(t *testing.T) {
	root := newRootCmd()

	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("root command should define --config")
	}
	found := false
	for _, c := range root.Commands() {
		if c.Name() == "serve" {
			found = true
		}
	}
	if !found {
		t.Error("root command should have a serve subcommand")
	}
}

func TestOpenJournal_DefaultsToNop(t *testing.T) {
	j, err := openJournal(config.JournalConfig{})
	if err != nil {
		t.Fatalf("openJournal() error = %v", err)
	}
	if _, ok := j.(journal.Nop); !ok {
		t.Errorf("openJournal() = %T, want journal.Nop", j)
	}
}

func TestOpenJournal_JSONFileWhenPathSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deliveries.json")

	j, err := openJournal(config.JournalConfig{Path: path})
	if err != nil {
		t.Fatalf("openJournal() error = %v", err)
	}
	defer j.Close()

	if _, ok := j.(*journal.JSONFile); !ok {
		t.Fatalf("openJournal() = %T, want *journal.JSONFile", j)
	}

	ctx := context.Background()
	if err := j.Record(ctx, domain.NewDelivery("1402/07/15", "caption", 200, nil)); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	got, err := j.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("Recent(): got %d deliveries, want 1", len(got))
	}
}

func TestBuild_FailsWithoutCredentials(t *testing.T) {
	t.Setenv("bot_token", "")
	t.Setenv("chat_id", "")
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := build("")

	if err == nil {
		t.Fatal("build() should fail without credentials")
	}
}
