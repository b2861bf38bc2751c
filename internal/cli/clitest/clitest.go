// Package clitest builds command contexts backed by in-memory storage.
package clitest

import (
	"bytes"
	"testing"
	"time"

	"github.com/julianstephens/soberly/internal/cli"
	"github.com/julianstephens/soberly/internal/clock"
	"github.com/julianstephens/soberly/internal/config"
	"github.com/julianstephens/soberly/internal/storage"
	"github.com/julianstephens/soberly/internal/storage/memory"
)

// Now is the fixed time used by contexts from New.
var Now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// Notifier records notifications instead of showing them.
type Notifier struct {
	Sent []string
}

func (n *Notifier) Notify(title, body string) error {
	n.Sent = append(n.Sent, title+": "+body)
	return nil
}

// Env is a command context plus handles on its fakes.
type Env struct {
	*cli.Context
	Buf      *bytes.Buffer
	Clock    *clock.Fixed
	Notifier *Notifier
}

// New returns a loaded context over store, or a fresh memory store when nil.
// The language is pinned to English.
func New(t *testing.T, store storage.Provider) *Env {
	t.Helper()
	if store == nil {
		store = memory.New()
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	t.Setenv("SOBERLY_LANG", "en")

	buf := &bytes.Buffer{}
	clk := clock.NewFixed(Now)
	n := &Notifier{}
	ctx := cli.NewContext(cli.Options{
		Config:    config.Default(),
		ConfigDir: t.TempDir(),
		Store:     store,
		Backend:   cli.BackendSQLite,
		Clock:     clk,
		Notifier:  n,
		Out:       buf,
	})
	ctx.Tracker.Load()
	return &Env{Context: ctx, Buf: buf, Clock: clk, Notifier: n}
}
