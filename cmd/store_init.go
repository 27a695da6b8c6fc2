/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// store_init.go handles lazy archive store initialisation.
//
// Separated from root.go to isolate the initialisation logic that loads
// config, resolves the database path, and opens the store.
//
// Design: The store is created once and shared across the command tree.
// sync.Once guarantees exactly one initialisation per process even if
// multiple code paths trigger it. Commands that manage their own store
// lifecycle (mcp) or need no store at all (config, version) are listed
// in noStoreCommands and skip this entirely.

package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jpl-au/chatarc/internal/config"
	"github.com/jpl-au/chatarc/internal/log"
	"github.com/jpl-au/chatarc/internal/store"
)

// noStoreCommands lists commands that bypass automatic store initialisation.
var noStoreCommands = map[string]bool{
	"config":     true,
	"version":    true,
	"mcp":        true,
	"help":       true,
	"completion": true,
}

var (
	archiveStore *store.SQLiteStore
	archiveCfg   *config.Config
	initOnce     sync.Once
	initErr      error
)

// initStore opens the archive database and runs schema migration.
//
// The database path cascades: --db flag > CHATARC_DB env > config value >
// ~/.chatarc/archive.db. Open creates the file and parent directory when
// missing, so first use needs no separate init step.
func initStore() error {
	initOnce.Do(func() {
		archiveCfg = loadConfig()

		path := dbPath()
		st, err := store.Open(path)
		if err != nil {
			initErr = fmt.Errorf("opening database: %w", err)
			return
		}
		if err := st.Init(context.Background()); err != nil {
			st.Close()
			initErr = fmt.Errorf("initialising database: %w", err)
			return
		}
		archiveStore = st

		// Identify the archive in audit log rows
		log.SetArchive(path)
	})
	return initErr
}

// closeStore releases the shared store if it was opened.
func closeStore() {
	if archiveStore != nil {
		if err := archiveStore.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing archive: %v\n", err)
		}
		archiveStore = nil
	}
}

// dbPath resolves the archive database path.
func dbPath() string {
	if p := DB(); p != "" {
		return p
	}
	return loadConfig().DBPath()
}

// loadConfig returns the shared config, falling back to built-in defaults
// when no config file can be read.
func loadConfig() *config.Config {
	if archiveCfg != nil {
		return archiveCfg
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: config unavailable, using defaults: %v\n", err)
		cfg = &config.Config{}
	}
	archiveCfg = cfg
	return cfg
}
