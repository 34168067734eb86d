package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zerefez/habitcal/internal/cli"
	"github.com/zerefez/habitcal/internal/storage"
	"github.com/zerefez/habitcal/internal/storage/postgres"
	"github.com/zerefez/habitcal/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy habits from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized habitcal storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		ctx.Println("Copy completed successfully!")
	}
	return nil
}

// reset removes an existing SQLite database file. PostgreSQL databases are
// never dropped.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return errors.New("--force is only supported for SQLite storage")
	}

	dbPath := ctx.Store.GetConfigPath()
	if abs, err := filepath.Abs(dbPath); err == nil {
		dbPath = abs
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// copyData copies every habit and its live entries from the source store.
// Entries are appended in (day, seq) order so the newest entry per day still
// wins after new sequence numbers are assigned.
func (c *InitCmd) copyData(ctx *cli.Context) error {
	var source storage.Provider
	if storage.IsPostgresConnString(c.Source) {
		if err := postgres.ValidateConnString(c.Source); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return errors.New("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
		source = postgres.New(c.Source)
	} else {
		source = sqlite.NewStore(c.Source)
	}

	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	habits, err := source.GetAllHabits(true, true)
	if err != nil {
		return fmt.Errorf("failed to get habits from source: %w", err)
	}

	entryCount := 0
	for _, habit := range habits {
		if err := ctx.Store.AddHabit(habit); err != nil {
			return fmt.Errorf("failed to add habit %s: %w", habit.ID, err)
		}

		entries, err := source.GetAllHabitEntries(habit.ID)
		if err != nil {
			return fmt.Errorf("failed to get entries for habit %s: %w", habit.ID, err)
		}
		for _, entry := range entries {
			if _, err := ctx.Store.AddHabitEntry(entry); err != nil {
				return fmt.Errorf("failed to add habit entry %s: %w", entry.ID, err)
			}
		}
		entryCount += len(entries)
	}

	ctx.Printf("  Copied %d habits\n", len(habits))
	ctx.Printf("  Copied %d habit entries\n", entryCount)
	return nil
}
