package migration

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/fhuszti/music-catalog-ms-go/internal/logger"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

func MigrateUp(db *sql.DB) error {
	ctx := context.Background()

	src, err := iofs.New(migrationsFS, migrationsDir)
	if err != nil {
		return fmt.Errorf("could not create source driver: %v", err)
	}

	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %v", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to initialize migration: %v", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		// if it's a dirty error, roll back to the previous version and retry
		var dirtyErr migrate.ErrDirty
		if errors.As(err, &dirtyErr) {
			prev, err := previousVersion(migrationsFS, migrationsDir, dirtyErr.Version)
			if err != nil {
				return err
			}
			logger.Warnf(ctx, "database dirty at version %d, forcing back to %d", dirtyErr.Version, prev)
			if ferr := m.Force(int(prev)); ferr != nil {
				return fmt.Errorf("failed to force to version %d: %w", prev, ferr)
			}
			// retry Up() once more
			if err2 := m.Up(); err2 != nil && !errors.Is(err2, migrate.ErrNoChange) {
				return fmt.Errorf("migration up failed after force: %w", err2)
			}
			return nil
		}
		// some other error
		return fmt.Errorf("migration up failed: %w", err)
	}

	return nil
}

// previousVersion returns the migration version preceding dirtyVersion.
// A dirty first migration yields -1, which makes migrate drop the version.
func previousVersion(fsys fs.ReadDirFS, dir string, dirtyVersion int) (int64, error) {
	entries, readErr := fsys.ReadDir(dir)
	if readErr != nil {
		return 0, fmt.Errorf("dirty at %d but failed to read migrations directory: %w", dirtyVersion, readErr)
	}

	// filename format: <version>_<description>.up.sql
	var versions []int64
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		verStr, _, _ := strings.Cut(entry.Name(), "_")
		v, parseErr := strconv.ParseInt(verStr, 10, 64)
		if parseErr != nil {
			continue
		}
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i] < versions[j] })

	for i, v := range versions {
		if v != int64(dirtyVersion) {
			continue
		}
		if i == 0 {
			return int64(database.NilVersion), nil
		}
		return versions[i-1], nil
	}
	return 0, fmt.Errorf("could not determine previous version before %d", dirtyVersion)
}
