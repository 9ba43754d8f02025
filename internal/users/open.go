package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/faciam-dev/formfields/pkg/formfield"
	"github.com/faciam-dev/formfields/pkg/metrics"
)

const defaultMongoDatabase = "formfields"

// Settings selects and configures the registry backend.
type Settings struct {
	DSN         string
	Driver      string
	TablePrefix string
	// Database is the MongoDB database name.
	Database string
	Seed     []User
}

// DetectDriver returns the driver name based on the DSN scheme.
// Supported schemes: postgres/postgresql, mysql, sqlite/file and
// mongodb/mongodb+srv.
func DetectDriver(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to parse DSN: %w", err)
	}
	switch u.Scheme {
	case "postgres", "postgresql":
		return "postgres", nil
	case "mysql":
		return "mysql", nil
	case "sqlite", "sqlite3", "file":
		return "sqlite3", nil
	case "mongodb", "mongodb+srv":
		return "mongo", nil
	default:
		return "", fmt.Errorf("%w: unknown scheme %q", ErrUnsupportedDriver, u.Scheme)
	}
}

// sqlDSN converts a URL style DSN into what the database/sql driver expects.
func sqlDSN(driver, dsn string) string {
	switch driver {
	case "mysql":
		return strings.TrimPrefix(dsn, "mysql://")
	case "sqlite3":
		for _, p := range []string{"sqlite://", "sqlite3://"} {
			if strings.HasPrefix(dsn, p) {
				return "file:" + strings.TrimPrefix(dsn, p)
			}
		}
	}
	return dsn
}

// OpenSQL opens and pings a relational users database. URL style DSNs
// for mysql and sqlite are converted for the driver.
func OpenSQL(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, sqlDSN(driver, dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Registry is a lookup that also owns its connection.
type Registry struct {
	formfield.UserLookup
	close func(context.Context) error
}

// Close releases the backend connection.
func (r *Registry) Close(ctx context.Context) error {
	if r.close == nil {
		return nil
	}
	return r.close(ctx)
}

// Open returns the registry described by s. Without a DSN the in-memory
// registry seeded with s.Seed is used.
func Open(ctx context.Context, s Settings) (*Registry, error) {
	if s.DSN == "" {
		m, err := SeedMemory(s.Seed...)
		if err != nil {
			return nil, err
		}
		return &Registry{UserLookup: Counted("memory", m)}, nil
	}
	driver := s.Driver
	if driver == "" {
		d, err := DetectDriver(s.DSN)
		if err != nil {
			return nil, err
		}
		driver = d
	}
	switch driver {
	case "mongo":
		dbName := s.Database
		if dbName == "" {
			dbName = defaultMongoDatabase
		}
		repo, err := NewMongoRepo(ctx, s.DSN, dbName, s.TablePrefix)
		if err != nil {
			return nil, err
		}
		return &Registry{UserLookup: Counted(driver, repo), close: repo.Close}, nil
	case "postgres", "mysql", "sqlite3":
		db, err := OpenSQL(driver, s.DSN)
		if err != nil {
			return nil, err
		}
		repo := &SQLRepo{DB: db, Driver: driver, TablePrefix: s.TablePrefix}
		return &Registry{
			UserLookup: Counted(driver, repo),
			close:      func(context.Context) error { return db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, driver)
	}
}

// OpenStore opens the administrable store behind a DSN. The returned
// close func releases its connection.
func OpenStore(ctx context.Context, s Settings) (Store, func(context.Context) error, error) {
	if s.DSN == "" {
		return nil, nil, errors.New("a users DSN is required")
	}
	driver := s.Driver
	if driver == "" {
		d, err := DetectDriver(s.DSN)
		if err != nil {
			return nil, nil, err
		}
		driver = d
	}
	if driver == "mongo" {
		dbName := s.Database
		if dbName == "" {
			dbName = defaultMongoDatabase
		}
		repo, err := NewMongoRepo(ctx, s.DSN, dbName, s.TablePrefix)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	}
	db, err := OpenSQL(driver, s.DSN)
	if err != nil {
		return nil, nil, err
	}
	repo := &SQLRepo{DB: db, Driver: driver, TablePrefix: s.TablePrefix}
	return repo, func(context.Context) error { return db.Close() }, nil
}

// Counted records every lookup of next in the user lookup metric.
func Counted(source string, next formfield.UserLookup) formfield.UserLookup {
	return formfield.LookupFunc(func(ctx context.Context, email string) (bool, error) {
		ok, err := next.ExistsByEmail(ctx, email)
		result := "found"
		switch {
		case err != nil:
			result = "error"
		case !ok:
			result = "missing"
		}
		metrics.UserLookups.WithLabelValues(source, result).Inc()
		return ok, err
	})
}
