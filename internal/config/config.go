package config

import (
	"context"
	"database/sql"
	"fmt"

	ormdriver "github.com/faciam-dev/goquent/orm/driver"
	"github.com/faciam-dev/goquent/orm/query"
)

// DefaultTablePrefix is prepended to every table owned by formfields.
const DefaultTablePrefix = "ff_"

// Config holds global configuration values.
type Config struct {
	TablePrefix string `env:"FF_TABLE_PREFIX,default=ff_"`
}

// T prefixes the given table name with the configured prefix.
func (c *Config) T(name string) string {
	if c.TablePrefix == "" {
		return DefaultTablePrefix + name
	}
	return c.TablePrefix + name
}

// CheckUsersTable verifies that the users table exists in the connected
// database. It returns an error if it cannot be found.
func CheckUsersTable(ctx context.Context, db *sql.DB, dialect ormdriver.Dialect, prefix string) error {
	cfg := Config{TablePrefix: prefix}
	q := query.New(db, "information_schema.tables", dialect).
		SelectRaw("COUNT(*) AS cnt").
		WhereRaw("table_name = :t", map[string]any{"t": cfg.T("users")}).
		WithContext(ctx)

	var res struct{ Cnt int }
	if err := q.First(&res); err != nil {
		return err
	}
	if res.Cnt == 0 {
		return fmt.Errorf("table %q not found; run `formctl user migrate` or set FF_TABLE_PREFIX correctly", cfg.T("users"))
	}
	return nil
}

// DialectFromDriver returns the goquent dialect corresponding to a driver.
func DialectFromDriver(d string) (ormdriver.Dialect, bool) {
	switch d {
	case "postgres":
		return ormdriver.PostgresDialect{}, true
	case "mysql":
		return ormdriver.MySQLDialect{}, true
	default:
		return nil, false
	}
}
