package dbcmd

import (
	"github.com/spf13/cobra"

	"github.com/faciam-dev/formfields/internal/config"
	"github.com/faciam-dev/formfields/internal/users"
)

// DBFlags defines the flags shared by commands that touch the users store.
type DBFlags struct {
	Driver      string
	DSN         string
	Database    string
	TablePrefix string
	RedisURL    string
}

// AddFlags attaches the DB flags to the command.
func (f *DBFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.DSN, "db", config.GetEnv(config.EnvUsersDSN, ""), "users database DSN")
	cmd.Flags().StringVar(&f.Driver, "driver", "", "database driver (detected from the DSN when empty)")
	cmd.Flags().StringVar(&f.Database, "database", "", "MongoDB database name")
	cmd.Flags().StringVar(&f.TablePrefix, "table-prefix", config.GetEnv(config.EnvTablePrefix, config.DefaultTablePrefix), "table name prefix")
	cmd.Flags().StringVar(&f.RedisURL, "redis-url", config.GetEnv(config.EnvRedisURL, ""), "Redis URL of the lookup cache")
}

// Settings returns the users store settings described by the flags.
func (f *DBFlags) Settings() users.Settings {
	return users.Settings{DSN: f.DSN, Driver: f.Driver, Database: f.Database, TablePrefix: f.TablePrefix}
}
