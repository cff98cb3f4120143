package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"time"

	"github.com/lucasaveiro/service-scheduler/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// New opens the read and write pools, exiting when either stays unreachable after the configured retries.
func New(cfg *config.Config) *Connection {
	return &Connection{
		Read:  mustConnect(cfg, "read", cfg.DB.Postgres.Read),
		Write: mustConnect(cfg, "write", cfg.DB.Postgres.Write),
	}
}

// DSN renders node as a postgres URL. extra is appended to the query, e.g. golang-migrate options.
func DSN(cfg *config.Config, node config.PostgresNode, extra url.Values) string {
	query := url.Values{}
	if node.SSLMode != "" {
		query.Set("sslmode", node.SSLMode)
	}

	if node.Timezone != "" {
		query.Set("timezone", node.Timezone)
	}

	for key, values := range extra {
		for _, v := range values {
			query.Add(key, v)
		}
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(node.Username, node.Password),
		Host:     net.JoinHostPort(node.Host, node.Port),
		Path:     "/" + cfg.DB.Postgres.Prefix + node.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func mustConnect(cfg *config.Config, name string, node config.PostgresNode) *sqlx.DB {
	db, err := Connect(cfg, name, node)
	if err != nil {
		log.Fatal().Err(err).Str("name", name).Str("host", node.Host).Msg("Failed to connect to database")
	}

	return db
}

// Connect opens one pool, retrying MaxRetry times with RetryWaitTime seconds between attempts.
func Connect(cfg *config.Config, name string, node config.PostgresNode) (*sqlx.DB, error) {
	settings := cfg.DB.Postgres
	wait := time.Duration(settings.RetryWaitTime) * time.Second
	attempts := max(1, settings.MaxRetry)

	var err error

	for attempt := range attempts {
		var db *sqlx.DB

		db, err = sqlx.Connect(driverName, DSN(cfg, node, nil))
		if err == nil {
			db.SetMaxOpenConns(settings.Pool.MaxOpenConns)
			db.SetMaxIdleConns(settings.Pool.MaxIdleConns)
			db.SetConnMaxLifetime(time.Duration(settings.Pool.ConnMaxLifetimeMin) * time.Minute)

			log.Info().
				Str("name", name).
				Str("host", node.Host).
				Str("port", node.Port).
				Str("dbName", settings.Prefix+node.Name).
				Int("maxOpen", settings.Pool.MaxOpenConns).
				Msg("Connected to database")

			return db, nil
		}

		log.Warn().
			Err(err).
			Str("name", name).
			Str("host", node.Host).
			Int("attempt", attempt+1).
			Int("of", attempts).
			Msg("Failed connecting to database, retrying")

		if attempt < attempts-1 {
			time.Sleep(wait)
		}
	}

	return nil, errors.Wrapf(err, "connect %s database after %d attempts", name, attempts)
}
