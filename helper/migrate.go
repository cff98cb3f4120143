package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/lucasaveiro/service-scheduler/config"
	"github.com/lucasaveiro/service-scheduler/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

type Action string

const (
	ActionUp      Action = "up"
	ActionDown    Action = "down"
	ActionStepUp  Action = "step-up"
	ActionDrop    Action = "drop"
	ActionVersion Action = "version"
	ActionForce   Action = "force"
)

var ErrUnknownAction = errors.New("unknown migration action")

// ConnectionString builds the write database URL used by golang-migrate.
func ConnectionString(cfg *config.Config) string {
	return postgres.DSN(cfg, cfg.DB.Postgres.Write, url.Values{
		"x-migrations-table": {cfg.DB.Postgres.MigrationTable},
	})
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	mig, err := migrate.New(config.DB.Postgres.MigrationPath, ConnectionString(config))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Runner applies action to the schema. ActionForce needs the target version in args.
func Runner(config *config.Config, action Action, args ...string) error {
	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	switch action {
	case ActionUp:
		return logged(ignoreNoChange(mig.Up()), "Database migrations completed successfully")
	case ActionDown:
		return logged(ignoreNoChange(mig.Steps(-1)), "Database migration rolled back successfully")
	case ActionStepUp:
		return logged(ignoreNoChange(mig.Steps(1)), "Database migration step completed successfully")
	case ActionDrop:
		return logged(ignoreNoChange(mig.Down()), "Database migrations rolled back successfully")
	case ActionVersion:
		version, dirty, err := mig.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("error reading migration version: %w", err)
		}

		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Database migration version")

		return nil
	case ActionForce:
		if len(args) == 0 {
			return fmt.Errorf("%w: force requires a version", ErrUnknownAction)
		}

		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid migration version %q: %w", args[0], err)
		}

		return logged(mig.Force(version), "Database migration version forced")
	}

	return fmt.Errorf("%w: %s", ErrUnknownAction, action)
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}

	return err
}

func logged(err error, message string) error {
	if err != nil {
		return fmt.Errorf("error running migrations: %w", err)
	}

	log.Info().Msg(message)

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}
