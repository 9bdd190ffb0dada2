package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/sink"
	"github.com/Zachkp/portfolio/internal/sink/postgres"
	"github.com/Zachkp/portfolio/internal/sink/sqlite"
	"github.com/Zachkp/portfolio/internal/sink/supabase"
)

// openSink builds the contact backend named by CONTACT_SINK. Missing
// credentials yield a sink that reports a configuration error per
// submission instead of failing startup.
func openSink(ctx context.Context, cfg *config.Config, logger *slog.Logger) (contact.Sink, func(), error) {
	noop := func() {}
	cc := cfg.Contact

	switch cc.Sink {
	case config.SinkPostgres:
		if cc.DatabaseURL == "" {
			logger.Warn("DATABASE_URL not set, contact submissions will fail")
			return sink.Unconfigured{Reason: "DATABASE_URL"}, noop, nil
		}
		db, err := postgres.Open(ctx, cc.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		if cc.Migrate {
			if err := postgres.RunMigrations(db); err != nil {
				db.Close()
				return nil, noop, err
			}
			logger.Info("postgres migrations complete")
		}
		logger.Info("contact sink ready", "driver", cc.Sink)
		return postgres.NewStore(db), closer(db.Close, "postgres", logger), nil

	case config.SinkSQLite:
		db, err := sqlite.Open(cc.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		if err := sqlite.RunMigrations(db); err != nil {
			db.Close()
			return nil, noop, err
		}
		logger.Info("contact sink ready", "driver", cc.Sink, "path", cc.SQLitePath)
		return sqlite.NewStore(db), closer(db.Close, "sqlite", logger), nil

	case config.SinkSupabase:
		client := supabase.New(supabase.Config{
			URL:     cc.SupabaseURL,
			APIKey:  cc.SupabaseKey,
			Table:   cc.Table,
			Timeout: cc.Timeout,
		})
		if !client.Configured() {
			logger.Warn("supabase credentials missing, contact submissions will fail",
				"url_set", cc.SupabaseURL != "",
				"key_set", cc.SupabaseKey != "",
			)
		} else {
			logger.Info("contact sink ready", "driver", cc.Sink, "table", cc.Table)
		}
		return client, noop, nil
	}

	return nil, noop, fmt.Errorf("unknown contact sink %q", cc.Sink)
}

func closer(closeFn func() error, name string, logger *slog.Logger) func() {
	return func() {
		if err := closeFn(); err != nil {
			logger.Error("error closing database", "driver", name, "error", err)
		}
	}
}
