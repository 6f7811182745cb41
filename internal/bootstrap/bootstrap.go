// Package bootstrap wires configuration into repositories and services
// shared by the server and sync binaries.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"sojasapi/internal/application"
	"sojasapi/internal/config"
	"sojasapi/internal/infrastructure/database"
	"sojasapi/internal/infrastructure/memory"
	"sojasapi/internal/infrastructure/tribe"
	"sojasapi/internal/ports/output"
)

// Repositories groups the storage ports of one datastore.
type Repositories struct {
	Events       output.EventRepository
	Venues       output.VenueRepository
	Participants output.ParticipantRepository
	Users        output.UserRepository
}

// App holds the wired services.
type App struct {
	Repos        Repositories
	Remote       *tribe.Client
	Sync         *application.SyncService
	Events       *application.EventService
	Participants *application.ParticipantService
	Auth         *application.AuthService
	Users        *application.UserService

	close func()
}

// Close releases the datastore.
func (a *App) Close() {
	if a.close != nil {
		a.close()
	}
}

// New opens the configured datastore, applying migrations for postgres, and
// builds every service on top of it.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	repos, closeFn, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	remote, err := tribe.NewClient(cfg.RemoteBaseURL, cfg.RemoteTimeout, logger.With("component", "tribe"))
	if err != nil {
		closeFn()
		return nil, err
	}

	syncService := application.NewSyncService(remote, repos.Events, repos.Venues, logger.With("component", "sync"))
	return &App{
		Repos:        repos,
		Remote:       remote,
		Sync:         syncService,
		Events:       application.NewEventService(repos.Events, syncService),
		Participants: application.NewParticipantService(repos.Participants, repos.Events, logger),
		Auth:         application.NewAuthService(repos.Users, remote, application.AuthMode(cfg.AuthMode), logger.With("component", "auth")),
		Users:        application.NewUserService(repos.Users),
		close:        closeFn,
	}, nil
}

func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Repositories, func(), error) {
	switch cfg.Datastore {
	case config.DatastoreMemory:
		logger.Warn("using in-memory datastore, data is lost on exit")
		store := memory.NewStore()
		return Repositories{
			Events:       store,
			Venues:       memory.NewVenueStore(),
			Participants: store,
			Users:        memory.NewUserStore(),
		}, func() {}, nil

	case config.DatastorePostgres:
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return Repositories{}, nil, err
		}
		pool, err := database.NewPool(ctx, cfg.DatabaseURL, database.PoolOptions{MaxConns: cfg.DBMaxConns}, logger)
		if err != nil {
			return Repositories{}, nil, err
		}
		return Repositories{
			Events:       database.NewEventRepository(pool),
			Venues:       database.NewVenueRepository(pool),
			Participants: database.NewParticipantRepository(pool),
			Users:        database.NewUserRepository(pool),
		}, pool.Close, nil

	default:
		return Repositories{}, nil, fmt.Errorf("unknown datastore %q", cfg.Datastore)
	}
}
