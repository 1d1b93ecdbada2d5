// Package app wires configuration, stores, services, and routes into a
// single explicitly constructed application container.
package app

import (
	"context"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/taskvault/taskvault/internal/handlers"
	"github.com/taskvault/taskvault/internal/password"
	"github.com/taskvault/taskvault/internal/tasks"
	"github.com/taskvault/taskvault/internal/token"
	"github.com/taskvault/taskvault/internal/users"
)

// App is the main application container. All collaborators are
// constructed here at startup and passed down explicitly; there is no
// ambient global state.
type App struct {
	Config *Config
	Log    *zap.SugaredLogger

	Users  *users.Service
	Tasks  *tasks.Service
	Tokens *token.Service

	handler *handlers.Handler
	client  *mongo.Client
}

// New creates a new App instance: it validates the token configuration,
// connects to MongoDB, and builds the service graph.
func New(ctx context.Context, cfg *Config, log *zap.SugaredLogger) (*App, error) {
	tokens, err := token.New(&token.Config{
		Secret: cfg.JWTSecret,
		TTL:    cfg.TokenTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)

	userStore, err := users.NewMongoStore(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to create user store: %w", err)
	}
	taskStore, err := tasks.NewMongoStore(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to create task store: %w", err)
	}

	hasher := password.NewBcryptHasher(&password.BcryptConfig{Cost: cfg.BcryptCost})

	userSvc := users.NewService(userStore, hasher)
	taskSvc := tasks.NewService(taskStore)

	return &App{
		Config:  cfg,
		Log:     log,
		Users:   userSvc,
		Tasks:   taskSvc,
		Tokens:  tokens,
		handler: handlers.New(userSvc, taskSvc, tokens, log),
		client:  client,
	}, nil
}

// Router returns the HTTP handler serving the full API surface.
func (a *App) Router() http.Handler {
	return handlers.Routes(a.handler, a.Tokens)
}

// Close releases the store connection.
func (a *App) Close(ctx context.Context) error {
	return a.client.Disconnect(ctx)
}
