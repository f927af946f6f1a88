package cmd

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/VGOT23/rbac-project/internal/core/service"
	mongodb "github.com/VGOT23/rbac-project/internal/infrastructure/db/mongo"
	redisdb "github.com/VGOT23/rbac-project/internal/infrastructure/db/redis"
	"github.com/VGOT23/rbac-project/internal/infrastructure/token"
	"github.com/VGOT23/rbac-project/internal/pkg/config"
	"github.com/VGOT23/rbac-project/pkg/logger"
)

// app holds the process-wide collaborators shared by the commands.
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	mongo *mongo.Client
	db    *mongo.Database
	redis *goredis.Client

	users  *mongodb.UserRepository
	posts  *mongodb.PostRepository
	audits *mongodb.AuditRepository
	tokens *token.JWTCodec
	auth   *service.AuthService
}

// bootstrap loads configuration, initialises the logger and connects to the
// backing stores. Call close when done.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "rbac-api",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")

	tokens, err := token.NewJWTCodec(cfg.Auth.JWTSecret)
	if err != nil {
		_ = client.Disconnect(context.Background())
		_ = rdb.Close()
		return nil, fmt.Errorf("token codec: %w", err)
	}

	a := &app{
		cfg:    cfg,
		log:    log,
		mongo:  client,
		db:     db,
		redis:  rdb,
		users:  mongodb.NewUserRepository(db),
		posts:  mongodb.NewPostRepository(db),
		audits: mongodb.NewAuditRepository(db),
		tokens: tokens,
	}
	limiter := redisdb.NewLoginLimiter(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)
	a.auth = service.NewAuthService(a.users, tokens, cfg.Auth.TokenTTL, limiter, log)
	return a, nil
}

func (a *app) close() {
	if err := a.redis.Close(); err != nil {
		a.log.Warn().Err(err).Msg("redis close failed")
	}
	if err := a.mongo.Disconnect(context.Background()); err != nil {
		a.log.Warn().Err(err).Msg("mongo disconnect failed")
	}
}
