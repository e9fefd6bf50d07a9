package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"catalog-backend/internal/config"
	authorhandler "catalog-backend/internal/domains/author/handler"
	authorrepo "catalog-backend/internal/domains/author/repository"
	authorservice "catalog-backend/internal/domains/author/service"
	bookhandler "catalog-backend/internal/domains/book/handler"
	bookrepo "catalog-backend/internal/domains/book/repository"
	bookservice "catalog-backend/internal/domains/book/service"
	userhandler "catalog-backend/internal/domains/user/handler"
	userrepo "catalog-backend/internal/domains/user/repository"
	userservice "catalog-backend/internal/domains/user/service"
	rediscache "catalog-backend/internal/infrastructure/cache"
	"catalog-backend/internal/infrastructure/database"
	"catalog-backend/pkg/cache"
	"catalog-backend/pkg/token"
)

// Container wires configuration, infrastructure and domain layers
// together. Handlers are ready to be mounted on the router.
type Container struct {
	Config *config.Config
	DB     *database.Postgres
	Cache  cache.Cache
	Tokens *token.Manager

	AuthorHandler *authorhandler.AuthorHandler
	BookHandler   *bookhandler.BookHandler
	UserHandler   *userhandler.UserHandler

	redis *rediscache.RedisCache
}

func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	c.DB = database.NewPostgres(&cfg.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	if cfg.Redis.Enabled {
		c.redis = rediscache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := c.redis.Ping(ctx); err != nil {
			// The cache is an optimization, not a dependency. Degrade to
			// a no-op cache and keep serving.
			log.Warn().Err(err).Msg("redis unreachable, caching disabled")
			c.redis = nil
			c.Cache = cache.Noop{}
		} else {
			c.Cache = c.redis
		}
	} else {
		c.Cache = cache.Noop{}
	}

	tokens, err := token.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)
	if err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("token manager: %w", err)
	}
	c.Tokens = tokens

	authorRepository := authorrepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	bookRepository := bookrepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	userRepository := userrepo.NewPostgresRepository(c.DB.Pool)

	c.AuthorHandler = authorhandler.NewAuthorHandler(authorservice.NewAuthorService(authorRepository))
	c.BookHandler = bookhandler.NewBookHandler(bookservice.NewBookService(bookRepository))
	c.UserHandler = userhandler.NewUserHandler(userservice.NewUserService(userRepository, tokens))

	return c, nil
}

// Cleanup releases infrastructure resources in reverse order.
func (c *Container) Cleanup() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Error().Err(err).Msg("closing redis")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
