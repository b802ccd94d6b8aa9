package container

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-api/config"
	"github.com/oksasatya/go-portfolio-api/internal/application"
	repo "github.com/oksasatya/go-portfolio-api/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-api/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-portfolio-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-portfolio-api/internal/infrastructure/search"
	"github.com/oksasatya/go-portfolio-api/pkg/helpers"
)

// StoragePrefix is the URL path uploaded images are served under.
const StoragePrefix = "/storage/projects"

// Repositories is one consistent set of stores sharing a transactor.
type Repositories struct {
	Users    repo.UserRepository
	Personas repo.PersonaRepository
	Skills   repo.SkillRepository
	Projects repo.ProjectRepository
	Timeline repo.TimelineRepository
	Tx       repo.Transactor
}

// Container holds the process-wide components built in main. Optional
// integrations are nil when not configured.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Repos  Repositories
	JWT    *helpers.JWTManager

	Pool         *pgxpool.Pool
	Redis        *redis.Client
	Storage      helpers.ObjectStorage
	ProjectIndex application.ProjectIndex
	Mail         application.Publisher

	closers []func()
}

// PostgresRepositories wires the stores over one gateway.
func PostgresRepositories(pool *pgxpool.Pool) Repositories {
	db := pginfra.NewGateway(pool)
	return Repositories{
		Users:    pginfra.NewUserRepository(db),
		Personas: pginfra.NewPersonaRepository(db),
		Skills:   pginfra.NewSkillRepository(db),
		Projects: pginfra.NewProjectRepository(db),
		Timeline: pginfra.NewTimelineRepository(db),
		Tx:       db,
	}
}

func MemoryRepositories(s *memory.Store) Repositories {
	return Repositories{
		Users:    s.Users(),
		Personas: s.Personas(),
		Skills:   s.Skills(),
		Projects: s.Projects(),
		Timeline: s.Timeline(),
		Tx:       s,
	}
}

// New connects everything cfg asks for. Required parts (database,
// storage) fail the call; optional integrations only log.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
		JWT:    helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
	}

	switch cfg.DBDriver {
	case "memory":
		logger.Warn("using in-memory store, data is lost on restart")
		c.Repos = MemoryRepositories(memory.NewStore())
	case "postgres", "":
		if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
			MaxConns:    cfg.DBMaxConns,
			MinConns:    cfg.DBMinConns,
			MaxConnLife: cfg.DBMaxConnLife,
		})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		c.Pool = pool
		c.onClose(pool.Close)
		c.Repos = PostgresRepositories(pool)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	if err := c.initStorage(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.initRedis(ctx)
	c.initSearch(ctx)
	c.initMail()
	return c, nil
}

func (c *Container) initStorage(ctx context.Context) error {
	cfg := c.Config
	switch cfg.StorageDriver {
	case "gcs":
		client, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSON)
		if err != nil {
			return fmt.Errorf("gcs client: %w", err)
		}
		c.onClose(func() { _ = client.Close() })
		c.Storage = &helpers.GCSStorage{Client: client, Bucket: cfg.GCSBucket, Prefix: "projects"}
	case "disk", "":
		disk, err := helpers.NewDiskStorage(cfg.StorageDir+"/projects", StoragePrefix)
		if err != nil {
			return fmt.Errorf("storage dir: %w", err)
		}
		c.Storage = disk
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	return nil
}

func (c *Container) initRedis(ctx context.Context) {
	if c.Config.RedisAddr == "" {
		return
	}
	rdb := helpers.NewRedisClient(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err := helpers.PingRedis(ctx, rdb); err != nil {
		c.Logger.WithError(err).Warn("redis unreachable, login rate limit will fail open")
	}
	c.onClose(func() { _ = rdb.Close() })
	c.Redis = rdb
}

func (c *Container) initSearch(ctx context.Context) {
	addrs := c.Config.ESAddrs()
	if len(addrs) == 0 {
		return
	}
	es, err := helpers.NewSearchClient(ctx, helpers.SearchConfig{
		Addrs:    addrs,
		Username: c.Config.ElasticsearchUser,
		Password: c.Config.ElasticsearchPass,
	})
	if err != nil {
		c.Logger.WithError(err).Warn("elasticsearch disabled")
		return
	}
	c.ProjectIndex = search.NewProjectIndex(es, c.Config.ESProjectsIndex)
}

func (c *Container) initMail() {
	if !c.Config.MailSendEnabled || c.Config.RabbitMQURL == "" {
		return
	}
	pub, err := helpers.NewRabbitPublisher(c.Config.RabbitMQURL, c.Config.RabbitMQEmailQueue)
	if err != nil {
		c.Logger.WithError(err).Warn("rabbitmq unreachable, login notifications disabled")
		return
	}
	c.onClose(pub.Close)
	c.Mail = pub
}

func (c *Container) onClose(fn func()) { c.closers = append(c.closers, fn) }

// Close releases clients in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
