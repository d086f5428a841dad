package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	"library-backend/internal/infrastructure/database"
	txdb "library-backend/pkg/database"

	authorHandler "library-backend/internal/domains/author/handler"
	authorRepo "library-backend/internal/domains/author/repository"
	authorService "library-backend/internal/domains/author/service"
	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"
)

const (
	connectTimeout      = 30 * time.Second
	poolMonitorInterval = time.Minute
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the whole dependency graph of the API process.
// Build order: config -> database -> repositories -> services -> handlers.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config    *config.Config
	DB        *database.PostgresDB
	TxManager txdb.TxManager

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	AuthorRepo     authorRepo.RepositoryInterface
	BookRepo       bookRepo.RepositoryInterface
	BookAuthorRepo bookRepo.BookAuthorRepository

	// ========================================
	// SERVICE LAYER
	// ========================================
	AuthorService authorService.ServiceInterface
	BookService   bookService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.Handler

	stopMonitor context.CancelFunc
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer wires every layer on top of cfg.
// It fails when the database cannot be reached.
func NewContainer(cfg *config.Config) (*Container, error) {
	log.Info().Msg("Initializing DI container")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: DATABASE
	// ========================================
	if err := c.initDatabase(); err != nil {
		return nil, err
	}

	// ========================================
	// STEP 2: REPOSITORIES
	// ========================================
	c.initRepositories()

	// ========================================
	// STEP 3: SERVICES
	// ========================================
	c.initServices()

	// ========================================
	// STEP 4: HANDLERS
	// ========================================
	c.initHandlers()

	log.Info().Msg("DI container initialized")
	return c, nil
}

func (c *Container) initDatabase() error {
	db := database.NewPostgresDB(c.Config.Database)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.HealthCheck(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("database health check failed: %w", err)
	}

	if c.Config.Database.AutoMigrate {
		if err := db.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to bootstrap schema: %w", err)
		}
		log.Info().Msg("Database schema ensured")
	}

	monitorCtx, stop := context.WithCancel(context.Background())
	go db.MonitorPoolHealth(monitorCtx, poolMonitorInterval)

	c.DB = db
	c.TxManager = txdb.NewTxManager(db)
	c.stopMonitor = stop
	return nil
}

// Repositories run on the pool, or on the transaction carried by the context
func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.AuthorRepo = authorRepo.NewPostgresRepository(pool)
	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	c.BookAuthorRepo = bookRepo.NewBookAuthorRepository(pool)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.BookAuthorRepo, c.TxManager)
	c.BookService = bookService.NewService(c.BookRepo, c.BookAuthorRepo, c.AuthorRepo, c.TxManager)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewHandler(c.BookService)
}

// Cleanup stops the pool monitor and closes the database pool
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.stopMonitor != nil {
		c.stopMonitor()
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		} else {
			log.Info().Msg("Database connections closed")
		}
	}
}
