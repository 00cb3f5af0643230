package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"dino/internal/application/access"
	authApp "dino/internal/application/auth"
	tableApp "dino/internal/application/table"
	userApp "dino/internal/application/user"
	workspaceApp "dino/internal/application/workspace"
	"dino/internal/domain/permission"
	"dino/internal/domain/user"
	"dino/internal/domain/venue"
	"dino/internal/domain/workspace"
	infraauth "dino/internal/infrastructure/auth"
	"dino/internal/infrastructure/cache"
	"dino/internal/infrastructure/config"
	"dino/internal/infrastructure/qr"
	"dino/internal/infrastructure/repository"
	"dino/internal/interfaces/http/handlers"
	"dino/internal/interfaces/http/middleware"
	"dino/internal/shared/logger"
)

// Container wires repositories, application services, handlers, and
// middleware together and owns the gin engine.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Repositories
	userRepo      user.Repository
	roleRepo      permission.RoleRepository
	permRepo      permission.PermissionRepository
	workspaceRepo workspace.Repository
	venueRepo     venue.Repository
	tableRepo     venue.TableRepository

	// Infrastructure services
	jwtSvc *infraauth.JWTService
	hasher user.PasswordHasher
	codec  *qr.Codec

	// Application services
	accessSvc *access.Service
	authSvc   *authApp.Service
	userSvc   *userApp.Service
	tableSvc  *tableApp.Service
	wsSvc     *workspaceApp.Service

	// Handlers
	authHandler  *handlers.AuthHandler
	userHandler  *handlers.UserHandler
	tableHandler *handlers.TableHandler
	wsHandler    *handlers.WorkspaceHandler

	// Middleware
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
}

// NewContainer builds the full dependency graph. Redis is optional: when
// the connection cannot be established the role store runs uncached.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) *Container {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	c.redis = initRedis(cfg, log)
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	return c
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warnw("failed to connect to Redis, role cache disabled", "error", err)
		return nil
	}
	log.Infow("Redis connection established successfully")

	return redisClient
}

func (c *Container) initRepositories() {
	c.userRepo = repository.NewUserRepository(c.db, c.log)
	c.permRepo = repository.NewPermissionRepository(c.db, c.log)
	c.workspaceRepo = repository.NewWorkspaceRepository(c.db, c.log)
	c.venueRepo = repository.NewVenueRepository(c.db, c.log)
	c.tableRepo = repository.NewTableRepository(c.db, c.log)

	roleRepo := repository.NewRoleRepository(c.db, c.log)
	if c.redis != nil {
		roleRepo = cache.NewCachedRoleRepository(roleRepo, c.redis, c.log)
	}
	c.roleRepo = roleRepo
}

func (c *Container) initServices() {
	c.jwtSvc = infraauth.NewJWTService(
		c.cfg.Auth.JWT.Secret,
		c.cfg.Auth.JWT.AccessExpMinutes,
		c.cfg.Auth.JWT.RefreshExpDays,
	)
	c.hasher = infraauth.NewBcryptPasswordHasher(c.cfg.Auth.Password.BcryptCost)
	if qr.Normalized(c.cfg.QR.EncryptionKey) {
		c.log.Warnw("QR encryption key is not 32 bytes and will be normalized",
			"configured_length", len(c.cfg.QR.EncryptionKey))
	}
	c.codec = qr.NewCodec(c.cfg.QR.EncryptionKey)

	c.accessSvc = access.NewService(c.userRepo, c.roleRepo, c.venueRepo, c.workspaceRepo, c.log)
	c.authSvc = authApp.NewService(c.userRepo, c.accessSvc, c.jwtSvc, c.hasher, c.log)
	c.userSvc = userApp.NewService(c.userRepo, c.roleRepo, c.accessSvc, c.hasher, c.log)
	c.tableSvc = tableApp.NewService(c.tableRepo, c.venueRepo, c.codec, c.log)
	c.wsSvc = workspaceApp.NewService(c.workspaceRepo, c.venueRepo, c.userRepo, c.roleRepo, c.hasher, c.log)
}

func (c *Container) initHandlers() {
	c.authHandler = handlers.NewAuthHandler(c.authSvc, c.accessSvc, c.log)
	c.userHandler = handlers.NewUserHandler(c.userSvc, c.authSvc, c.accessSvc, c.log)
	c.tableHandler = handlers.NewTableHandler(c.tableSvc, c.log)
	c.wsHandler = handlers.NewWorkspaceHandler(c.wsSvc, c.log)

	c.authMiddleware = middleware.NewAuthMiddleware(c.authSvc, c.log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.accessSvc, c.log)
}

// Engine returns the gin engine for serving.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown releases container-owned resources.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close Redis client", "error", err)
		}
	}
}
