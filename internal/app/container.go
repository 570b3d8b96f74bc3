package app

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/you/accountsvc/domain"
	"github.com/you/accountsvc/internal/config"
	"github.com/you/accountsvc/internal/infrastructure/auth"
	"github.com/you/accountsvc/internal/infrastructure/database"
	"github.com/you/accountsvc/internal/infrastructure/notifications"
	"github.com/you/accountsvc/internal/infrastructure/repositories"
	"github.com/you/accountsvc/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Casbin      *auth.CasbinService
	Dispatcher  *notifications.Dispatcher

	// Repositories
	UserRepo   domain.UserRepository
	CodeRepo   domain.ActivationCodeRepository
	DeviceRepo domain.DeviceRepository

	// Services
	PasswordSvc   domain.PasswordService
	TokenSvc      domain.TokenService
	TokenIssuer   domain.TokenIssuer
	ActivationSvc domain.ActivationService
	SessionGuard  domain.SessionGuard
	AccountSvc    domain.AccountService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	db, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	c.DB = db

	cas, err := auth.NewCasbinService(db, cfg.CasbinModelPath)
	if err != nil {
		return nil, err
	}
	c.Casbin = cas

	c.RedisClient = database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client

	c.UserRepo = repositories.NewUserRepository(db)
	c.CodeRepo = repositories.NewActivationRepository(db)
	c.DeviceRepo = repositories.NewDeviceRepository(db)

	mailer := notifications.NewSMTPMailer(
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, logger)
	sms := notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom, logger)
	c.Dispatcher = notifications.NewDispatcher(mailer, sms, 128, logger)

	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL)
	c.TokenIssuer = services.NewTokenIssuer(c.UserRepo, c.PasswordSvc, c.TokenSvc)
	c.ActivationSvc = services.NewActivationService(
		c.UserRepo, c.CodeRepo, c.Dispatcher, c.RedisClient,
		services.ActivationConfig{
			CodeLength:   cfg.ActivationCodeLength,
			ResendWindow: cfg.ActivationResendWindow,
		}, logger)
	c.SessionGuard = services.NewSessionGuard(c.DeviceRepo)
	c.AccountSvc = services.NewAccountService(
		c.UserRepo, c.DeviceRepo, c.PasswordSvc, c.TokenIssuer,
		c.ActivationSvc, c.SessionGuard, c.Dispatcher, c.RedisClient,
		services.AccountConfig{
			AccessTTL:       cfg.AccessTTL,
			TempPasswordTTL: cfg.TempPasswordTTL,
		}, logger)

	return c, nil
}

// Close closes all connections and drains the notification queue.
func (c *Container) Close() error {
	if c.Dispatcher != nil {
		c.Dispatcher.Close()
	}

	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
