package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret    string `yaml:"secret"`
	Issuer    string `yaml:"issuer"`
	AccessTTL string `yaml:"access_ttl"`
}

type ActivationConfig struct {
	CodeLength   int    `yaml:"code_length"`
	ResendWindow string `yaml:"resend_window"`
}

type ResetConfig struct {
	TempPasswordTTL string `yaml:"temp_password_ttl"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App        AppConfig        `yaml:"app"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	JWT        JWTConfig        `yaml:"jwt"`
	Activation ActivationConfig `yaml:"activation"`
	Reset      ResetConfig      `yaml:"reset"`
	SMTP       SMTPConfig       `yaml:"smtp"`
	Twilio     TwilioConfig     `yaml:"twilio"`
	Casbin     CasbinConfig     `yaml:"casbin"`
}

type Config struct {
	Port                   string
	GinMode                string
	DSN                    string
	RedisAddr              string
	RedisPassword          string
	RedisDB                int
	JWTSecret              string
	JWTIssuer              string
	AccessTTL              time.Duration
	ActivationCodeLength   int
	ActivationResendWindow time.Duration
	TempPasswordTTL        time.Duration
	SMTPHost               string
	SMTPPort               int
	SMTPUsername           string
	SMTPPassword           string
	SMTPFrom               string
	TwilioSID              string
	TwilioToken            string
	TwilioFrom             string
	CasbinModelPath        string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	resWnd, err := time.ParseDuration(configFile.Activation.ResendWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid activation resend window: %w", err)
	}

	tmpTTL, err := time.ParseDuration(configFile.Reset.TempPasswordTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid temporary password TTL: %w", err)
	}

	return &Config{
		Port:                   fmt.Sprintf("%d", configFile.App.Port),
		GinMode:                configFile.App.GinMode,
		DSN:                    env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:              env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:          env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:                configFile.Redis.DB,
		JWTSecret:              env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:              configFile.JWT.Issuer,
		AccessTTL:              accTTL,
		ActivationCodeLength:   configFile.Activation.CodeLength,
		ActivationResendWindow: resWnd,
		TempPasswordTTL:        tmpTTL,
		SMTPHost:               env("SMTP_HOST", configFile.SMTP.Host),
		SMTPPort:               configFile.SMTP.Port,
		SMTPUsername:           env("SMTP_USERNAME", configFile.SMTP.Username),
		SMTPPassword:           env("SMTP_PASSWORD", configFile.SMTP.Password),
		SMTPFrom:               configFile.SMTP.From,
		TwilioSID:              env("TWILIO_SID", configFile.Twilio.AccountSID),
		TwilioToken:            env("TWILIO_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:             configFile.Twilio.FromNumber,
		CasbinModelPath:        configFile.Casbin.ModelPath,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
