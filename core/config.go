package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	AdminConfig struct {
		Username string
		Password string
		Name     string
	}

	SessionConfig struct {
		Store string // file | redis | memory
		Key   string
		Dir   string
		TTL   time.Duration
	}

	RedisConfig struct {
		Addr     string
		Password string
		DB       int
	}

	ServerConfig struct {
		Host               string
		Address            string
		DebugHost          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
	}

	Config struct {
		Env              string
		Build            string
		AppName          string
		Debug            bool
		TestMode         bool
		SecretKey        string
		RollbarToken     string
		SendgridApiKey   string
		DefaultFromEmail mail.Address
		NotifyStudents   bool
		Seed             bool

		Admin   AdminConfig
		Session SessionConfig
		Redis   RedisConfig
		Server  ServerConfig
	}
)

// NewConfig reads the configuration from defaults, `config/.env.<env>` (if any) and the environment.
// Environment variables are prefixed with the current env, e.g. DEV_ADMIN_PASSWORD.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("build", "dev")
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("appName", "StudentHub")
	conf.SetDefault("secretKey", "poq5-wer)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("sendgridApiKey", "")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("notifyStudents", false)
	conf.SetDefault("seed", true)
	conf.SetDefault("admin.username", "admin")
	conf.SetDefault("admin.password", "admin123")
	conf.SetDefault("admin.name", "Administrator")
	conf.SetDefault("session.store", "file")
	conf.SetDefault("session.key", "currentUser")
	conf.SetDefault("session.dir", ".studenthub")
	conf.SetDefault("session.ttl", time.Duration(0))
	conf.SetDefault("redis.addr", "localhost:6379")
	conf.SetDefault("redis.password", "")
	conf.SetDefault("redis.db", 0)
	conf.SetDefault("server.host", "localhost")
	conf.SetDefault("server.address", ":8000")
	conf.SetDefault("server.debugHost", ":4000")
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	fromEmail, err := mail.ParseAddress(conf.GetString("defaultFromEmail"))
	if err != nil {
		fromEmail = &mail.Address{Address: "noreply@localhost"}
	}
	appName := conf.GetString("appName")
	fromEmail.Name = appName

	return &Config{
		Env:              env,
		Build:            conf.GetString("build"),
		AppName:          appName,
		Debug:            conf.GetBool("debug"),
		TestMode:         conf.GetBool("testMode"),
		SecretKey:        conf.GetString("secretKey"),
		RollbarToken:     conf.GetString("rollbarToken"),
		SendgridApiKey:   conf.GetString("sendgridApiKey"),
		DefaultFromEmail: *fromEmail,
		NotifyStudents:   conf.GetBool("notifyStudents"),
		Seed:             conf.GetBool("seed"),
		Admin: AdminConfig{
			Username: conf.GetString("admin.username"),
			Password: conf.GetString("admin.password"),
			Name:     conf.GetString("admin.name"),
		},
		Session: SessionConfig{
			Store: strings.ToLower(conf.GetString("session.store")),
			Key:   conf.GetString("session.key"),
			Dir:   conf.GetString("session.dir"),
			TTL:   conf.GetDuration("session.ttl"),
		},
		Redis: RedisConfig{
			Addr:     conf.GetString("redis.addr"),
			Password: conf.GetString("redis.password"),
			DB:       conf.GetInt("redis.db"),
		},
		Server: ServerConfig{
			Host:               conf.GetString("server.host"),
			Address:            conf.GetString("server.address"),
			DebugHost:          conf.GetString("server.debugHost"),
			ShutdownTimeout:    conf.GetDuration("server.shutdownTimeout"),
			JWTExpirationDelta: conf.GetDuration("server.jwtExpirationDelta"),
		},
	}
}
