package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	env_utils "taskboard/internal/util/env"
	"taskboard/internal/util/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

type EnvVariables struct {
	IsTesting   bool
	DatabaseDsn string            `env:"DATABASE_DSN"`
	EnvMode     env_utils.EnvMode `env:"ENV_MODE"`
	ServerPort  string            `env:"SERVER_PORT" env-default:"8080"`

	// cache (optional; when VALKEY_HOST is empty the service runs without it)
	ValkeyHost     string `env:"VALKEY_HOST"`
	ValkeyPort     string `env:"VALKEY_PORT"`
	ValkeyUsername string `env:"VALKEY_USERNAME"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"`
	ValkeyIsSsl    bool   `env:"VALKEY_IS_SSL"`
}

var (
	env  EnvVariables
	once sync.Once
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

func loadEnvVariables() {
	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			env.IsTesting = true
			break
		}
	}

	// Test binaries run against an in-memory database and need no .env
	if env.IsTesting {
		env.EnvMode = env_utils.EnvModeDevelopment
		env.ServerPort = "8080"
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	rootPath := cwd
	for {
		if _, err := os.Stat(filepath.Join(rootPath, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(rootPath)
		if parent == rootPath {
			break
		}

		rootPath = parent
	}

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(rootPath, ".env"),
	}

	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info("Loaded .env", "path", path)
			break
		}
	}

	if err := cleanenv.ReadEnv(&env); err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}

	if env.DatabaseDsn == "" {
		log.Error("DATABASE_DSN is empty")
		os.Exit(1)
	}

	if !env.EnvMode.IsValid() {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}

	if env.ValkeyHost != "" && env.ValkeyPort == "" {
		log.Error("VALKEY_PORT is empty while VALKEY_HOST is set")
		os.Exit(1)
	}

	log.Info("Environment variables loaded successfully!")
}
