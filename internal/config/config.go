package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/KasumiMercury/spotify-auth-bridge/internal/config/server"
	"github.com/joho/godotenv"
)

const (
	envFileEnv     = "BRIDGE_ENV_FILE"
	defaultEnvFile = ".env"
)

type Config struct {
	Server *server.Config
}

// LoadEnvFile merges the dotenv file named by BRIDGE_ENV_FILE (default
// ".env") into the process environment without overriding variables that
// are already set. A missing default file is not an error.
func LoadEnvFile() error {
	path := os.Getenv(envFileEnv)
	explicit := path != ""

	if !explicit {
		path = defaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("%w: %s: %v", ErrEnvFileLoad, path, err)
	}

	return nil
}

func Load() (*Config, error) {
	serverCfg, err := server.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServerLoad, err)
	}

	return &Config{Server: serverCfg}, nil
}
