package config

import "errors"

var (
	ErrEnvFileLoad = errors.New("failed to load env file")
	ErrServerLoad  = errors.New("failed to load server config")
)
