package config

import "errors"

var (
	ErrLaunchConfigMissing = errors.New("launch config missing")
	ErrLaunchConfigInvalid = errors.New("launch config invalid")
	ErrOAuthConfigMissing  = errors.New("oauth config missing")
	ErrOAuthConfigInvalid  = errors.New("oauth config invalid")
)
