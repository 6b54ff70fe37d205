// Package modkit carries the deps and build options API modules share
package modkit

import (
	"minishop/internal/modkit/module"
	"minishop/internal/modkit/repokit"
	"minishop/internal/platform/config"
	"minishop/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Module is the contract the API mounts
type Module = module.Module

// Deps are the process wide collaborators handed to every module
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner

	// Redis is optional, the rate limiter shares counters through it
	Redis redis.UniversalClient
}
