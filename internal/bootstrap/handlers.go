package bootstrap

import (
	"github.com/SunilThagyal/fbase-api/internal/handlers"
	"github.com/SunilThagyal/fbase-api/internal/services"
)

// handlerSet holds all HTTP handlers
type handlerSet struct {
	Auth *handlers.AuthHandler
}

// initializeHandlers creates all HTTP handlers
func initializeHandlers(accounts *services.AccountService) handlerSet {
	return handlerSet{
		Auth: handlers.NewAuthHandler(accounts),
	}
}
