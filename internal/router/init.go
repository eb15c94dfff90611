package router

import (
	"github.com/oksasatya/notes-api/internal/application"
	"github.com/oksasatya/notes-api/internal/container"
	pginfra "github.com/oksasatya/notes-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/notes-api/internal/interface/http"
	"github.com/oksasatya/notes-api/internal/router/modules"
)

// InitModules wires repositories, services and handlers from the container
// singletons and registers every feature module. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	pool := container.GetPGPool()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(pool)
	noteRepo := pginfra.NewNoteRepository(pool)

	authSvc := application.NewAuthService(
		userRepo,
		container.GetJWT(),
		container.GetRabbitPub(),
		logger,
		cfg.AppName,
		cfg.MailSendEnabled,
	)
	noteSvc := application.NewNoteService(
		noteRepo,
		logger,
		container.GetES(),
		cfg.ESNotesIndex,
	)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), container.GetJWT()))
	r.Add(modules.NewNoteModule(handlers.NewNoteHandler(noteSvc, logger), container.GetJWT()))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
