package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/notes-api/internal/container"
	handlers "github.com/oksasatya/notes-api/internal/interface/http"
	"github.com/oksasatya/notes-api/internal/interface/middleware"
	"github.com/oksasatya/notes-api/pkg/helpers"
)

// NoteModule wires the owner-scoped note CRUD routes. Everything here sits
// behind the bearer-token guard; handlers read the verified identity from
// the Gin context and never from the request body.
type NoteModule struct {
	Handler *handlers.NoteHandler
	JWT     *helpers.JWTManager
}

func NewNoteModule(h *handlers.NoteHandler, jwt *helpers.JWTManager) *NoteModule {
	return &NoteModule{Handler: h, JWT: jwt}
}

func (m *NoteModule) Register(rg *gin.RouterGroup) {
	notes := rg.Group("/notes")
	notes.Use(middleware.Auth(m.JWT))
	notes.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserEmail(), nil),
	)
	{
		notes.POST("", m.Handler.Create)
		notes.GET("", m.Handler.List)
		notes.GET("/search", m.Handler.Search)
		notes.PUT("/:id", m.Handler.Update)
		notes.DELETE("/:id", m.Handler.Delete)
	}
}
