package server

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rohit0033/notes-taking-app/internal/database"
	"github.com/rohit0033/notes-taking-app/internal/model"
	"github.com/rohit0033/notes-taking-app/internal/server/middlewares"
	"github.com/rohit0033/notes-taking-app/internal/server/session"
	"github.com/rohit0033/notes-taking-app/internal/server/storage"
	"github.com/rohit0033/notes-taking-app/internal/transcribe"
)

// An IOC is an Inversion Of Control pattern used to init the server package.
type IOC struct {
	Version  string
	Database database.Client
	Files    storage.FileStore
	// Engine builds a recognition engine for one transcription request.
	// Engines hold per-stream state so they are never shared across requests.
	Engine         func() transcribe.Engine
	NoRegistration bool
	// JWT params
	SigningKey                []byte
	AccessTokenExpirationTime time.Duration
}

// EchoEngine instantiates the web server.
func EchoEngine(ctrl IOC) *echo.Echo {
	engine := echo.New()
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.Gzip())

	engine.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${status}] ${method} ${uri} (${bytes_in}) ${latency_human}\n",
	}))
	engine.Binder = middlewares.NewBinder()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler

	engine.Pre(middleware.Rewrite(map[string]string{
		"/": "/version",
	}))

	////////////
	// Router //
	////////////

	sessions := session.NewManager(
		ctrl.Database,
		ctrl.SigningKey,
		ctrl.AccessTokenExpirationTime,
	)

	router := engine.Group("")
	restricted := router.Group("")
	restricted.Use(middlewares.Session(sessions))

	// generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})

	//
	// auth handlers
	//
	auth := &auth{
		db:       ctrl.Database,
		sessions: sessions,
	}
	if !ctrl.NoRegistration {
		router.POST("/auth/signup", auth.Signup)
	}
	router.POST("/auth/login", auth.Login)

	//
	// note handlers
	//
	note := &note{
		db:    ctrl.Database,
		files: ctrl.Files,
	}
	restricted.GET("/notes", note.List)
	restricted.POST("/notes", note.Create)
	restricted.PUT("/notes/:id", note.Update)
	restricted.DELETE("/notes/:id", note.Delete)
	restricted.PATCH("/notes/:id/favorite", note.ToggleFavorite)
	restricted.PUT("/notes/:id/image", note.AttachImage)

	//
	// audio handlers
	//
	audio := &audio{
		db:     ctrl.Database,
		files:  ctrl.Files,
		engine: ctrl.Engine,
	}
	restricted.POST("/audio/record", audio.Record)
	restricted.POST("/audio/transcribe", audio.Transcribe)

	//
	// uploaded attachments, embeddable cross-origin
	//
	if ctrl.Files != nil {
		uploads := router.Group("/uploads", crossOriginResources)
		uploads.Static("/", ctrl.Files.Root())
	}

	return engine
}

// PrintRoutes prints the Echo engine exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}

func crossOriginResources(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Cross-Origin-Resource-Policy", "cross-origin")
		return next(c)
	}
}

func currentUser(c echo.Context) *model.User {
	user, ok := c.Get(middlewares.CurrentUserContextKey).(*model.User)
	if ok {
		return user
	}
	return nil
}
