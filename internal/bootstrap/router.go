package bootstrap

import (
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/jobnav-app/jobnav-backend/internal/api/http"
	apimiddleware "github.com/jobnav-app/jobnav-backend/internal/api/http/middleware"
	appshttp "github.com/jobnav-app/jobnav-backend/internal/applications/http"
	authhttp "github.com/jobnav-app/jobnav-backend/internal/auth/http"
	authmiddleware "github.com/jobnav-app/jobnav-backend/internal/auth/middleware"
	authservice "github.com/jobnav-app/jobnav-backend/internal/auth/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	AuthClient  *fbauth.Client
	Sessions    *authservice.SessionService
	Store       appshttp.Store
	Drafter     appshttp.Drafter
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-Id"}
	r.Use(cors.New(corsConfig))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store != nil)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(apimiddleware.RequestIDMiddleware())

	authGroup := api.Group("/auth")
	protectedAuth := api.Group("/auth")
	protectedAuth.Use(authmiddleware.FirebaseAuthMiddleware(dep.AuthClient))
	authhttp.NewHandler(dep.Sessions).Register(authGroup, protectedAuth)

	apps := api.Group("/applications")
	apps.Use(authmiddleware.FirebaseAuthMiddleware(dep.AuthClient))
	appshttp.NewHandler(dep.Store, dep.Drafter).Register(apps)

	return r
}
