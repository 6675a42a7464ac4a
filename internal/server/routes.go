package server

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	// Init swagger doc
	_ "secure-share-backend/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"secure-share-backend/internal/auth"
	"secure-share-backend/internal/controller/share"
	"secure-share-backend/internal/controller/storage"
	"secure-share-backend/internal/middleware"
)

const maxUploadBytes = 100 << 20

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOriginsStr := os.Getenv("ALLOW_ORIGIN")
	if allowOriginsStr == "" {
		allowOriginsStr = "*"
	}
	allowOrigins := strings.Split(allowOriginsStr, ",")

	lAuth := auth.NewLocalAuthHandler(s.Accounts)
	shareCtl := share.NewShareController(s.Registry)
	storageCtl := storage.NewStorageController(s.Storage, s.Registry, storageLimitBytes())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	r.GET("/", s.rootHandler)
	r.GET("/health", s.healthHandler)

	api := r.Group("/api")
	{
		api.GET("/test", s.testHandler)

		authRoute := api.Group("/auth")
		{
			authRoute.POST("signup", lAuth.SignupHandler)
			authRoute.POST("login", lAuth.LoginHandler)
		}

		// Public cross-device sharing routes; register records ownership when
		// a valid token happens to be present.
		api.POST("/register", middleware.OptionalAuth(s.Accounts), shareCtl.RegisterCode)
		api.GET("/files/:code", shareCtl.GetFilesByCode)
		api.GET("/debug/:code", storageCtl.DebugCode)

		needAuth := api.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.Accounts))
			needAuth.POST("/upload", middleware.SizeLimit(maxUploadBytes), storageCtl.Upload)
			needAuth.GET("/storage", storageCtl.GetUsage)

			needAdmin := needAuth.Group("")
			{
				needAdmin.Use(middleware.RequireAdmin())
				needAdmin.DELETE("/storage/clear", storageCtl.ClearStorage)
				needAdmin.DELETE("/admin/users/:email", lAuth.DeleteUserHandler)
			}
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// rootHandler reports the service banner and the interesting entry points.
func (s *MyServer) rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "SecureShare Backend API",
		"status":  "running",
		"endpoints": gin.H{
			"test":  "/api/test",
			"auth":  "/api/auth/login",
			"files": "/api/files/:code",
		},
	})
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *MyServer) testHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Server is running!"})
}
