package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/config"
	projects_controllers "taskboard/internal/features/projects/controllers"
	system_healthcheck "taskboard/internal/features/system/healthcheck"
	tasks_controllers "taskboard/internal/features/tasks/controllers"
	users_controllers "taskboard/internal/features/users/controllers"
	users_middleware "taskboard/internal/features/users/middleware"
	users_services "taskboard/internal/features/users/services"
	"taskboard/internal/storage"
	env_utils "taskboard/internal/util/env"
	"taskboard/internal/util/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var log = logger.GetLogger()

// @title Taskboard API
// @version 1.0
// @description Multi-tenant task tracking API with project scoped roles
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	env := config.GetEnv()

	if err := storage.RunMigrations(); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	if env.EnvMode == env_utils.EnvModeProduction {
		gin.SetMode(gin.ReleaseMode)
	} else {
		generateSwaggerDocs()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	if env.EnvMode == env_utils.EnvModeDevelopment {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	setupRoutes(router)

	startServerWithGracefulShutdown(router, env.ServerPort)
}

func setupRoutes(router *gin.Engine) {
	publicRoutes := router.Group("")
	users_controllers.GetAuthController().RegisterRoutes(publicRoutes)
	system_healthcheck.GetHealthcheckController().RegisterRoutes(publicRoutes)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	protectedRoutes := router.Group("/api/v1")
	protectedRoutes.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

	projects_controllers.GetProjectController().RegisterRoutes(protectedRoutes)
	projects_controllers.GetMembershipController().RegisterRoutes(protectedRoutes)
	tasks_controllers.GetTaskController().RegisterRoutes(protectedRoutes)
}

func generateSwaggerDocs() {
	cmd := exec.Command("swag", "init", "-g", "cmd/main.go", "-o", "docs")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		log.Warn("Failed to generate swagger docs", "error", err)
		return
	}

	log.Info("Swagger docs generated")
}

func startServerWithGracefulShutdown(router *gin.Engine, port string) {
	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Info("Starting server", "port", port)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced server shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped")
}
