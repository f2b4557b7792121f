package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub-backend/internal/auth/delivery"
	authUsecase "taskhub-backend/internal/auth/usecase"
	taskDelivery "taskhub-backend/internal/task/delivery"
	taskUsecase "taskhub-backend/internal/task/usecase"
	userDelivery "taskhub-backend/internal/user/delivery"
	userUsecase "taskhub-backend/internal/user/usecase"
)

// Usecases groups what the route table needs.
type Usecases struct {
	Auth  authUsecase.AuthUsecase
	Users userUsecase.UserUsecase
	Tasks taskUsecase.TaskUsecase
}

func SetupRoutes(r *gin.Engine, uc Usecases, pageSize int) {
	authHandler := delivery.NewAuthHandler(uc.Auth)
	userHandler := userDelivery.NewUserHandler(uc.Users, pageSize)
	taskHandler := taskDelivery.NewTaskHandler(uc.Tasks, pageSize)
	requireAuth := delivery.AuthMiddleware(uc.Auth)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/token/refresh", authHandler.RefreshToken)
			auth.POST("/token/verify", authHandler.VerifyToken)
			auth.POST("/decode", requireAuth, authHandler.DecodeToken)
			auth.POST("/change-password", requireAuth, authHandler.ChangePassword)
		}

		// User routes; registration is public
		users := api.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", requireAuth, userHandler.ListUsers)
			users.GET("/:id", requireAuth, userHandler.GetUser)
			users.PATCH("/:id", requireAuth, userHandler.UpdateUser)
			users.DELETE("/:id", requireAuth, userHandler.DeleteUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.GetTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTaskByID)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"code": "not_found", "error": "Not found."})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"code": "method_not_allowed", "error": "Method not allowed."})
	})
}
