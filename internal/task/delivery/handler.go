package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authdelivery "taskhub-backend/internal/auth/delivery"
	"taskhub-backend/internal/task/usecase"
	"taskhub-backend/pkg/pagination"
	"taskhub-backend/pkg/response"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskUsecase usecase.TaskUsecase
	pageSize    int
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskUsecase usecase.TaskUsecase, pageSize int) *TaskHandler {
	return &TaskHandler{
		taskUsecase: taskUsecase,
		pageSize:    pageSize,
	}
}

// GetTasks returns the tasks visible to the authenticated user
// GET /api/tasks?search=milk&page=1
func (h *TaskHandler) GetTasks(c *gin.Context) {
	page, err := pagination.Parse(c.Request.URL.Query(), h.pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	tasks, total, err := h.taskUsecase.GetTasks(c.Request.Context(), authdelivery.CurrentUser(c), c.Query("search"), page)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, pagination.NewEnvelope(pagination.RequestURL(c.Request), page, total, tasks))
}

// GetTaskByID returns a specific task
// GET /api/tasks/:id
func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	task, err := h.taskUsecase.GetTaskByID(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// CreateTask creates a task owned by the caller
// POST /api/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req usecase.TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	task, err := h.taskUsecase.CreateTask(c.Request.Context(), authdelivery.CurrentUser(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask applies a partial update
// PATCH /api/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, err := h.taskUsecase.UpdateTask(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id"), response.PartialBody(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask deletes a task
// DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskUsecase.DeleteTask(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
