package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authdelivery "taskhub-backend/internal/auth/delivery"
	authdomain "taskhub-backend/internal/auth/domain"
	userdto "taskhub-backend/internal/user/dto"
	"taskhub-backend/internal/user/usecase"
	"taskhub-backend/pkg/pagination"
	"taskhub-backend/pkg/response"
)

// UserHandler handles account HTTP requests
type UserHandler struct {
	userUsecase usecase.UserUsecase
	pageSize    int
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userUsecase usecase.UserUsecase, pageSize int) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		pageSize:    pageSize,
	}
}

// ListUsers
// GET /api/users?search=ada&ordering=-created_at&page=1
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, err := pagination.Parse(c.Request.URL.Query(), h.pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	users, total, err := h.userUsecase.ListUsers(c.Request.Context(), authdelivery.CurrentUser(c), usecase.ListQuery{
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		Page:     page,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	profiles := make([]authdomain.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Profile())
	}
	c.JSON(http.StatusOK, pagination.NewEnvelope(pagination.RequestURL(c.Request), page, total, profiles))
}

// GetUser
// GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userUsecase.GetUser(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Profile())
}

// CreateUser is open to anonymous callers
// POST /api/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req userdto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.userUsecase.CreateUser(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, userdto.NewCreatedUserResponse(user))
}

// UpdateUser
// PATCH /api/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	user, err := h.userUsecase.UpdateUser(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id"), response.PartialBody(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, userdto.NewUpdatedUserResponse(user))
}

// DeleteUser
// DELETE /api/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userUsecase.DeleteUser(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
