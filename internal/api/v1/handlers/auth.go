package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docpod/internal/api/middleware"
	"docpod/internal/api/v1/dto"
	"docpod/internal/api/v1/services"
)

// AuthHandler handles account endpoints
type AuthHandler struct {
	service services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Signup handles POST /api/v1/auth/signup
//
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.SignupRequest true "Account details"
// @Success 201 {object} dto.UserResponse "Account created"
// @Failure 409 {object} errors.APIError "Username or email taken"
// @Failure 422 {object} errors.APIError "Validation error"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.Signup(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login handles POST /api/v1/auth/login
//
// @Summary Sign in and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Email and password"
// @Success 200 {object} dto.LoginResponse "Session token"
// @Failure 401 {object} errors.APIError "Invalid email or password"
// @Failure 422 {object} errors.APIError "Validation error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Logout handles POST /api/v1/auth/logout
//
// @Summary Revoke the current session
// @Tags auth
// @Security BearerAuth
// @Success 204 "Signed out"
// @Failure 401 {object} errors.APIError "Not signed in"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), c.GetString(middleware.TokenKey)); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
