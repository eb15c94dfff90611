package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/notes-api/internal/application"
	"github.com/oksasatya/notes-api/internal/interface/middleware"
	"github.com/oksasatya/notes-api/pkg/response"
	"github.com/oksasatya/notes-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// loginRequest carries no binding tags on purpose: a missing field must be
// indistinguishable from a wrong password, so everything funnels into the
// same 401.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type deleteUserRequest struct {
	Email string `json:"email" binding:"required"`
}

// Signup POST /api/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "all fields are required", validation.ToDetails(err))
		response.JSON(c, resp)
		return
	}

	if err := h.Svc.Signup(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, application.ErrEmailTaken):
			response.JSON(c, response.Error[any](c, http.StatusBadRequest, "email already exists", nil))
		case errors.Is(err, application.ErrMissingFields):
			response.JSON(c, response.Error[any](c, http.StatusBadRequest, "all fields are required", nil))
		default:
			if h.Logger != nil {
				h.Logger.WithError(err).Error("signup failed")
			}
			response.JSON(c, response.Error[any](c, http.StatusInternalServerError, "signup failed", nil))
		}
		return
	}

	response.JSON(c, response.Success[any](c, http.StatusOK, nil, "signup successful", nil))
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
		return
	}

	token, exp, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.JSON(c, response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil))
		return
	}

	response.JSON(c, response.Success(c, http.StatusOK, gin.H{"token": token}, "login successful", map[string]any{"expires_at": exp}))
}

// GetProfile GET /api/profile (auth required)
func (h *AuthHandler) GetProfile(c *gin.Context) {
	email := c.GetString(middleware.CtxUserEmailKey)
	u, err := h.Svc.GetProfile(c.Request.Context(), email)
	if err != nil {
		response.JSON(c, response.Error[any](c, http.StatusNotFound, "user not found", nil))
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, gin.H{
		"name":  u.Name,
		"email": u.Email,
	}, "profile", nil))
}

// DeleteUser DELETE /api/delete-user (auth required)
// Callers may only delete their own account; the email in the body must match
// the verified identity on the token.
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	var req deleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, "email is required", validation.ToDetails(err)))
		return
	}

	if req.Email != c.GetString(middleware.CtxUserEmailKey) {
		response.JSON(c, response.Error[any](c, http.StatusForbidden, "cannot delete another account", nil))
		return
	}

	if err := h.Svc.DeleteUser(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.JSON(c, response.Error[any](c, http.StatusNotFound, "user not found", nil))
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("email", req.Email).Error("delete user failed")
		}
		response.JSON(c, response.Error[any](c, http.StatusInternalServerError, "delete failed", nil))
		return
	}

	response.JSON(c, response.Success[any](c, http.StatusOK, nil, "user deleted successfully", nil))
}
