package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yomiyu15/Workingspacebackend/internal/pkg/response"
	"github.com/yomiyu15/Workingspacebackend/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/admin/login", h.Login)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Username and password are required", errs)
		return
	}

	res, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid credentials")
			return
		}
		logrus.WithError(err).Error("[AUTH] login failed")
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Login failed")
		return
	}

	response.Success(c, http.StatusOK, res)
}
