package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	userapp "github.com/scriptoria-ai/auth-service/internal/application"
	"github.com/scriptoria-ai/auth-service/internal/domain/entity"
	"github.com/scriptoria-ai/auth-service/internal/domain/password"
	"github.com/scriptoria-ai/auth-service/internal/domain/valueobject"
	"github.com/scriptoria-ai/auth-service/internal/interface/middleware"
	"github.com/scriptoria-ai/auth-service/pkg/response"
	"github.com/scriptoria-ai/auth-service/pkg/validation"
)

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=30"`
	Email           string `json:"email" binding:"required,min=5,max=254"`
	Password        string `json:"password" binding:"required,userpwd"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
	Age             int    `json:"age" binding:"required,gte=1,lte=120"`
	Environment     string `json:"environment" binding:"required,environment"`
	EducationLevel  string `json:"educationLevel" binding:"required,edulevel"`
}

type registerResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Message  string `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

type updateRequest struct {
	Username       string `json:"username" binding:"omitempty,min=3,max=30"`
	Age            int    `json:"age" binding:"omitempty,gt=17"`
	Environment    string `json:"environment" binding:"omitempty,environment"`
	EducationLevel string `json:"educationLevel" binding:"omitempty,edulevel"`
}

type userDetailResponse struct {
	UserID   string          `json:"userId"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Age      int             `json:"age"`
	Profile  profileResponse `json:"profile"`
}

type profileResponse struct {
	Role           string `json:"role"`
	Environment    string `json:"environment"`
	EducationLevel string `json:"educationLevel"`
}

// Register POST /register
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), userapp.RegisterInput{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		Age:            req.Age,
		Environment:    valueobject.Environment(req.Environment),
		EducationLevel: valueobject.EducationLevel(req.EducationLevel),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, registerResponse{
		UserID:   res.UserID,
		Username: res.Username,
		Email:    res.Email,
		Message:  "user registered successfully",
	}, "user registered")
}

// Login POST /login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userapp.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, userapp.ErrInvalidCredentials.Error(), nil)
			return
		}
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, loginResponse{AccessToken: res.AccessToken, TokenType: "bearer"}, "login successful")
}

// Get GET /users/:id (self only)
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.authorizeSelf(c)
	if !ok {
		return
	}
	detail, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toDetailResponse(detail), "user detail")
}

// Update PUT /users/:id (self only)
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.authorizeSelf(c)
	if !ok {
		return
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	detail, err := h.Svc.Update(c.Request.Context(), id, userapp.UpdateInput{
		Username:       req.Username,
		Age:            req.Age,
		Environment:    valueobject.Environment(req.Environment),
		EducationLevel: valueobject.EducationLevel(req.EducationLevel),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toDetailResponse(detail), "user updated")
}

// Delete DELETE /users/:id (self only)
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.authorizeSelf(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// authorizeSelf parses the path id and enforces the self-only rule: the
// resolved caller must be the target, checked before any lookup so a
// mismatch is 403 whether or not the target exists.
func (h *UserHandler) authorizeSelf(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user id", nil)
		return uuid.Nil, false
	}
	if middleware.CallerID(c) != id.String() {
		response.Error(c, http.StatusForbidden, "cannot act on another user", nil)
		return uuid.Nil, false
	}
	return id, true
}

// writeError translates domain and use-case errors into the HTTP taxonomy.
// Unexpected errors are logged and answered with a generic message only.
func (h *UserHandler) writeError(c *gin.Context, err error) {
	var verr *valueobject.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error(c, http.StatusBadRequest, verr.Message, map[string]string{verr.Field: string(verr.Kind)})
	case errors.Is(err, password.ErrCommonPassword):
		response.Error(c, http.StatusBadRequest, "password is too common", nil)
	case errors.Is(err, userapp.ErrEmailTaken),
		errors.Is(err, userapp.ErrUsernameTaken),
		errors.Is(err, userapp.ErrEmptyUpdate):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, entity.ErrUsernameTooShort),
		errors.Is(err, entity.ErrUnderage),
		errors.Is(err, entity.ErrNoProfile):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, userapp.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, userapp.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, err.Error(), nil)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("unexpected error")
		}
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
	}
}

func toDetailResponse(d *userapp.UserDetail) userDetailResponse {
	return userDetailResponse{
		UserID:   d.UserID,
		Username: d.Username,
		Email:    d.Email,
		Age:      d.Age,
		Profile: profileResponse{
			Role:           string(d.Role),
			Environment:    string(d.Environment),
			EducationLevel: string(d.EducationLevel),
		},
	}
}
