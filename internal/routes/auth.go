package routes

import (
	"net/http"

	"Parcelo/internal/contracts"
	"Parcelo/internal/domain/auth"
	"Parcelo/internal/domain/user"
	appErrors "Parcelo/internal/errors"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Authenticate(c *gin.Context) {
	var body contracts.LoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	entity, err := h.AuthService.Login(ctx, auth.Login{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.JwtService.GenerateToken(entity.Id.String())
	if err != nil {
		h.respondError(c, appErrors.ErrInternalServer.WithError(err))
		return
	}

	c.JSON(http.StatusOK, contracts.AuthResponse{
		Token: token,
		User: contracts.UserResponse{
			Id:    entity.Id.String(),
			Name:  entity.Name,
			Email: entity.Email,
		},
	})
}

func (h *Handler) Registration(c *gin.Context) {
	var body contracts.RegisterRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	entity := &user.User{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
	}

	ctx := c.Request.Context()
	if err := h.AuthService.Register(ctx, entity); err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.JwtService.GenerateToken(entity.Id.String())
	if err != nil {
		h.respondError(c, appErrors.ErrInternalServer.WithError(err))
		return
	}

	c.JSON(http.StatusCreated, contracts.AuthResponse{
		Token: token,
		User: contracts.UserResponse{
			Id:    entity.Id.String(),
			Name:  entity.Name,
			Email: entity.Email,
		},
	})
}

func (h *Handler) GoogleAuth(c *gin.Context) {
	var body contracts.GoogleAuthRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	entity, err := h.AuthService.GoogleLogin(ctx, body.Credential)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.JwtService.GenerateToken(entity.Id.String())
	if err != nil {
		h.respondError(c, appErrors.ErrInternalServer.WithError(err))
		return
	}

	c.JSON(http.StatusOK, contracts.AuthResponse{
		Token: token,
		User: contracts.UserResponse{
			Id:    entity.Id.String(),
			Name:  entity.Name,
			Email: entity.Email,
		},
	})
}
