package routes

import (
	"net/http"

	"Parcelo/internal/contracts"
	appErrors "Parcelo/internal/errors"

	"github.com/gin-gonic/gin"
)

func (h *Handler) UpdateUserName(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.UserUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	if err := h.UserService.UpdateName(ctx, userID, body.Name); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Usuário atualizado com sucesso"})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.UserService.Delete(ctx, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Usuário removido com sucesso"})
}
