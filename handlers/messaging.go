package handlers

import (
	"net/http"

	"tourbook/models"
	"tourbook/services/messaging"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
)

// MessagingHandler exposes parent/school conversations.
type MessagingHandler struct {
	MessagingService messaging.MessagingService
}

// NewMessagingHandler creates a MessagingHandler.
func NewMessagingHandler(svc messaging.MessagingService) *MessagingHandler {
	return &MessagingHandler{MessagingService: svc}
}

// StartConversationHandler handles POST /api/conversations. Starting a
// conversation with a school you already talk to returns the existing
// thread instead of erroring.
func (h *MessagingHandler) StartConversationHandler(c *gin.Context) {
	parentID, _, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "Invalid request: " + err.Error()})
		return
	}

	conv, err := h.MessagingService.StartConversation(parentID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, conv)
}

// ListConversationsHandler handles GET /api/conversations.
func (h *MessagingHandler) ListConversationsHandler(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		return
	}

	convs, err := h.MessagingService.ListConversations(userID, role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, convs)
}

// ListMessagesHandler handles GET /api/conversations/:id/messages.
// Reading a thread clears the caller's unread counter.
func (h *MessagingHandler) ListMessagesHandler(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		return
	}

	msgs, err := h.MessagingService.ListMessages(userID, role, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// SendMessageHandler handles POST /api/conversations/:id/messages.
func (h *MessagingHandler) SendMessageHandler(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "Invalid request: " + err.Error()})
		return
	}

	msg, err := h.MessagingService.SendMessage(userID, role, c.Param("id"), req.Body)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}
