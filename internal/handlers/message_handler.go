package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"burgero/internal/models"
	"burgero/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MessageHandler struct {
	messageService services.MessageService
}

func NewMessageHandler(messageService services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func (h *MessageHandler) GetAllMessages(c *gin.Context) {
	messages, err := h.messageService.GetAllMessages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": messages})
}

func (h *MessageHandler) GetUnreadMessages(c *gin.Context) {
	messages, err := h.messageService.GetUnreadMessages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": messages})
}

func (h *MessageHandler) GetMessageByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid message id"})
		return
	}

	message, err := h.messageService.GetMessageByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": message})
}

func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	message := &models.Message{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}

	if err := h.messageService.CreateMessage(c.Request.Context(), message); err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields are required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Message sent successfully",
		"data":    message,
	})
}

func (h *MessageHandler) MarkAsRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid message id"})
		return
	}

	found, err := h.messageService.MarkAsRead(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Message not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Message marked as read"})
}

func (h *MessageHandler) MarkAllAsRead(c *gin.Context) {
	count, err := h.messageService.MarkAllAsRead()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "All messages marked as read",
		"data":    gin.H{"markedCount": count},
	})
}

func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid message id"})
		return
	}

	deleted, err := h.messageService.DeleteMessage(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Message not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Message deleted successfully"})
}

func (h *MessageHandler) DeleteAllMessages(c *gin.Context) {
	count, err := h.messageService.DeleteAllMessages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "All messages deleted successfully",
		"data":    gin.H{"deletedCount": count},
	})
}

func (h *MessageHandler) GetMessageStats(c *gin.Context) {
	stats, err := h.messageService.GetMessageStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}
