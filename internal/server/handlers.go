package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ims/ims/internal/messaging/messages"
	"github.com/ims/ims/internal/messaging/users"
)

// User handlers

func createUser(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req users.CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		user, err := as.UserService.CreateUser(c.Request.Context(), req.Name)
		if err != nil {
			respondServiceError(as, c, err, "create user")
			return
		}

		c.Header("Location", fmt.Sprintf("/users/%s", user.ID))
		c.JSON(http.StatusCreated, user)
	}
}

func listUsers(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		userList, err := as.UserService.ListUsers(c.Request.Context())
		if err != nil {
			respondServiceError(as, c, err, "list users")
			return
		}

		c.JSON(http.StatusOK, userList)
	}
}

func getUser(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := uuidParam(c, "userId")
		if !ok {
			return
		}

		user, err := as.UserService.GetUser(c.Request.Context(), userID)
		if err != nil {
			respondServiceError(as, c, err, "get user", zap.String("user_id", userID.String()))
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

func deleteUser(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := uuidParam(c, "userId")
		if !ok {
			return
		}

		if err := as.UserService.DeleteUser(c.Request.Context(), userID); err != nil {
			respondServiceError(as, c, err, "delete user", zap.String("user_id", userID.String()))
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// Message handlers

func sendMessage(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := uuidParam(c, "userId")
		if !ok {
			return
		}

		var req messages.SendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		message, err := as.MessageService.SendMessage(c.Request.Context(), userID, *req.ReceiverID, req.Content)
		if err != nil {
			respondServiceError(as, c, err, "send message",
				zap.String("user_id", userID.String()),
				zap.String("receiver_id", req.ReceiverID.String()))
			return
		}

		c.Header("Location", fmt.Sprintf("/users/%s/messages/%s", userID, message.ID))
		c.JSON(http.StatusCreated, message)
	}
}

func getUserMessages(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := uuidParam(c, "userId")
		if !ok {
			return
		}

		messageList, err := as.MessageService.GetUserMessages(c.Request.Context(), userID)
		if err != nil {
			respondServiceError(as, c, err, "get user messages", zap.String("user_id", userID.String()))
			return
		}

		c.JSON(http.StatusOK, messageList)
	}
}

func getUserMessage(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := uuidParam(c, "userId")
		if !ok {
			return
		}
		messageID, ok := uuidParam(c, "messageId")
		if !ok {
			return
		}

		message, err := as.MessageService.GetUserMessage(c.Request.Context(), userID, messageID)
		if err != nil {
			respondServiceError(as, c, err, "get user message",
				zap.String("user_id", userID.String()),
				zap.String("message_id", messageID.String()))
			return
		}

		c.JSON(http.StatusOK, message)
	}
}

func deleteUserMessages(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := uuidParam(c, "userId")
		if !ok {
			return
		}

		if err := as.MessageService.DeleteUserMessages(c.Request.Context(), userID); err != nil {
			respondServiceError(as, c, err, "delete user messages", zap.String("user_id", userID.String()))
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func deleteUserMessage(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := uuidParam(c, "userId")
		if !ok {
			return
		}
		messageID, ok := uuidParam(c, "messageId")
		if !ok {
			return
		}

		if err := as.MessageService.DeleteUserMessage(c.Request.Context(), userID, messageID); err != nil {
			respondServiceError(as, c, err, "delete user message",
				zap.String("user_id", userID.String()),
				zap.String("message_id", messageID.String()))
			return
		}

		c.Status(http.StatusNoContent)
	}
}
