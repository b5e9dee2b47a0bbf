package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AmazeeLabs/chat-ai/chat"
)

// completionRequest is the payload of POST /chat/completion.
type completionRequest struct {
	Message  string           `json:"message"`
	Langcode string           `json:"langcode"`
	History  []completionTurn `json:"history"`
}

// completionTurn is one prior exchange replayed by the client.
type completionTurn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// completionResponse is the successful reply.
type completionResponse struct {
	Status      string `json:"status"`
	Answer      string `json:"answer"`
	Langcode    string `json:"langcode"`
	ProcessedAt string `json:"processed_at"`
}

func (s *Server) chatCompletion(c *gin.Context) {
	var req completionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
		})
		return
	}

	if req.Message == "" || req.Langcode == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Missing required fields",
		})
		return
	}

	turns := make([]chat.Turn, len(req.History))
	for i, turn := range req.History {
		turns[i] = chat.Turn{User: turn.User, Assistant: turn.Assistant}
	}

	// The endpoint is anonymous; the request id identifies the exchange
	// in the history log.
	answer, err := s.answerer.Answer(c.Request.Context(), c.GetString("requestID"), req.Message, req.Langcode, turns)
	if err != nil {
		s.logger.Error("answering failed", "requestID", c.GetString("requestID"), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Unable to process the request",
		})
		return
	}

	c.JSON(http.StatusOK, completionResponse{
		Status:      "success",
		Answer:      answer,
		Langcode:    req.Langcode,
		ProcessedAt: time.Now().UTC().Format(time.RFC3339),
	})
}
