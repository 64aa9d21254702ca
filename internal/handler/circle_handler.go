package handler

import (
	"errors"
	"net/http"

	"github.com/eggjam/eggjam-go/internal/model"
	"github.com/eggjam/eggjam-go/internal/service"
	"github.com/eggjam/eggjam-go/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var circleUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict Origin to the deployed frontend hosts
		return true
	},
}

// CircleHandler serves peer-circle management, chat history, and the live
// websocket rooms.
type CircleHandler struct {
	circles *service.CircleService
	logger  *zap.Logger
}

// NewCircleHandler creates the circle handler.
func NewCircleHandler(circles *service.CircleService, logger *zap.Logger) *CircleHandler {
	return &CircleHandler{circles: circles, logger: logger}
}

// List returns circles, optionally filtered by ?interest=.
func (h *CircleHandler) List(c *gin.Context) {
	circles, err := h.circles.List(c.Request.Context(), c.Query("interest"))
	if err != nil {
		h.logger.Error("circle list failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "circle list failed"})
		return
	}
	c.JSON(200, gin.H{"circles": circles})
}

// Create makes a new circle.
func (h *CircleHandler) Create(c *gin.Context) {
	var req model.CircleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}

	circle, err := h.circles.Create(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("circle create failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "circle create failed"})
		return
	}
	c.JSON(200, circle)
}

// Join adds a user to a circle.
func (h *CircleHandler) Join(c *gin.Context) {
	var req model.CircleJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}

	circle, err := h.circles.Join(c.Request.Context(), &req)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(404, gin.H{"error": "circle not found"})
	case errors.Is(err, store.ErrCircleFull):
		c.JSON(400, gin.H{"error": "circle is full"})
	case errors.Is(err, store.ErrAlreadyMember):
		c.JSON(400, gin.H{"error": "already a member"})
	case err != nil:
		h.logger.Error("circle join failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "circle join failed"})
	default:
		c.JSON(200, circle)
	}
}

// Messages lists a circle's chat history.
func (h *CircleHandler) Messages(c *gin.Context) {
	messages, err := h.circles.Messages(c.Request.Context(), c.Param("circle_id"))
	if err != nil {
		h.logger.Error("circle messages load failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "messages load failed"})
		return
	}
	c.JSON(200, gin.H{"messages": messages})
}

// PostMessage persists a message and broadcasts it to the room.
func (h *CircleHandler) PostMessage(c *gin.Context) {
	var req struct {
		UserID   string `json:"user_id" binding:"required"`
		Username string `json:"username"`
		Content  string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}

	msg, err := h.circles.PostMessage(c.Request.Context(), c.Param("circle_id"), req.UserID, req.Username, req.Content)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(404, gin.H{"error": "circle not found"})
		return
	}
	if err != nil {
		h.logger.Error("circle message post failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "message post failed"})
		return
	}
	c.JSON(200, msg)
}

// circleFrame is one inbound websocket message.
type circleFrame struct {
	Type    string `json:"type"` // CHAT or HEARTBEAT
	Content string `json:"content"`
}

// HandleWebSocket joins a circle room. Inbound CHAT frames are persisted and
// fanned out to every connection in the room.
func (h *CircleHandler) HandleWebSocket(c *gin.Context) {
	circleID := c.Query("circle_id")
	userID := c.Query("user_id")
	username := c.Query("username")
	if circleID == "" || userID == "" {
		c.JSON(400, gin.H{"error": "circle_id and user_id required"})
		return
	}

	if _, err := h.circles.Get(c.Request.Context(), circleID); err != nil {
		c.JSON(404, gin.H{"error": "circle not found"})
		return
	}

	conn, err := circleUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	circleConn := service.NewCircleConn(userID, conn)
	hub := h.circles.Hub()
	hub.Join(circleID, circleConn)
	defer hub.Leave(circleID, circleConn)

	for {
		var frame circleFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Error("websocket read failed", zap.Error(err))
			}
			break
		}

		switch frame.Type {
		case "CHAT":
			if _, err := h.circles.PostMessage(c.Request.Context(), circleID, userID, username, frame.Content); err != nil {
				h.logger.Error("websocket message post failed", zap.Error(err))
			}
		case "HEARTBEAT":
			// Connection liveness only, nothing to do.
		default:
			h.logger.Warn("unknown websocket frame type",
				zap.String("type", frame.Type), zap.String("userId", userID))
		}
	}
}
