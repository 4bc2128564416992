package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/prasanthzodiac/College-connect-sub000/pkg/realtime"
	"github.com/prasanthzodiac/College-connect-sub000/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin policy is enforced by the CORS middleware in front.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades authenticated clients onto the realtime hub.
type WSHandler struct {
	hub *realtime.Hub
}

// NewWSHandler creates the WSHandler. hub may be nil.
func NewWSHandler(hub *realtime.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Connect upgrades the request to a websocket and serves it until
// the client disconnects. Runs behind JWTAuth.
// GET /api/v1/ws
func (h *WSHandler) Connect(c *gin.Context) {
	if h.hub == nil {
		response.Error(c, http.StatusServiceUnavailable, 10006, "realtime disabled")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote its own error response.
		return
	}

	h.hub.HandleConnection(conn, userID, role)
}
