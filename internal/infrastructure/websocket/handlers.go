package websocket

import (
	"net/http"
	"sync"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/logger"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/utils"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

// WebSocketHandler upgrades /ws/status requests and keeps the read loop
// alive so disconnects are noticed and the connection unregistered.
type WebSocketHandler struct {
	connManager domain.ConnectionManager
	log         logger.Logger
}

func NewWebSocketHandler(connManager domain.ConnectionManager, log logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		connManager: connManager,
		log:         log,
	}
}

func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		clientID = utils.GenerateID("client")
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("Failed to upgrade connection", "error", err)
		return
	}

	wsConn := NewWebSocketConnection(conn, clientID, h.log)

	if err := h.connManager.RegisterConnection(clientID, wsConn); err != nil {
		h.log.Error("Failed to register connection", "error", err)
		conn.Close()
		return
	}

	go h.handleMessages(wsConn, clientID)
}

func (h *WebSocketHandler) handleMessages(conn *WebSocketConnection, clientID string) {
	defer func() {
		h.connManager.UnregisterConnection(clientID)
		conn.Close()
	}()

	for {
		var msg map[string]interface{}
		err := conn.conn.ReadJSON(&msg)
		if err != nil {
			h.log.Debug("Connection closed", "client_id", clientID, "error", err)
			break
		}

		msgType, ok := msg["type"].(string)
		if !ok {
			continue
		}

		if msgType == "ping" {
			conn.Send(map[string]string{"type": "pong"})
		}
	}
}

type WebSocketConnection struct {
	conn     *websocket.Conn
	clientID string
	log      logger.Logger

	// Serializes writers: gorilla allows a single concurrent writer per
	// connection, and Send is reached from both the read loop (pong
	// replies) and the broadcast path.
	writeMu sync.Mutex
}

func NewWebSocketConnection(conn *websocket.Conn, clientID string, log logger.Logger) *WebSocketConnection {
	return &WebSocketConnection{
		conn:     conn,
		clientID: clientID,
		log:      log,
	}
}

func (wsc *WebSocketConnection) Send(message interface{}) error {
	wsc.writeMu.Lock()
	defer wsc.writeMu.Unlock()
	return wsc.conn.WriteJSON(message)
}

func (wsc *WebSocketConnection) Close() error {
	wsc.writeMu.Lock()
	defer wsc.writeMu.Unlock()
	return wsc.conn.Close()
}

func (wsc *WebSocketConnection) ClientID() string {
	return wsc.clientID
}
