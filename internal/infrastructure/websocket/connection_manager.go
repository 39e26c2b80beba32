package websocket

import (
	"encoding/json"
	"sync"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/logger"
)

// ConnectionManager is the hub for the live status channel. Every client
// subscribes to the same stream; there are no rooms.
type ConnectionManager struct {
	connections map[string]domain.WebSocketConnection // clientID -> connection
	mutex       sync.RWMutex
	log         logger.Logger
}

func NewConnectionManager(log logger.Logger) *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]domain.WebSocketConnection),
		log:         log,
	}
}

func (cm *ConnectionManager) RegisterConnection(clientID string, conn domain.WebSocketConnection) error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	cm.connections[clientID] = conn

	cm.log.Info("Connection registered", "client_id", clientID, "total", len(cm.connections))
	return nil
}

func (cm *ConnectionManager) UnregisterConnection(clientID string) error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	delete(cm.connections, clientID)

	cm.log.Info("Connection unregistered", "client_id", clientID, "total", len(cm.connections))
	return nil
}

// Broadcast delivers the message to every open connection, at most once
// per listener, best effort. A failed send is logged and the loop moves on.
func (cm *ConnectionManager) Broadcast(message interface{}) error {
	connections := cm.snapshot()

	// Reject unserializable payloads up front instead of per connection.
	if _, err := json.Marshal(message); err != nil {
		return err
	}

	for _, conn := range connections {
		if err := conn.Send(message); err != nil {
			cm.log.Error("Failed to send message", "client_id", conn.ClientID(), "error", err)
			// Continue to other connections
		}
	}

	return nil
}

func (cm *ConnectionManager) CloseAll() error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	for clientID, conn := range cm.connections {
		if err := conn.Close(); err != nil {
			cm.log.Error("Failed to close connection", "client_id", clientID, "error", err)
		}
		delete(cm.connections, clientID)
	}

	return nil
}

func (cm *ConnectionManager) snapshot() []domain.WebSocketConnection {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	connections := make([]domain.WebSocketConnection, 0, len(cm.connections))
	for _, conn := range cm.connections {
		connections = append(connections, conn)
	}

	return connections
}
