package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/todtix/gamewiki-services/internal/comm"
)

type Ws struct {
	connMap  sync.Map // socketId -> *websocket.Conn
	tableMap sync.Map // socketId -> subscribed table name
}

func NewWs() *Ws {
	return &Ws{}
}

// handle socket message from web clients
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	switch message.Type {
	case "subscribe":
		s.handleSubscribe(socketId, message)
	case "unsubscribe":
		s.tableMap.Delete(socketId)
	default:
		log.Warnf("unknown event received: %s", message.Type)
	}
}

// handleSubscribe registers the socket for change events of one table.
// A second subscribe replaces the first; one live subscription per socket.
func (s *Ws) handleSubscribe(socketId string, msg *comm.WSMessage) {
	var payload comm.SubscribeRequest
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		log.Errorf("Error: invalid_subscribe_data Malformed subscribe payload %s", err)
		return
	}

	if payload.Table == "" {
		log.Error("Invalid subscribe payload: missing table")
		return
	}

	s.tableMap.Store(socketId, payload.Table)
	log.Infof("socket %s subscribed to table %s", socketId, payload.Table)
}

// Broadcast sends a change event to every socket subscribed to its table.
func (s *Ws) Broadcast(event comm.ChangeEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Errorf("Failed to marshal change event: %v", err)
		return
	}

	frame := comm.WSMessage{Type: "change", Data: data}

	s.tableMap.Range(func(key, value interface{}) bool {
		if value.(string) != event.Table {
			return true
		}

		socketId := key.(string)
		conn, ok := s.GetConnection(socketId)
		if !ok {
			s.tableMap.Delete(socketId)
			return true
		}

		if err := conn.WriteJSON(frame); err != nil {
			log.Errorf("Failed to push change to socket %s: %v", socketId, err)
		}
		return true
	})
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, conn)
}

func (s *Ws) GetConnection(socketId string) (*websocket.Conn, bool) {
	conn, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return conn.(*websocket.Conn), true
}

func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
	s.tableMap.Delete(socketId)
}
