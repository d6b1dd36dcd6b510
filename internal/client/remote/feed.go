package remote

import (
	"context"
	"encoding/json"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/todtix/gamewiki-services/internal/client"
	"github.com/todtix/gamewiki-services/internal/comm"
)

type feedSubscription struct {
	conn *websocket.Conn
}

func (s *feedSubscription) Unsubscribe() error {
	return s.conn.Close()
}

// Subscribe dials the socket service, registers for one table and
// dispatches every change frame to onChange. No reconnect policy lives
// here; a dropped connection simply ends the read loop.
func (c *Client) Subscribe(ctx context.Context, table string, onChange func(client.ChangeEvent)) (client.Subscription, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.wsURL, nil)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(comm.SubscribeRequest{Table: table})
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := conn.WriteJSON(comm.WSMessage{Type: "subscribe", Data: payload}); err != nil {
		conn.Close()
		return nil, err
	}

	go readLoop(conn, onChange)

	return &feedSubscription{conn: conn}, nil
}

func readLoop(conn *websocket.Conn, onChange func(client.ChangeEvent)) {
	defer conn.Close()

	for {
		var frame comm.WSMessage
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Errorf("change feed closed unexpectedly: %v", err)
			}
			return
		}

		if frame.Type != "change" {
			continue
		}

		var event client.ChangeEvent
		if err := json.Unmarshal(frame.Data, &event); err != nil {
			log.Errorf("malformed change event: %v", err)
			continue
		}

		onChange(event)
	}
}
