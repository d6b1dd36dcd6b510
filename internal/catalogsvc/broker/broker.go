package broker

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/todtix/gamewiki-services/internal/comm"
)

// Subject carrying games table change events to the socket service.
const GamesChangesTopic = "catalog.games.changes"

type Broker struct {
	Conn *nats.Conn
}

func NewBroker(nc *nats.Conn) *Broker {
	return &Broker{Conn: nc}
}

// PublishGameChange notifies subscribers that a games row changed. A lost
// event only delays convergence until the next fetch, so failures are
// logged and not propagated to the caller.
func (b *Broker) PublishGameChange(action string, gameID int64) {
	if b == nil || b.Conn == nil {
		return
	}

	event := comm.ChangeEvent{
		Action: action,
		Table:  "games",
		ID:     gameID,
	}

	bytes, err := json.Marshal(event)
	if err != nil {
		log.Errorf("Failed to marshal change event: %v", err)
		return
	}

	if err := b.Conn.Publish(GamesChangesTopic, bytes); err != nil {
		log.Errorf("Error publishing to topic %s: %s", GamesChangesTopic, err)
	}
}
