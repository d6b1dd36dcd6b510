package broker

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/todtix/gamewiki-services/internal/comm"
)

type Broker struct {
	Conn      *nats.Conn
	Broadcast func(comm.ChangeEvent)
}

func NewBroker(conn *nats.Conn, fncBroadcast func(comm.ChangeEvent)) *Broker {
	return &Broker{
		Conn:      conn,
		Broadcast: fncBroadcast,
	}
}

// Subscribe consumes change events published by the catalog service.
func (b *Broker) Subscribe(topic string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(topic, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (b *Broker) handleMessages(msgNats *nats.Msg) {
	event := comm.ChangeEvent{}
	err := json.Unmarshal(msgNats.Data, &event)
	if err != nil {
		log.Errorf("Error %s", err)
		return
	}

	switch event.Action {
	case comm.ActionInsert, comm.ActionUpdate, comm.ActionDelete:
		b.Broadcast(event)
	default:
		log.Errorf("Unknown change action %q", event.Action)
	}
}
