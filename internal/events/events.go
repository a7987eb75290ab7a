// Package events publishes assignment-change notifications to an MQTT
// broker for operator dashboards and diagnostics. Players do not consume
// these messages; they keep pulling their playlist through the sync API.
package events

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/Brightbeam-Media/lumen/internal/model"
)

type Publisher struct {
	client mqtt.Client
}

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Error().Err(err).Msg("MQTT connection lost")
}

// Connect dials the broker and returns a Publisher. A nil Publisher is
// safe to use; publishing through it is a no-op.
func Connect(brokerURL, clientID string) (*Publisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return &Publisher{client: client}, nil
}

type assignmentChangedEvent struct {
	TenantID   int              `json:"tenant_id"`
	PlayerID   int              `json:"player_id"`
	PlaylistID int              `json:"playlist_id"`
	Provenance model.Provenance `json:"provenance"`
}

// AssignmentChanged announces that the scheduler rewrote a player's
// current playlist.
func (p *Publisher) AssignmentChanged(tenantID, playerID, playlistID int, prov model.Provenance) {
	if p == nil || p.client == nil {
		return
	}

	payload, err := json.Marshal(assignmentChangedEvent{
		TenantID:   tenantID,
		PlayerID:   playerID,
		PlaylistID: playlistID,
		Provenance: prov,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal assignment event")
		return
	}

	topic := fmt.Sprintf("lumen/tenants/%d/players/%d/assignment", tenantID, playerID)
	token := p.client.Publish(topic, 1, false, payload)
	token.Wait()
	if token.Error() != nil {
		log.Error().Err(token.Error()).Str("topic", topic).Msg("failed to publish assignment event")
	}
}

func (p *Publisher) Close() {
	if p == nil || p.client == nil {
		return
	}
	p.client.Disconnect(250)
}
