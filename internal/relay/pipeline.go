package relay

import (
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/alphafeeds/relay_bot/internal/rules"
	"github.com/alphafeeds/relay_bot/internal/settings"
)

// Sender delivers a message body to a single chat.
type Sender interface {
	SendMessage(chatID int64, text string) error
}

// Pipeline forwards channel posts from origin channels to every destination
// channel, applying the substitution table on the way.
type Pipeline struct {
	manager *settings.Manager
	sender  Sender
	marker  string
}

func New(manager *settings.Manager, sender Sender, marker string) *Pipeline {
	return &Pipeline{
		manager: manager,
		sender:  sender,
		marker:  marker,
	}
}

// HandlePost runs one inbound channel post through the forwarding gates and
// fans the transformed body out to every destination channel. A gate failure
// drops the post; nothing is ever reported back to the origin. Sends happen
// against a snapshot, so the settings lock is never held across the network.
func (p *Pipeline) HandlePost(sourceChatID int64, body string) {
	s := p.manager.Snapshot()

	if s.Paused {
		return
	}

	if !containsChannel(s.OriginChannels, sourceChatID) {
		return
	}

	// The marker must sit at position 0, case-sensitive, no trimming.
	if !strings.HasPrefix(body, p.marker) {
		return
	}

	if len(s.DestinationChannels) == 0 {
		log.Printf("relay: dropping post from %d, no destination channels set", sourceChatID)
		return
	}

	text := rules.Apply(body)
	relayID := uuid.New().String()

	for _, destID := range s.DestinationChannels {
		if err := p.sender.SendMessage(destID, text); err != nil {
			log.Printf("relay %s: failed to forward from %d to %d: %v", relayID, sourceChatID, destID, err)
			continue
		}
		log.Printf("relay %s: forwarded from %d to %d", relayID, sourceChatID, destID)
	}
}

func containsChannel(channels []int64, id int64) bool {
	for _, c := range channels {
		if c == id {
			return true
		}
	}

	return false
}
