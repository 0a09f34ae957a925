package ws

import (
	"github.com/google/uuid"
	"github.com/vedran77/roster/internal/domain"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyUserCreated(user domain.UserResponse) {
	n.publish(domain.EventTypeUserCreated, user)
}

func (n *HubNotifier) NotifyUserUpdated(user domain.UserResponse) {
	n.publish(domain.EventTypeUserUpdated, user)
}

func (n *HubNotifier) NotifyUserDeleted(id uuid.UUID) {
	n.publish(domain.EventTypeUserDeleted, domain.UserDeletedPayload{ID: id})
}

func (n *HubNotifier) publish(eventType string, payload any) {
	evt, err := domain.NewEvent(eventType, payload)
	if err != nil {
		n.hub.log.Error("ws notifier: marshal error", "err", err)
		return
	}
	n.hub.Broadcast(evt)
}
