package socket

// Broadcaster pushes domain events to connected members.
type Broadcaster struct {
	hub *Hub
}

func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

// SendNotification pushes a stored notification to its owner.
func (b *Broadcaster) SendNotification(userID string, notification map[string]any) {
	b.hub.SendToUser(userID, MessageNotification, notification)
}

// SendNotificationCount updates the unread badge of a user.
func (b *Broadcaster) SendNotificationCount(userID string, total, unread int) {
	b.hub.SendToUser(userID, MessageNotificationCount, map[string]any{
		"total":  total,
		"unread": unread,
	})
}

// SwapRequestReceived tells the recipient a new request arrived.
func (b *Broadcaster) SwapRequestReceived(recipientID string, request map[string]any) {
	b.hub.SendToUser(recipientID, MessageSwapRequestReceived, request)
}

// SwapRequestDecided tells the sender their request was accepted or rejected.
func (b *Broadcaster) SwapRequestDecided(senderID string, accepted bool, request map[string]any) {
	msgType := MessageSwapRequestRejected
	if accepted {
		msgType = MessageSwapRequestAccepted
	}
	b.hub.SendToUser(senderID, msgType, request)
}
