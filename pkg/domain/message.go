package domain

// Message is a single direct message inside a conversation.
type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversationId"`
	Sender         *User     `json:"sender,omitempty"`
	Content        string    `json:"content"`
	Read           bool      `json:"isRead"`
	CreatedAt      Timestamp `json:"createdAt"`
}

// Conversation is a two-party direct message thread.
type Conversation struct {
	ID            int64     `json:"id"`
	Participant1  *User     `json:"participant1,omitempty"`
	Participant2  *User     `json:"participant2,omitempty"`
	LastMessageAt Timestamp `json:"lastMessageAt"`
	CreatedAt     Timestamp `json:"createdAt"`
	LastMessage   *Message  `json:"lastMessage,omitempty"`
	UnreadCount   int       `json:"unreadCount,omitempty"`
}

// Other returns the participant that is not me.
func (c Conversation) Other(myEmail string) *User {
	if c.Participant1 != nil && c.Participant1.Email != myEmail {
		return c.Participant1
	}
	return c.Participant2
}
