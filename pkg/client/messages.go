package client

import (
	"context"
	"fmt"

	"github.com/campusmaster/campus/pkg/domain"
)

// SendMessageRequest is the payload for /api/messages/send.
type SendMessageRequest struct {
	RecipientEmail string `json:"recipientEmail"`
	Content        string `json:"content"`
}

// Conversations lists the authenticated user's conversations.
func (c *Client) Conversations(ctx context.Context) ([]domain.Conversation, error) {
	var out []domain.Conversation
	if err := c.get(ctx, "/api/messages/conversations", &out); err != nil {
		return nil, fmt.Errorf("client.Conversations: %w", err)
	}
	return out, nil
}

// ConversationMessages lists the messages of a conversation.
func (c *Client) ConversationMessages(ctx context.Context, conversationID int64) ([]domain.Message, error) {
	var out []domain.Message
	if err := c.get(ctx, "/api/messages/conversations/"+idPath(conversationID), &out); err != nil {
		return nil, fmt.Errorf("client.ConversationMessages: %w", err)
	}
	return out, nil
}

// SendMessage sends a direct message, opening a conversation if needed.
func (c *Client) SendMessage(ctx context.Context, recipientEmail, content string) (*domain.Message, error) {
	var m domain.Message
	req := SendMessageRequest{RecipientEmail: recipientEmail, Content: content}
	if err := c.post(ctx, "/api/messages/send", req, &m); err != nil {
		return nil, fmt.Errorf("client.SendMessage: %w", err)
	}
	return &m, nil
}

// MarkConversationRead marks every message in a conversation as read.
func (c *Client) MarkConversationRead(ctx context.Context, conversationID int64) error {
	if err := c.put(ctx, "/api/messages/conversations/"+idPath(conversationID)+"/read", nil, nil); err != nil {
		return fmt.Errorf("client.MarkConversationRead: %w", err)
	}
	return nil
}

// UnreadMessageCount returns the number of unread direct messages.
func (c *Client) UnreadMessageCount(ctx context.Context) (int, error) {
	var out domain.UnreadCount
	if err := c.get(ctx, "/api/messages/unread/count", &out); err != nil {
		return 0, fmt.Errorf("client.UnreadMessageCount: %w", err)
	}
	return out.Count, nil
}

// Contacts lists the users the authenticated user may message.
func (c *Client) Contacts(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := c.get(ctx, "/api/messages/contacts", &out); err != nil {
		return nil, fmt.Errorf("client.Contacts: %w", err)
	}
	return out, nil
}
