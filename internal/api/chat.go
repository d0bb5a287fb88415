package api

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyMessage blocks blank chat submissions before any network call.
var ErrEmptyMessage = errors.New("chat: empty message")

type chatRequest struct {
	Message string     `json:"message"`
	History []ChatTurn `json:"history"`
}

// Ask sends one chat turn with its trailing context window. History must
// already be bounded by the caller (see chat.Transcript.ContextWindow).
func (c *Client) Ask(ctx context.Context, message string, history []ChatTurn) (ChatAnswer, error) {
	if strings.TrimSpace(message) == "" {
		return ChatAnswer{}, ErrEmptyMessage
	}
	if history == nil {
		history = []ChatTurn{}
	}
	var out ChatAnswer
	err := c.postJSON(ctx, "/chat/ask", chatRequest{Message: message, History: history}, &out)
	return out, err
}
