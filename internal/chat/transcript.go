// Package chat holds the client-side conversation state for the AI
// assistant: an append-only transcript and the bounded context window sent
// with each question.
package chat

import (
	"context"
	"time"

	"github.com/google/uuid"

	"chickhealth-client-go/internal/api"
)

const (
	SenderUser = "user"
	SenderAI   = "ai"

	// contextTurns is the trailing window of prior turns sent as history.
	contextTurns = 5
)

// FallbackReply is shown as the assistant's answer when the call fails; the
// user never sees transport details.
const FallbackReply = "Xin lỗi, tôi đang gặp chút trục trặc kết nối. Bạn vui lòng thử lại sau nhé!"

// Greeting opens every new conversation.
const Greeting = "Xin chào! Tôi là trợ lý ảo **ChickHealth**. Tôi có thể giúp gì cho bạn về kỹ thuật chăn nuôi và bệnh thú y?"

// Message is one transcript entry. Messages are never edited or deleted.
type Message struct {
	ID        string
	Text      string
	Sender    string
	Timestamp time.Time
	Usage     *api.Usage
}

// Transcript is the ordered, append-only message list for one session. It
// lives only as long as the screen that owns it.
type Transcript struct {
	messages []Message
}

// NewTranscript starts a conversation with the assistant's greeting.
func NewTranscript() *Transcript {
	t := &Transcript{}
	t.append(Greeting, SenderAI, nil)
	return t
}

func (t *Transcript) Messages() []Message {
	return t.messages
}

func (t *Transcript) append(text, sender string, usage *api.Usage) Message {
	msg := Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now(),
		Usage:     usage,
	}
	t.messages = append(t.messages, msg)
	return msg
}

// ContextWindow returns the last turns of the transcript, at most
// contextTurns, oldest first, in the wire shape /chat/ask expects.
func (t *Transcript) ContextWindow() []api.ChatTurn {
	start := len(t.messages) - contextTurns
	if start < 0 {
		start = 0
	}
	window := make([]api.ChatTurn, 0, len(t.messages)-start)
	for _, msg := range t.messages[start:] {
		window = append(window, api.ChatTurn{Role: msg.Sender, Content: msg.Text})
	}
	return window
}

// Ask appends the user's message immediately, sends it with the trailing
// context window, then appends the assistant's reply. On failure the fixed
// fallback line is appended instead and the error is returned for logging.
func (t *Transcript) Ask(ctx context.Context, client *api.Client, message string) (Message, error) {
	window := t.ContextWindow()
	t.append(message, SenderUser, nil)

	answer, err := client.Ask(ctx, message, window)
	if err != nil {
		return t.append(FallbackReply, SenderAI, nil), err
	}
	return t.append(answer.Answer, SenderAI, answer.Usage), nil
}
