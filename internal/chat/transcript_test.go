package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chickhealth-client-go/internal/api"
)

func chatServer(t *testing.T, capture *[][]api.ChatTurn) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Message string         `json:"message"`
			History []api.ChatTurn `json:"history"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		*capture = append(*capture, req.History)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"answer":"trả lời: %s"}`, req.Message)
	}))
}

func TestTranscriptOpensWithGreeting(t *testing.T) {
	transcript := NewTranscript()
	messages := transcript.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, SenderAI, messages[0].Sender)
	assert.Equal(t, Greeting, messages[0].Text)
}

func TestAskWindowIsLastFivePriorTurns(t *testing.T) {
	var histories [][]api.ChatTurn
	server := chatServer(t, &histories)
	defer server.Close()
	client := api.New(server.URL, api.Options{})

	transcript := NewTranscript()
	for i := 1; i <= 4; i++ {
		_, err := transcript.Ask(context.Background(), client, fmt.Sprintf("câu hỏi %d", i))
		require.NoError(t, err)
	}

	// Four questions: greeting + 4 user + 4 ai = 9 messages.
	require.Len(t, transcript.Messages(), 9)
	require.Len(t, histories, 4)

	// The window never exceeds five turns and never includes the message
	// being asked.
	last := histories[3]
	require.Len(t, last, 5)
	assert.Equal(t, api.ChatTurn{Role: SenderAI, Content: "trả lời: câu hỏi 1"}, last[0])
	assert.Equal(t, api.ChatTurn{Role: SenderUser, Content: "câu hỏi 2"}, last[1])
	assert.Equal(t, api.ChatTurn{Role: SenderAI, Content: "trả lời: câu hỏi 3"}, last[4])
	for _, turn := range last {
		assert.NotEqual(t, "câu hỏi 4", turn.Content)
	}

	// The very first ask carried only the greeting.
	require.Len(t, histories[0], 1)
	assert.Equal(t, Greeting, histories[0][0].Content)
}

func TestAskFailureAppendsFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"detail":"upstream down"}`))
	}))
	defer server.Close()
	client := api.New(server.URL, api.Options{})

	transcript := NewTranscript()
	reply, err := transcript.Ask(context.Background(), client, "gà bị gì vậy?")
	require.Error(t, err)
	assert.Equal(t, FallbackReply, reply.Text)

	messages := transcript.Messages()
	require.Len(t, messages, 3)
	// The user's message stays in the transcript even though the call failed.
	assert.Equal(t, SenderUser, messages[1].Sender)
	assert.Equal(t, "gà bị gì vậy?", messages[1].Text)
	assert.Equal(t, FallbackReply, messages[2].Text)
}
