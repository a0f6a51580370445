package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSession_JSONKeys(t *testing.T) {
	session := ChatSession{
		ID:           "s1",
		UserID:       "u1",
		SubjectID:    "mat-1",
		SessionTitle: "Matemáticas - 02/01 15:04",
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	data, err := json.Marshal(session)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	// The session list is ordered and rendered by creation time, so the
	// timestamp must land under the plain key.
	assert.Contains(t, decoded, "created_at")
	assert.Equal(t, "2026-01-02T03:04:05Z", decoded["created_at"])
	for key := range decoded {
		assert.NotContains(t, key, ";")
	}
}

func TestChatMessage_JSONKeys(t *testing.T) {
	msg := ChatMessage{
		ID:        "m1",
		SessionID: "s1",
		Role:      MessageRoleUser,
		Content:   []byte(`"hola"`),
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "created_at")
	assert.Equal(t, "user", decoded["role"])
}
