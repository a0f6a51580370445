package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yamboly/tutor-dashboard-service/internal/models"
)

// The tutoring agent occasionally writes the same message twice in quick
// succession; duplicates closer than this are collapsed.
const dedupWindow = 5 * time.Second

// displayTextKeys are tried in order when the stored content is an object.
var displayTextKeys = []string{
	"text",
	"content",
	"message",
	"respuesta",
	"Respuesta",
	"Mensaje guía",
	"mensaje",
}

// DisplayText renders whatever shape the agent stored in the content column
// as readable text.
func DisplayText(content interface{}) string {
	switch v := content.(type) {
	case nil:
		return ""
	case map[string]interface{}:
		for _, key := range displayTextKeys {
			if inner, ok := v[key]; ok && inner != nil {
				if text := DisplayText(inner); text != "" {
					return text
				}
			}
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			parts = append(parts, DisplayText(item))
		}
		return strings.Join(parts, "\n")
	case string:
		stripped := strings.TrimSpace(v)
		if strings.HasPrefix(stripped, "{") || strings.HasPrefix(stripped, "[") {
			var obj interface{}
			if err := json.Unmarshal([]byte(stripped), &obj); err == nil {
				return DisplayText(obj)
			}
		}
		return v
	default:
		return fmt.Sprint(v)
	}
}

// MessageText extracts the readable text of a stored chat message.
func MessageText(msg models.ChatMessage) string {
	if len(msg.Content) == 0 {
		return ""
	}

	var content interface{}
	if err := json.Unmarshal(msg.Content, &content); err != nil {
		return string(msg.Content)
	}
	return DisplayText(content)
}

// dedupMessages drops consecutive messages that repeat the previous one's
// role and text within the dedup window.
func dedupMessages(messages []models.ChatMessage) []models.ChatMessage {
	if len(messages) < 2 {
		return messages
	}

	result := make([]models.ChatMessage, 0, len(messages))
	result = append(result, messages[0])
	last := messages[0]

	for _, msg := range messages[1:] {
		if msg.Role == last.Role && MessageText(msg) == MessageText(last) {
			delta := msg.CreatedAt.Sub(last.CreatedAt)
			if delta < 0 {
				delta = -delta
			}
			if delta <= dedupWindow {
				continue
			}
		}
		result = append(result, msg)
		last = msg
	}

	return result
}
