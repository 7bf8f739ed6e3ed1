package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxChatMessageLen = 2000

type ChatMessage struct {
	ID         string
	ShiftID    string
	SenderID   string
	SenderType UserType
	Message    string
	Timestamp  time.Time
}

// NormalizeChatMessage trims the text and enforces the length limits.
func NormalizeChatMessage(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: message is empty", ErrValidation)
	}
	if utf8.RuneCountInString(text) > MaxChatMessageLen {
		return "", fmt.Errorf("%w: message exceeds %d characters", ErrValidation, MaxChatMessageLen)
	}
	return text, nil
}
