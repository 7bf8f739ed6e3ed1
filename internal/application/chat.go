package application

import (
	"context"
	"fmt"

	"shiftserve/internal/domain"
)

func (s *MarketplaceService) participant(ctx context.Context, actor Actor, shiftID string) (domain.Shift, domain.UserType, error) {
	sh, err := s.shifts.Get(ctx, shiftID)
	if err != nil {
		return domain.Shift{}, "", err
	}
	side, ok := sh.ChatSide(actor.ID)
	if !ok || side != actor.Type {
		return domain.Shift{}, "", fmt.Errorf("%w: not a participant of this shift", ErrForbidden)
	}
	return sh, side, nil
}

// CanWatch reports whether the caller may stream the shift's events.
func (s *MarketplaceService) CanWatch(ctx context.Context, actor Actor, shiftID string) error {
	_, _, err := s.participant(ctx, actor, shiftID)
	return err
}

func (s *MarketplaceService) PostMessage(ctx context.Context, actor Actor, shiftID, text string) (domain.ChatMessage, error) {
	sh, side, err := s.participant(ctx, actor, shiftID)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	peer, _ := sh.ChatPeer(actor.ID)
	text, err = domain.NormalizeChatMessage(text)
	if err != nil {
		return domain.ChatMessage{}, translate(err)
	}
	m := domain.ChatMessage{
		ID:         s.idgen.New(),
		ShiftID:    shiftID,
		SenderID:   actor.ID,
		SenderType: side,
		Message:    text,
		Timestamp:  s.clock.Now(),
	}
	if err := s.shifts.AddMessage(ctx, m); err != nil {
		return domain.ChatMessage{}, err
	}
	s.emit(ctx, domain.EventChatMessage, shiftID, actor.ID, map[string]any{
		"id":           m.ID,
		"sender_id":    m.SenderID,
		"sender_type":  string(m.SenderType),
		"recipient_id": peer,
		"message":      m.Message,
		"timestamp":    m.Timestamp,
	})
	return m, nil
}

func (s *MarketplaceService) ListMessages(ctx context.Context, actor Actor, shiftID string) ([]domain.ChatMessage, error) {
	if _, _, err := s.participant(ctx, actor, shiftID); err != nil {
		return nil, err
	}
	return s.shifts.ListMessages(ctx, shiftID)
}
