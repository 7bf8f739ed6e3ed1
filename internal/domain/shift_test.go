package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newPublished() *Shift {
	return &Shift{
		ID:           "s1",
		RestaurantID: "r1",
		Role:         "Server",
		Date:         time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		StartTime:    "17:00",
		EndTime:      "23:00",
		HourlyRate:   18,
		UrgencyLevel: UrgencyHigh,
		Status:       ShiftStatusPublished,
	}
}

func TestShiftHours(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"17:00", "23:00", 6},
		{"16:00", "00:00", 8},
		{"22:30", "02:00", 4},
		{"09:00", "09:00", 0},
	}
	for _, c := range cases {
		got, err := ShiftHours(c.start, c.end)
		require.NoError(t, err)
		require.Equal(t, c.want, got, "%s-%s", c.start, c.end)
	}
	_, err := ShiftHours("5pm", "23:00")
	require.ErrorIs(t, err, ErrValidation)
}

func TestShift_Duration(t *testing.T) {
	s := newPublished()
	require.Equal(t, "6 hours", s.Duration())
	require.True(t, s.Urgent())
	s.UrgencyLevel = UrgencyMedium
	require.False(t, s.Urgent())
}

func TestShift_Validate(t *testing.T) {
	s := newPublished()
	require.NoError(t, s.Validate())

	s.HourlyRate = 0
	s.BonusPercentage = 120
	s.UrgencyLevel = "extreme"
	err := s.Validate()
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "hourly rate")
	require.Contains(t, err.Error(), "bonus")
	require.Contains(t, err.Error(), "urgency")
}

func TestUrgency_DefaultBonus(t *testing.T) {
	require.Equal(t, 0, UrgencyLow.DefaultBonus())
	require.Equal(t, 5, UrgencyMedium.DefaultBonus())
	require.Equal(t, 15, UrgencyHigh.DefaultBonus())
	require.Equal(t, 30, UrgencyCritical.DefaultBonus())
}

func TestShift_Lifecycle(t *testing.T) {
	s := newPublished()
	s.Status = ShiftStatusDraft

	require.ErrorIs(t, s.Apply(Application{WorkerID: "w1", AppliedAt: t0}), ErrInvalidTransition)
	require.NoError(t, s.Publish(t0))
	require.ErrorIs(t, s.Publish(t0), ErrInvalidTransition)

	require.NoError(t, s.Apply(Application{WorkerID: "w1", WorkerName: "Ann", AppliedAt: t0}))
	require.NoError(t, s.Apply(Application{WorkerID: "w2", WorkerName: "Bob", AppliedAt: t0}))
	require.ErrorIs(t, s.Apply(Application{WorkerID: "w1", AppliedAt: t0}), ErrInvalidTransition)
	require.Equal(t, 2, s.Applicants())
	require.Equal(t, ApplicationStatusPending, s.Applications[0].Status)

	require.NoError(t, s.Accept("w2", t0))
	require.Equal(t, ShiftStatusFilled, s.Status)
	require.Equal(t, ApplicationStatusDeclined, s.Applications[0].Status)
	require.Equal(t, ApplicationStatusAccepted, s.Applications[1].Status)
	require.NotNil(t, s.Assignment)
	require.Equal(t, "Bob", s.Assignment.WorkerName)

	// one assignment at a time
	require.ErrorIs(t, s.Accept("w1", t0), ErrInvalidTransition)
	require.ErrorIs(t, s.Rate(UserTypeWorker, 5, nil, t0), ErrInvalidTransition)

	require.NoError(t, s.Complete(t0))
	require.Equal(t, ShiftStatusCompleted, s.Status)
	require.True(t, s.Assignment.Completed)
	require.ErrorIs(t, s.Complete(t0), ErrInvalidTransition)

	require.ErrorIs(t, s.Rate(UserTypeWorker, 6, nil, t0), ErrValidation)
	comment := "great crew"
	require.NoError(t, s.Rate(UserTypeWorker, 5, &comment, t0))
	require.ErrorIs(t, s.Rate(UserTypeWorker, 4, nil, t0), ErrInvalidTransition)
	require.NoError(t, s.Rate(UserTypeRestaurant, 4, nil, t0))
	require.Equal(t, 5, *s.Assignment.WorkerRating)
	require.Equal(t, 4, *s.Assignment.RestaurantRating)
}

func TestShift_Decline(t *testing.T) {
	s := newPublished()
	require.NoError(t, s.Apply(Application{WorkerID: "w1", AppliedAt: t0}))
	require.NoError(t, s.Decline("w1", t0))
	require.Equal(t, ShiftStatusPublished, s.Status)
	require.ErrorIs(t, s.Decline("w1", t0), ErrInvalidTransition)
	require.True(t, errors.Is(s.Decline("nobody", t0), ErrNotFound))
	require.ErrorIs(t, s.Accept("w1", t0), ErrInvalidTransition)
}

func TestShift_CancelAndDelete(t *testing.T) {
	s := newPublished()
	require.True(t, s.Deletable())
	require.NoError(t, s.Apply(Application{WorkerID: "w1", AppliedAt: t0}))
	require.NoError(t, s.Accept("w1", t0))
	require.False(t, s.Deletable())
	require.False(t, s.Editable())
	require.NoError(t, s.Cancel(t0))
	require.True(t, s.Deletable())
	require.ErrorIs(t, s.Cancel(t0), ErrInvalidTransition)
}

func TestShift_ChatSide(t *testing.T) {
	s := newPublished()
	_, ok := s.ChatSide("r1")
	require.False(t, ok, "no chat before assignment")

	require.NoError(t, s.Apply(Application{WorkerID: "w1", AppliedAt: t0}))
	require.NoError(t, s.Accept("w1", t0))

	side, ok := s.ChatSide("r1")
	require.True(t, ok)
	require.Equal(t, UserTypeRestaurant, side)
	side, ok = s.ChatSide("w1")
	require.True(t, ok)
	require.Equal(t, UserTypeWorker, side)
	_, ok = s.ChatSide("w2")
	require.False(t, ok)
	require.True(t, s.InvolvesWorker("w1"))

	peer, ok := s.ChatPeer("r1")
	require.True(t, ok)
	require.Equal(t, "w1", peer)
	peer, ok = s.ChatPeer("w1")
	require.True(t, ok)
	require.Equal(t, "r1", peer)
	_, ok = s.ChatPeer("w2")
	require.False(t, ok)
}

func TestShift_WaitingWorkers(t *testing.T) {
	s := newPublished()
	require.Empty(t, s.WaitingWorkers())
	require.NoError(t, s.Apply(Application{WorkerID: "w1", AppliedAt: t0}))
	require.NoError(t, s.Apply(Application{WorkerID: "w2", AppliedAt: t0}))
	require.NoError(t, s.Apply(Application{WorkerID: "w3", AppliedAt: t0}))
	require.NoError(t, s.Decline("w3", t0))
	require.Equal(t, []string{"w1", "w2"}, s.WaitingWorkers())

	require.NoError(t, s.Accept("w2", t0))
	require.Equal(t, []string{"w2"}, s.WaitingWorkers())
}

func TestNormalizeChatMessage(t *testing.T) {
	msg, err := NormalizeChatMessage("  on my way  ")
	require.NoError(t, err)
	require.Equal(t, "on my way", msg)

	_, err = NormalizeChatMessage("   ")
	require.ErrorIs(t, err, ErrValidation)
}
