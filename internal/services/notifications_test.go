package services

import (
	"testing"
	"time"

	"pool-market-client/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(list []models.Notification) []string {
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.Text[0]
	}
	return out
}

func TestNotifications_KeepsTwoNewest(t *testing.T) {
	s, sched := newTestNotifications(nil)

	s.Add("A", models.NotificationSuccess)
	s.Add("B", models.NotificationSuccess)
	s.Add("C", models.NotificationError)

	assert.Equal(t, []string{"B", "C"}, texts(s.List()))
	require.Len(t, sched.calls, 3)
	assert.True(t, sched.calls[0].cancelled, "evicted timer must be cancelled")
	assert.False(t, sched.calls[1].cancelled)
	assert.False(t, sched.calls[2].cancelled)
}

func TestNotifications_ExpireRemovesById(t *testing.T) {
	s, sched := newTestNotifications(nil)

	s.Add("A", models.NotificationSuccess)
	s.Add("B", models.NotificationSuccess)

	sched.fire(0)
	assert.Equal(t, []string{"B"}, texts(s.List()))

	sched.fire(1)
	assert.Empty(t, s.List())
}

func TestNotifications_EvictedTimerIsNoop(t *testing.T) {
	s, sched := newTestNotifications(nil)

	s.Add("A", models.NotificationSuccess)
	s.Add("B", models.NotificationSuccess)
	s.Add("C", models.NotificationSuccess)

	sched.fire(0)
	assert.Equal(t, []string{"B", "C"}, texts(s.List()))
}

func TestNotifications_ExpireAfterRemoveIsNoop(t *testing.T) {
	s, sched := newTestNotifications(nil)

	s.Add("A", models.NotificationSuccess)
	s.Add("B", models.NotificationSuccess)

	require.True(t, s.Remove(0))
	assert.True(t, sched.calls[0].cancelled)

	sched.fire(0)
	assert.Equal(t, []string{"B"}, texts(s.List()))
}

func TestNotifications_RemoveOutOfRange(t *testing.T) {
	s, _ := newTestNotifications(nil)
	s.Add("A", models.NotificationSuccess)

	assert.False(t, s.Remove(1))
	assert.False(t, s.Remove(-1))
	assert.Len(t, s.List(), 1)
}

func TestNotifications_DurationAndLines(t *testing.T) {
	s, sched := newTestNotifications(nil)

	id := s.AddLines([]string{"title is required", "city is required"}, models.NotificationError, 10*time.Second)
	s.Add("default", models.NotificationSuccess)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, []string{"title is required", "city is required"}, list[0].Text)
	assert.Equal(t, models.NotificationError, list[0].Kind)
	assert.Equal(t, 10*time.Second, sched.calls[0].d)
	assert.Equal(t, time.Second, sched.calls[1].d)
	assert.NotEqual(t, list[0].ID, list[1].ID)
}

func TestNotifications_PublishesSnapshots(t *testing.T) {
	hub := NewHub()
	s, _ := newTestNotifications(hub)

	var got [][]models.Notification
	hub.Subscribe(func(e Event) {
		if e.Type == EventNotifications {
			got = append(got, e.Data.([]models.Notification))
		}
	})

	s.Add("A", models.NotificationSuccess)
	s.Remove(0)

	require.Len(t, got, 2)
	assert.Len(t, got[0], 1)
	assert.Empty(t, got[1])
}

func TestNotifications_TimerScheduler(t *testing.T) {
	s := NewNotificationService(10*time.Millisecond, nil, nil)
	t.Cleanup(s.Close)

	s.Add("A", models.NotificationSuccess)
	require.Len(t, s.List(), 1)

	assert.Eventually(t, func() bool {
		return len(s.List()) == 0
	}, time.Second, 5*time.Millisecond)
}
