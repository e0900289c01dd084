package services

import (
	"sync"
	"time"

	"pool-market-client/internal/models"

	"github.com/google/uuid"
)

const (
	// DefaultNotificationDuration is how long a notification stays queued
	DefaultNotificationDuration = 4 * time.Second

	maxQueuedNotifications = 2
)

// Scheduler runs fn once after d and returns a cancel function. fn must not
// be called synchronously from within the Scheduler.
type Scheduler func(d time.Duration, fn func()) (cancel func())

// TimerScheduler schedules with time.AfterFunc
func TimerScheduler(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

type queuedNotification struct {
	notification models.Notification
	cancel       func()
}

// NotificationService holds the queue of ephemeral user-facing messages
type NotificationService struct {
	mu       sync.Mutex
	queue    []*queuedNotification
	duration time.Duration
	schedule Scheduler
	hub      *Hub
}

// NewNotificationService creates a notification queue. A zero duration uses
// DefaultNotificationDuration and a nil scheduler uses TimerScheduler.
func NewNotificationService(duration time.Duration, schedule Scheduler, hub *Hub) *NotificationService {
	if duration <= 0 {
		duration = DefaultNotificationDuration
	}
	if schedule == nil {
		schedule = TimerScheduler
	}
	return &NotificationService{
		duration: duration,
		schedule: schedule,
		hub:      hub,
	}
}

// Add queues a single-line notification for the default duration
func (s *NotificationService) Add(text string, kind models.NotificationKind) string {
	return s.AddLines([]string{text}, kind, s.duration)
}

// AddWithDuration queues a single-line notification for d
func (s *NotificationService) AddWithDuration(text string, kind models.NotificationKind, d time.Duration) string {
	return s.AddLines([]string{text}, kind, d)
}

// AddLines appends a notification, then drops the oldest one if more than two
// are queued, and schedules its own removal after d. It returns the new id.
func (s *NotificationService) AddLines(lines []string, kind models.NotificationKind, d time.Duration) string {
	entry := &queuedNotification{
		notification: models.Notification{
			ID:   uuid.New().String(),
			Text: append([]string(nil), lines...),
			Kind: kind,
		},
	}
	id := entry.notification.ID

	s.mu.Lock()
	s.queue = append(s.queue, entry)
	if len(s.queue) > maxQueuedNotifications {
		evicted := s.queue[0]
		s.queue = s.queue[1:]
		if evicted.cancel != nil {
			evicted.cancel()
		}
	}
	entry.cancel = s.schedule(d, func() { s.expire(id) })
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.hub.Publish(Event{Type: EventNotifications, Data: snapshot})
	return id
}

// Remove deletes the notification at index. Out-of-range indexes are ignored.
func (s *NotificationService) Remove(index int) bool {
	s.mu.Lock()
	if index < 0 || index >= len(s.queue) {
		s.mu.Unlock()
		return false
	}
	removed := s.queue[index]
	s.queue = append(s.queue[:index], s.queue[index+1:]...)
	if removed.cancel != nil {
		removed.cancel()
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.hub.Publish(Event{Type: EventNotifications, Data: snapshot})
	return true
}

// expire removes the notification with id if it is still queued
func (s *NotificationService) expire(id string) {
	s.mu.Lock()
	index := -1
	for i, q := range s.queue {
		if q.notification.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue[:index], s.queue[index+1:]...)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.hub.Publish(Event{Type: EventNotifications, Data: snapshot})
}

// List returns a copy of the queued notifications, oldest first
func (s *NotificationService) List() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close cancels all pending removals
func (s *NotificationService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.queue {
		if q.cancel != nil {
			q.cancel()
		}
	}
}

func (s *NotificationService) snapshotLocked() []models.Notification {
	out := make([]models.Notification, len(s.queue))
	for i, q := range s.queue {
		out[i] = q.notification
	}
	return out
}
