package state

import (
	"sync"
	"time"
)

// Severity classifies a notification for display styling.
type Severity string

const (
	// SeverityInfo marks a success message.
	SeverityInfo Severity = "info"
	// SeverityError marks a failure message.
	SeverityError Severity = "error"
)

// Notification is a transient user-facing message.
type Notification struct {
	Content  string
	Severity Severity
}

// DefaultNotificationTTL is how long a notification stays visible.
const DefaultNotificationTTL = 5 * time.Second

// Notifier holds at most one active notification and clears it after a
// fixed duration. Setting a new notification restarts the expiry, and the
// superseded timer can never wipe out the newer message.
type Notifier struct {
	mu      sync.Mutex
	ttl     time.Duration
	current *Notification
	timer   *time.Timer
	seq     uint64
}

// NewNotifier creates a Notifier whose notifications expire after ttl.
// A non-positive ttl falls back to DefaultNotificationTTL.
func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &Notifier{ttl: ttl}
}

// Set replaces any current notification and restarts the expiry timer.
func (n *Notifier) Set(content string, severity Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	n.current = &Notification{Content: content, Severity: severity}
	n.seq++
	seq := n.seq
	// The sequence check keeps a timer that already fired but lost the
	// lock race from clearing a newer message.
	n.timer = time.AfterFunc(n.ttl, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.seq == seq {
			n.current = nil
			n.timer = nil
		}
	})
}

// Clear immediately drops the notification and cancels the pending expiry.
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.current = nil
	n.seq++
}

// Current returns the active notification, or nil.
func (n *Notifier) Current() *Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}
