// Package notify handles notification fan-out. Delivery transports
// (APNs/FCM) live behind the Publisher interface; the server only writes
// Notification rows and hands them to whichever publisher is configured.
package notify

import (
	"context"

	"github.com/vepsplus/fieldops/internal/models"
	log "github.com/sirupsen/logrus"
)

// Publisher delivers a stored notification to an external push channel.
type Publisher interface {
	Publish(ctx context.Context, n *models.Notification) error
}

// LogPublisher is the default publisher; it records the event and relies
// on clients polling GET /notifications.
type LogPublisher struct{}

// NewLogPublisher constructs a LogPublisher.
func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

// Publish logs the notification instead of pushing it.
func (p *LogPublisher) Publish(_ context.Context, n *models.Notification) error {
	log.WithFields(log.Fields{
		"user_id": n.UserID,
		"type":    n.Type,
		"title":   n.Title,
	}).Info("notification stored")
	return nil
}
