package recognition

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"kudos/internal/domain/directory"
)

const notifyTimeout = 10 * time.Second

// Notifier is the outbound notification collaborator. Delivery is best effort:
// an error is logged and never reaches the creation caller.
type Notifier interface {
	Notify(ctx context.Context, rec Recognition, sender, recipient directory.Employee) error
}

type Service struct {
	directory *directory.Store
	store     *Store
	hub       *Hub
	notifier  Notifier
	log       *slog.Logger
}

func NewService(dir *directory.Store, store *Store, hub *Hub, notifier Notifier, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{directory: dir, store: store, hub: hub, notifier: notifier, log: log}
}

type CreateInput struct {
	SenderID    string
	RecipientID string
	Message     string
	Visibility  Visibility
	IsAnonymous bool
}

// Create validates the request, persists the recognition, publishes it to
// live subscribers, and triggers the outbound notification. The caller gets
// the persisted record back before notification delivery completes; a
// notification failure never fails or rolls back the creation.
func (s *Service) Create(ctx context.Context, in CreateInput) (Recognition, error) {
	sender, ok := s.directory.EmployeeByID(in.SenderID)
	if !ok {
		return Recognition{}, ErrUnresolvedIdentity
	}
	if in.SenderID == in.RecipientID {
		return Recognition{}, ErrSelfRecognition
	}
	recipient, ok := s.directory.EmployeeByID(in.RecipientID)
	if !ok {
		return Recognition{}, ErrUnknownRecipient
	}
	if !in.Visibility.Valid() {
		return Recognition{}, ErrInvalidVisibility
	}

	rec := Recognition{
		ID:          uuid.NewString(),
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Message:     in.Message,
		Visibility:  in.Visibility,
		IsAnonymous: in.IsAnonymous,
		CreatedAt:   time.Now().UTC(),
	}

	s.store.Put(rec)
	s.hub.Publish(rec)

	if s.notifier != nil {
		// Detached from the request context: the creation is already durable
		// and the caller must not wait on delivery.
		go func() {
			nctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			defer cancel()
			if err := s.notifier.Notify(nctx, rec, sender, recipient); err != nil {
				s.log.Warn("recognition notification failed", "recognition", rec.ID, "err", err)
			}
		}()
	}

	return rec, nil
}

// For returns the recognitions for the given recipient (all recognitions when
// recipientID is empty), filtered to what the viewer may see.
func (s *Service) For(recipientID string, viewer directory.Employee) []Recognition {
	var recs []Recognition
	if recipientID == "" {
		recs = s.store.All()
	} else {
		recs = s.store.ByRecipient(recipientID)
	}
	return FilterVisible(recs, viewer)
}

// ReceivedBy returns the recognitions addressed to the viewer.
func (s *Service) ReceivedBy(viewer directory.Employee) []Recognition {
	return FilterVisible(s.store.ByRecipient(viewer.ID), viewer)
}

// SentBy returns the recognitions the viewer has sent.
func (s *Service) SentBy(viewer directory.Employee) []Recognition {
	return FilterVisible(s.store.BySender(viewer.ID), viewer)
}

// Subscribe opens a live subscription on the broadcast hub. Callers filter
// each event through CanView for their own viewer before surfacing it.
func (s *Service) Subscribe() *Subscription {
	return s.hub.Subscribe()
}

// Render shapes a recognition for a viewer that has already passed CanView,
// resolving the nested employees and applying the sender-disclosure rule.
func (s *Service) Render(viewer directory.Employee, rec Recognition) View {
	view := View{
		ID:          rec.ID,
		RecipientID: rec.RecipientID,
		Message:     rec.Message,
		Visibility:  rec.Visibility,
		IsAnonymous: rec.IsAnonymous,
		CreatedAt:   rec.CreatedAt,
	}
	if recipient, ok := s.directory.EmployeeByID(rec.RecipientID); ok {
		view.Recipient = &recipient
	}
	if SenderVisible(rec, viewer) {
		view.SenderID = rec.SenderID
		if sender, ok := s.directory.EmployeeByID(rec.SenderID); ok {
			view.Sender = &sender
		}
	}
	return view
}

// RenderAll renders a slice of recognitions for one viewer.
func (s *Service) RenderAll(viewer directory.Employee, recs []Recognition) []View {
	views := make([]View, 0, len(recs))
	for _, rec := range recs {
		views = append(views, s.Render(viewer, rec))
	}
	return views
}
