package recognitionhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"kudos/internal/domain/directory"
	"kudos/internal/domain/recognition"
	"kudos/internal/platform/metrics"
	"kudos/internal/transport/http/api"
	"kudos/internal/transport/http/middleware"
)

const streamKeepalive = 25 * time.Second

type Handler struct {
	Svc     *recognition.Service
	Dir     *directory.Store
	Metrics *metrics.Collector
	Log     *slog.Logger
}

func NewHandler(svc *recognition.Service, dir *directory.Store, collector *metrics.Collector, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{Svc: svc, Dir: dir, Metrics: collector, Log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/recognitions", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/mine", h.handleMine)
		r.Get("/sent", h.handleSent)
		r.Get("/stream", h.handleStream)
	})
}

// viewer resolves the authenticated caller to an employee. The second return
// distinguishes "no token" (unauthorized) from the third, "token email with
// no employee record" (queries degrade to empty results).
func (h *Handler) viewer(r *http.Request) (directory.Employee, bool, bool) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		return directory.Employee{}, false, false
	}
	employee, resolved := h.Dir.FindByEmail(identity.Email)
	return employee, true, resolved
}

type createRequest struct {
	RecipientID string `json:"recipientId"`
	Message     string `json:"message"`
	Visibility  string `json:"visibility"`
	IsAnonymous bool   `json:"isAnonymous"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	viewer, authenticated, resolved := h.viewer(r)
	if !authenticated {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	if !resolved {
		api.Fail(w, http.StatusUnauthorized, "unresolved_identity", "no employee record for caller", requestID)
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "could not parse request body", requestID)
		return
	}

	rec, err := h.Svc.Create(r.Context(), recognition.CreateInput{
		SenderID:    viewer.ID,
		RecipientID: req.RecipientID,
		Message:     req.Message,
		Visibility:  recognition.Visibility(req.Visibility),
		IsAnonymous: req.IsAnonymous,
	})
	if err != nil {
		h.failCreate(w, err, requestID)
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecognitionCreated()
	}
	api.Created(w, h.Svc.Render(viewer, rec), requestID)
}

func (h *Handler) failCreate(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, recognition.ErrUnresolvedIdentity):
		api.Fail(w, http.StatusUnauthorized, "unresolved_identity", "no employee record for caller", requestID)
	case errors.Is(err, recognition.ErrSelfRecognition):
		api.Fail(w, http.StatusBadRequest, "self_recognition", "you cannot send a recognition to yourself", requestID)
	case errors.Is(err, recognition.ErrUnknownRecipient):
		api.Fail(w, http.StatusNotFound, "unknown_recipient", "recipient not found", requestID)
	case errors.Is(err, recognition.ErrInvalidVisibility):
		api.Fail(w, http.StatusBadRequest, "invalid_visibility", "visibility must be PUBLIC or PRIVATE", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create recognition", requestID)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, func(viewer directory.Employee) []recognition.Recognition {
		return h.Svc.For(r.URL.Query().Get("recipientId"), viewer)
	})
}

func (h *Handler) handleMine(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, h.Svc.ReceivedBy)
}

func (h *Handler) handleSent(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, h.Svc.SentBy)
}

func (h *Handler) respondList(w http.ResponseWriter, r *http.Request, query func(directory.Employee) []recognition.Recognition) {
	requestID := middleware.GetRequestID(r.Context())

	viewer, authenticated, resolved := h.viewer(r)
	if !authenticated {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	if !resolved {
		// Unresolved viewers get empty results, not errors.
		api.Success(w, []recognition.View{}, requestID)
		return
	}

	api.Success(w, h.Svc.RenderAll(viewer, query(viewer)), requestID)
}

// handleStream serves the live subscription over Server-Sent Events. Each
// event is re-checked against the viewer's visibility before it is written;
// the hub delivers everything and the filter lives here, with the subscriber.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		api.Fail(w, http.StatusInternalServerError, "stream_unsupported", "streaming not supported", requestID)
		return
	}

	viewer, authenticated, resolved := h.viewer(r)
	if !authenticated {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	// An authenticated caller with no employee record gets a stream that
	// completes immediately rather than an error.
	if !resolved {
		return
	}

	sub := h.Svc.Subscribe()
	defer sub.Cancel()

	keepalive := time.NewTicker(streamKeepalive)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepalive.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case rec, open := <-sub.Events():
			if !open {
				return
			}
			if !recognition.CanView(rec, viewer) {
				continue
			}
			payload, err := json.Marshal(h.Svc.Render(viewer, rec))
			if err != nil {
				h.Log.Warn("stream encode failed", "recognition", rec.ID, "err", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: recognition\ndata: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
			if h.Metrics != nil {
				h.Metrics.EventDelivered()
			}
		}
	}
}
