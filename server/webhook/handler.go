package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aws/aws-lambda-go/events"
)

type Processor interface {
	Handle(ctx context.Context, e events.S3Event) (string, error)
}

type Handler struct {
	processor Processor
}

func New(p Processor) (*Handler, error) {
	if p == nil {
		return nil, errors.New("missing processor")
	}

	h := &Handler{
		processor: p,
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Get("/healthz", h.handleHealth)

	r.Post("/events", h.handleEvents)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.WriteHeader(code)

	text := http.StatusText(code)

	if err != nil {
		text = err.Error()
	}

	w.Write([]byte(text))
}
