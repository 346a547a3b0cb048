package webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/adrianliechti/docscan/pkg/job"
	"github.com/adrianliechti/docscan/pkg/storage"
	"github.com/adrianliechti/docscan/pkg/trigger"
)

const maxEventSize = 1 << 20

type EventResult struct {
	ContentType string `json:"contentType"`
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxEventSize))

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	e, err := trigger.Parse(data)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if len(e.Records) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	contentType, err := h.processor.Handle(r.Context(), e)

	if err != nil {
		writeError(w, statusCode(err), err)
		return
	}

	writeJson(w, EventResult{
		ContentType: contentType,
	})
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, storage.ErrAccessDenied):
		return http.StatusForbidden

	case errors.Is(err, job.ErrTimeout):
		return http.StatusGatewayTimeout
	}

	return http.StatusInternalServerError
}
