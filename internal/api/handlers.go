package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/harrylevesque/ordercode/internal/form"
	"github.com/harrylevesque/ordercode/internal/models"
	"github.com/harrylevesque/ordercode/internal/view"
)

// Handler serves the browser GUI for one OrderCodeForm.
type Handler struct {
	form   *form.OrderCodeForm
	flash  *view.Flash
	logger *slog.Logger
}

// NewHandler wires the GUI to f. flash must be the Alerter f was built with.
func NewHandler(f *form.OrderCodeForm, flash *view.Flash, logger *slog.Logger) *Handler {
	return &Handler{form: f, flash: flash, logger: logger}
}

func (h *Handler) page() view.Page {
	return view.Page{
		Input:  h.form.Input(),
		State:  h.form.State().String(),
		Groups: h.form.Grouped(),
	}
}

// IndexHandler renders the whole form, showing any pending alert once.
func (h *Handler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	p := h.page()
	p.Alert = h.flash.Take()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.RenderPage(w, p); err != nil {
		h.logger.Error("render page", "error", err)
	}
}

// ViewHandler renders the grouped list fragment.
func (h *Handler) ViewHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.RenderGroups(w, h.page()); err != nil {
		h.logger.Error("render groups", "error", err)
	}
}

// SubmitHandler takes the form post, submits it and sends the browser back to /.
func (h *Handler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	// The post outlives a browser that navigates away mid-request.
	ctx := context.WithoutCancel(r.Context())
	if err := h.form.SubmitInput(ctx, r.PostFormValue("digits")); err != nil {
		h.logger.Info("submit rejected", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RecordsHandler returns the accumulated records, newest first.
func (h *Handler) RecordsHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.form.Records())
}

// GroupsHandler returns the per-minute view.
func (h *Handler) GroupsHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.form.Grouped())
}

// EventsHandler streams a "refresh" event after every form change.
func (h *Handler) EventsHandler(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	changes, stop := h.form.Watch()
	defer stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-changes:
			if _, err := fmt.Fprint(w, "event: refresh\ndata: {}\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	body, err := models.EncodeJSON(v)
	if err != nil {
		h.logger.Error("encode response", "error", err)
		http.Error(w, "encoding error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(body); err != nil {
		h.logger.Debug("write response", "error", err)
	}
}
