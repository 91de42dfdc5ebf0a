package handler

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"
)

// GetTutorialFlag reports whether the session completed a walkthrough key.
func (h *Handler) GetTutorialFlag(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)

	done, err := h.sessions.Flag(r.Context(), sid, mux.Vars(r)["key"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"completed": done})
}

// SetTutorialFlag marks a walkthrough key completed. Flags are one-way: a
// completed tutorial is never shown again within the session.
func (h *Handler) SetTutorialFlag(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)

	if err := h.sessions.SetFlag(r.Context(), sid, mux.Vars(r)["key"]); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"completed": true})
}

// maxPreviewBytes bounds an uploaded menu image preview.
const maxPreviewBytes = 1 << 20

// SavePreview stores a menu item image preview for the session, keyed by
// the item's stable ID.
func (h *Handler) SavePreview(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)

	data, err := io.ReadAll(io.LimitReader(r.Body, maxPreviewBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	if len(data) == 0 || len(data) > maxPreviewBytes {
		writeError(w, http.StatusBadRequest, "preview must be between 1 byte and 1 MiB")
		return
	}

	if err := h.sessions.SavePreview(r.Context(), sid, mux.Vars(r)["menuItemID"], data); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPreview serves a stored preview, or 404 when none exists.
func (h *Handler) GetPreview(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)

	data, ok, err := h.sessions.Preview(r.Context(), sid, mux.Vars(r)["menuItemID"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "no preview stored")
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(data)
}
