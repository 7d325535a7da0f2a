package handlers

import (
	"net/http"

	"promoreel/internal/httpkit"
)

// GetVoices lists the narration voices the configured provider offers.
func (h *Handler) GetVoices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	voices, err := h.narration.ListVoices(ctx)
	if err != nil {
		h.log.FromContext(ctx).Error("voice listing failed", "error", err.Error())
		httpkit.WriteErr(w, 502, "UNAVAILABLE", "voice provider unavailable", nil)
		return
	}

	httpkit.WriteJSON(w, 200, map[string]any{"voices": voices})
}
