package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/apimgr/homunculus/src/config"
	"github.com/apimgr/homunculus/src/i18n"
	"github.com/apimgr/homunculus/src/provider"
	"github.com/apimgr/homunculus/src/theme"
)

// maxBodySize caps JSON request bodies
const maxBodySize = 64 << 10

// writeJSON writes v as JSON with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// writeError writes {"error": msg}
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads a bounded JSON body into v
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}

// handleHealthz reports liveness
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": config.Version,
		"uptime":  time.Since(s.startTime).Round(time.Second).String(),
		"scheme":  s.provider.SchemeID(),
	})
}

// schemeSummary is the list form of a scheme
type schemeSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Light       bool   `json:"light"`
	Active      bool   `json:"active"`
	// Legacy is the closest scheme of the old four-scheme picker
	Legacy theme.LegacyScheme `json:"legacy"`
}

// handleListSchemes returns the catalog in order
func (s *Server) handleListSchemes(w http.ResponseWriter, r *http.Request) {
	active := s.provider.Scheme().ID
	schemes := s.provider.Schemes()
	out := make([]schemeSummary, len(schemes))
	for i, sc := range schemes {
		out[i] = schemeSummary{
			ID:          sc.ID,
			Name:        sc.Name,
			Description: sc.Description,
			Light:       theme.IsLight(sc.ID),
			Active:      sc.ID == active,
			Legacy:      theme.ToLegacy(sc.ID),
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"default": theme.DefaultSchemeID,
		"schemes": out,
	})
}

// handleGetScheme returns one scheme; unknown ids get the default
// scheme with X-Scheme-Fallback set
func (s *Server) handleGetScheme(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !theme.HasScheme(id) {
		w.Header().Set("X-Scheme-Fallback", "true")
	}
	writeJSON(w, http.StatusOK, theme.GetSchemeByID(id))
}

// handleGetTheme returns the live snapshot
func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.provider.Snapshot())
}

// handleThemeVariables returns the global style variables under both
// their CSS names and the camelCase names scripts use
func (s *Server) handleThemeVariables(w http.ResponseWriter, r *http.Request) {
	resolved := s.provider.Resolved()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"css": resolved.ToCSSVariables(),
		"js":  resolved.JSVariables(),
	})
}

// handleSetScheme selects a color scheme
func (s *Server) handleSetScheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	ctx := provider.WithSource(r.Context(), provider.SourceHTTP)
	snap := s.provider.SetColorScheme(ctx, req.ID)
	if snap.Scheme.ID != req.ID {
		w.Header().Set("X-Scheme-Fallback", "true")
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleApplySettings applies settings given as JSON. Omitted fields
// keep their current values; any invalid field rejects the request.
func (s *Server) handleApplySettings(w http.ResponseWriter, r *http.Request) {
	settings := s.provider.Settings()
	if err := decodeJSON(r, &settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := settings.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := provider.WithSource(r.Context(), provider.SourceHTTP)
	writeJSON(w, http.StatusOK, s.provider.ApplySettings(ctx, settings))
}

// handleResetSettings restores the default settings
func (s *Server) handleResetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := provider.WithSource(r.Context(), provider.SourceHTTP)
	writeJSON(w, http.StatusOK, s.provider.ResetSettings(ctx))
}

// handleTranslations returns the flattened translation table. Only "en"
// selects English; every other code gets Chinese.
func (s *Server) handleTranslations(w http.ResponseWriter, r *http.Request) {
	lang := r.PathValue("lang")
	resolved := i18n.Chinese
	if lang == i18n.English {
		resolved = i18n.English
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"language":     resolved,
		"translations": s.i18n.Translations(lang),
	})
}
