package xiconf

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/xi-proteomics/xiconf/config"
	"github.com/xi-proteomics/xiconf/formatter"
	"github.com/xi-proteomics/xiconf/model"
)

type healthResponse struct {
	Status string `json:"status"`
}

type validateResponse struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{Status: "ok"})
}

// handleValidate takes a directive file in the request body and reports the
// full diagnostic set without exposing the model.
func handleValidate(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	_, warnings, err := LoadBytes(body)
	resp := validateResponse{Valid: err == nil}
	if warnings != nil {
		resp.Warnings = warnings.Messages()
	}
	status := http.StatusOK
	if err != nil {
		resp.Errors = errorMessages(err)
		status = http.StatusUnprocessableEntity
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// handleConvert takes a directive file in the request body and returns it in
// the requested representation (?format=json|yaml|toml|directives).
func handleConvert(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	sc, warnings, err := LoadBytes(body)
	if err != nil {
		resp := validateResponse{Valid: false, Errors: errorMessages(err)}
		if warnings != nil {
			resp.Warnings = warnings.Messages()
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	var out []byte
	var contentType string
	switch format {
	case "json":
		out, err = formatter.JSON(sc)
		contentType = "application/json"
	case "yaml":
		out, err = formatter.YAML(sc)
		contentType = "application/yaml"
	case "toml":
		out, err = formatter.TOML(sc)
		contentType = "application/toml"
	case "directives":
		out = formatter.Directives(sc)
		contentType = "text/plain; charset=utf-8"
	default:
		http.Error(w, "unknown format "+format, http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(out)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	limit := config.Config.Server.MaxRequestBytes
	if limit <= 0 {
		limit = 1 << 20
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		http.Error(w, "request body too large or unreadable", http.StatusRequestEntityTooLarge)
		return nil, false
	}
	return body, true
}

func errorMessages(err error) []string {
	var le model.LoadErrors
	if errors.As(err, &le) {
		msgs := make([]string, len(le))
		for i, e := range le {
			msgs[i] = e.Error()
		}
		return msgs
	}
	return []string{err.Error()}
}
