package stubserver

import (
	"encoding/json"
	"net/http"
)

// apiResponse est l'enveloppe JSON commune à toutes les réponses
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func success(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: data})
}

func fail(w http.ResponseWriter, status int, err string) {
	writeJSON(w, status, apiResponse{Success: false, Error: err})
}

func message(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: msg})
}
