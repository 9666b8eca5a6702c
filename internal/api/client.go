package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MassBabyGeek/PumpPro-client/internal/config"
)

// APIResponse est l'enveloppe JSON renvoyée par le backend
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Client enveloppe les appels HTTP vers le backend
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient crée un client API à partir de la configuration
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		http:    &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

// NewClientWithBaseURL crée un client API pointant sur une URL donnée
// (utilisé par les tests et le serveur de démonstration)
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Call émet une requête vers le backend et retourne le champ data de
// l'enveloppe. Tout statut 2xx est un succès ; les autres statuts sont
// convertis en ResponseError avec le meilleur message disponible.
func (c *Client) Call(ctx context.Context, method, path string, body interface{}, token string) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, &TransportError{Op: method + " " + path, Err: err}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &TransportError{Op: method + " " + path, Err: err}
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: method + " " + path, Err: err}
	}

	var envelope APIResponse
	decodeErr := json.Unmarshal(raw, &envelope)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Meilleur message possible : enveloppe, sinon la ligne de statut
		message := resp.Status
		if decodeErr == nil {
			if envelope.Error != "" {
				message = envelope.Error
			} else if envelope.Message != "" {
				message = envelope.Message
			}
		}
		return nil, &ResponseError{Status: resp.StatusCode, Message: message}
	}

	if decodeErr != nil {
		return nil, &ProtocolError{Message: fmt.Sprintf("unparseable 2xx body: %v", decodeErr)}
	}
	if !envelope.Success {
		return nil, &ResponseError{Status: resp.StatusCode, Message: envelope.Error}
	}

	return envelope.Data, nil
}

// Field extrait une clé obligatoire d'un objet data. Une clé absente ou
// nulle sur une réponse 2xx est une ProtocolError, jamais un succès silencieux.
func Field(data json.RawMessage, key string) (json.RawMessage, error) {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(data, &object); err != nil {
		return nil, &ProtocolError{Field: key, Message: fmt.Sprintf("payload is not an object: %v", err)}
	}

	value, ok := object[key]
	if !ok || len(value) == 0 || string(value) == "null" {
		return nil, &ProtocolError{Field: key, Message: "expected key absent from response payload"}
	}
	return value, nil
}

// Bind désérialise un payload dans dest, en ProtocolError si la forme ne
// correspond pas
func Bind(data json.RawMessage, dest interface{}) error {
	if len(data) == 0 {
		return &ProtocolError{Message: "empty response payload"}
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return &ProtocolError{Message: fmt.Sprintf("payload does not match expected shape: %v", err)}
	}
	return nil
}
