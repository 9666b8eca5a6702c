package api

import "fmt"

// ValidationError : précondition locale non remplie, aucun appel réseau émis
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TransportError : l'appel réseau lui-même a échoué (réseau injoignable,
// timeout, corps illisible)
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error on %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ResponseError : le serveur a répondu avec un statut non-2xx
type ResponseError struct {
	Status  int
	Message string
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error (%d)", e.Status)
}

// ProtocolError : statut 2xx mais payload incomplet ou inexploitable.
// Signale une violation du contrat collaborateur, pas une erreur utilisateur.
type ProtocolError struct {
	Field   string
	Message string
}

func (e *ProtocolError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("protocol error: missing field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("protocol error: %s", e.Message)
}
