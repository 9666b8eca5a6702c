package session

import "sync"

// TokenStore détient le token bearer de la session courante.
// Lu avant chaque appel autorisé, jamais exposé en variable globale.
type TokenStore struct {
	mu    sync.Mutex
	token string
}

// NewTokenStore crée un porte-token vide
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get retourne le token courant (vide si non connecté)
func (t *TokenStore) Get() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.token
}

// Set remplace le token courant
func (t *TokenStore) Set(token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.token = token
}

// Clear efface le token (logout)
func (t *TokenStore) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.token = ""
}

// Session lie le token et l'identité du viewer. Passée explicitement à
// chaque opération du store plutôt que lue dans un état ambiant.
type Session struct {
	Tokens   *TokenStore
	ViewerID string
}

// NewSession crée une session sans viewer identifié
func NewSession() *Session {
	return &Session{Tokens: NewTokenStore()}
}

// Token retourne le token courant de la session
func (s *Session) Token() string {
	return s.Tokens.Get()
}

// Authenticated indique si la session porte un token
func (s *Session) Authenticated() bool {
	return s.Tokens.Get() != ""
}
