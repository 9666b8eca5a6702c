package store

import (
	"context"
	"net/http"

	"github.com/MassBabyGeek/PumpPro-client/internal/api"
	"github.com/MassBabyGeek/PumpPro-client/internal/logger"
	model "github.com/MassBabyGeek/PumpPro-client/internal/models"
)

// Login authentifie le viewer et remplit la session (token + identité).
// La réponse doit porter "token" et "user".
func (ps *ProfileStore) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		err := &api.ValidationError{Message: "email and password are required"}
		ps.notify(NotifyError, err.Message)
		return err
	}

	payload := map[string]string{"email": email, "password": password}
	data, err := ps.client.Call(ctx, http.MethodPost, "/auth/login", payload, "")
	if err != nil {
		logger.Error("login failed: %v", err)
		ps.notify(NotifyError, "Login failed. Please check your credentials.")
		return err
	}

	rawToken, err := api.Field(data, "token")
	if err != nil {
		logger.Protocol("login: %v", err)
		ps.notify(NotifyError, "Login failed. Please check your credentials.")
		return err
	}
	var token string
	if err := api.Bind(rawToken, &token); err != nil {
		logger.Protocol("login: %v", err)
		ps.notify(NotifyError, "Login failed. Please check your credentials.")
		return err
	}

	rawUser, err := api.Field(data, "user")
	if err != nil {
		logger.Protocol("login: %v", err)
		ps.notify(NotifyError, "Login failed. Please check your credentials.")
		return err
	}
	var user model.UserProfile
	if err := api.Bind(rawUser, &user); err != nil {
		logger.Protocol("login: %v", err)
		ps.notify(NotifyError, "Login failed. Please check your credentials.")
		return err
	}

	ps.session.Tokens.Set(token)
	ps.session.ViewerID = user.ID
	logger.Success("logged in as %s", user.FullName())
	return nil
}

// Logout invalide la session côté serveur puis efface le token et l'état
// local. Le store revient à unloaded.
func (ps *ProfileStore) Logout(ctx context.Context) error {
	token := ps.session.Token()
	if token != "" {
		if _, err := ps.client.Call(ctx, http.MethodPost, "/auth/logout", nil, token); err != nil {
			// Le logout local a lieu même si le serveur est injoignable
			logger.Warning("server logout failed: %v", err)
		}
	}

	ps.session.Tokens.Clear()
	ps.session.ViewerID = ""

	ps.mu.Lock()
	if ps.closed {
		ps.mu.Unlock()
		return ErrClosed
	}
	fanout := ps.dispatchLocked(Action{
		Name:  "logout",
		Phase: PhaseConfirmed,
		Apply: func(next *Snapshot) {
			*next = Snapshot{Status: StatusUnloaded}
		},
	})
	ps.mu.Unlock()
	fanout()
	return nil
}
