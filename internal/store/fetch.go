package store

import (
	"context"
	"net/http"

	"github.com/MassBabyGeek/PumpPro-client/internal/adapter"
	"github.com/MassBabyGeek/PumpPro-client/internal/api"
	"github.com/MassBabyGeek/PumpPro-client/internal/logger"
	model "github.com/MassBabyGeek/PumpPro-client/internal/models"
)

// LoadProfile charge (ou recharge) la vue profil d'un sujet. Un subjectID
// vide charge le profil du viewer. Changer de sujet est une remise à zéro
// complète : toutes les collections sont vidées avant le moindre fetch,
// aucune donnée de l'ancien sujet ne reste visible.
func (ps *ProfileStore) LoadProfile(ctx context.Context, subjectID string) error {
	ps.mu.Lock()
	if ps.closed {
		ps.mu.Unlock()
		return ErrClosed
	}
	fanout := ps.dispatchLocked(Action{
		Name:  "load-profile",
		Phase: PhaseConfirmed,
		Apply: func(next *Snapshot) {
			*next = Snapshot{Status: StatusLoading}
		},
	})
	ps.mu.Unlock()
	fanout()

	token := ps.session.Token()

	// Profil du viewer courant
	var viewer model.UserProfile
	data, err := ps.client.Call(ctx, http.MethodGet, "/users/profile", nil, token)
	if err == nil {
		err = api.Bind(data, &viewer)
	}
	if err != nil {
		ps.failInitialLoad("Failed to load user data. Please try again.", err)
		return err
	}
	ps.session.ViewerID = viewer.ID

	// Profil du sujet consulté
	subject := viewer
	if subjectID != "" && subjectID != viewer.ID {
		data, err = ps.client.Call(ctx, http.MethodGet, "/users/"+subjectID, nil, token)
		if err == nil {
			subject = model.UserProfile{}
			err = api.Bind(data, &subject)
		}
		if err != nil {
			ps.failInitialLoad("Failed to load user profile. Please try again.", err)
			return err
		}
	}

	// Posts et journal de workouts du sujet. Leur échec n'est pas fatal :
	// la collection reste vide et une notification est émise.
	var posts []model.Post
	if data, err := ps.client.Call(ctx, http.MethodGet, "/posts/user/"+subject.ID, nil, token); err != nil {
		logger.Error("could not fetch posts: %v", err)
		ps.notify(NotifyError, "Failed to load posts")
	} else if err := api.Bind(data, &posts); err != nil {
		logger.Protocol("posts payload: %v", err)
		ps.notify(NotifyError, "Failed to load posts")
		posts = nil
	}

	var updates []model.WorkoutUpdate
	if data, err := ps.client.Call(ctx, http.MethodGet, "/learning/updates/user/"+subject.ID, nil, token); err != nil {
		logger.Error("could not fetch workout updates: %v", err)
		ps.notify(NotifyError, "Failed to load workout updates")
	} else {
		var records []model.LearningUpdate
		if err := api.Bind(data, &records); err != nil {
			logger.Protocol("workout updates payload: %v", err)
			ps.notify(NotifyError, "Failed to load workout updates")
		} else {
			updates = adapter.ToWorkoutViews(records)
		}
	}

	ps.mu.Lock()
	if ps.closed {
		ps.mu.Unlock()
		return ErrClosed
	}

	fanout = ps.dispatchLocked(Action{
		Name:  "load-profile",
		Phase: PhaseConfirmed,
		Apply: func(next *Snapshot) {
			next.Status = StatusReady
			next.Viewer = viewer
			next.Subject = subject
			next.Posts = posts
			next.WorkoutUpdates = updates
			if next.IsOwnProfile() {
				next.EditForm = model.EditFromProfile(subject)
			}
		},
	})
	ps.mu.Unlock()
	fanout()
	return nil
}

// failInitialLoad passe le store en erreur. Seul l'échec du chargement
// initial produit cette transition ; les mutations ultérieures qui échouent
// laissent le store en ready.
func (ps *ProfileStore) failInitialLoad(message string, err error) {
	logger.Error("initial load failed: %v", err)

	ps.mu.Lock()
	if ps.closed {
		ps.mu.Unlock()
		return
	}
	fanout := ps.dispatchLocked(Action{
		Name:  "load-profile",
		Phase: PhaseConfirmed,
		Apply: func(next *Snapshot) {
			next.Status = StatusError
		},
	})
	ps.mu.Unlock()
	fanout()
	ps.notify(NotifyError, message)
}

// LoadFollowers recharge le cache des followers du sujet. Le fetch écrase
// le cache précédent, il ne fusionne pas.
func (ps *ProfileStore) LoadFollowers(ctx context.Context) error {
	return ps.loadFollowList(ctx, "followers")
}

// LoadFollowing recharge le cache des suivis du sujet
func (ps *ProfileStore) LoadFollowing(ctx context.Context) error {
	return ps.loadFollowList(ctx, "following")
}

func (ps *ProfileStore) loadFollowList(ctx context.Context, kind string) error {
	snapshot := ps.Snapshot()
	if snapshot.Status != StatusReady {
		return &api.ValidationError{Message: "profile is not loaded"}
	}
	subjectID := snapshot.Subject.ID

	data, err := ps.client.Call(ctx, http.MethodGet, "/users/"+kind+"/"+subjectID, nil, ps.session.Token())
	if err != nil {
		logger.Error("could not fetch %s: %v", kind, err)
		ps.notify(NotifyError, "Failed to fetch "+kind)
		return err
	}

	var users []model.FollowUser
	if err := api.Bind(data, &users); err != nil {
		logger.Protocol("%s payload: %v", kind, err)
		ps.notify(NotifyError, "Failed to fetch "+kind)
		return err
	}
	if users == nil {
		users = []model.FollowUser{}
	}

	ps.mu.Lock()
	if ps.closed {
		ps.mu.Unlock()
		return ErrClosed
	}
	fanout := ps.dispatchLocked(Action{
		Name:  "load-" + kind,
		Phase: PhaseConfirmed,
		Apply: func(next *Snapshot) {
			if kind == "followers" {
				next.Followers = users
			} else {
				next.Following = users
			}
		},
	})
	ps.mu.Unlock()
	fanout()
	return nil
}
