// Package store détient l'instantané canonique d'une vue profil et le
// protocole de mutation optimiste qui le fait évoluer : application locale
// tentative, appel distant, réconciliation ou rollback.
package store

import (
	"errors"
	"sync"

	"github.com/MassBabyGeek/PumpPro-client/internal/api"
	"github.com/MassBabyGeek/PumpPro-client/internal/logger"
	"github.com/MassBabyGeek/PumpPro-client/internal/services"
	"github.com/MassBabyGeek/PumpPro-client/internal/session"
)

// NotificationLevel qualifie une notification utilisateur
type NotificationLevel string

const (
	NotifySuccess NotificationLevel = "success"
	NotifyError   NotificationLevel = "error"
)

// Notification est le toast présenté à l'utilisateur après une opération
type Notification struct {
	Level   NotificationLevel
	Message string
}

// Listener reçoit un instantané après chaque transition commitée
type Listener func(Snapshot)

// Notifier reçoit les notifications utilisateur émises par le store
type Notifier func(Notification)

// ProfileStore possède l'état d'une vue profil pour la durée de sa
// consultation. Changer de sujet vide tout et recharge : aucune donnée
// d'un sujet précédent ne survit.
type ProfileStore struct {
	mu sync.Mutex

	client   *api.Client
	uploader services.Uploader
	session  *session.Session

	state     Snapshot
	listeners map[int]Listener
	nextID    int
	notifier  Notifier
	closed    bool
}

// New crée un store vide lié à un client API, un uploader et une session
func New(client *api.Client, uploader services.Uploader, sess *session.Session, notifier Notifier) *ProfileStore {
	return &ProfileStore{
		client:    client,
		uploader:  uploader,
		session:   sess,
		state:     Snapshot{Status: StatusUnloaded},
		listeners: make(map[int]Listener),
		notifier:  notifier,
	}
}

// Snapshot retourne une copie de l'état courant
func (ps *ProfileStore) Snapshot() Snapshot {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.state.clone()
}

// Session retourne la session liée au store
func (ps *ProfileStore) Session() *session.Session {
	return ps.session
}

// Subscribe enregistre un listener notifié après chaque transition.
// Retourne la fonction de désinscription.
func (ps *ProfileStore) Subscribe(l Listener) func() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	id := ps.nextID
	ps.nextID++
	ps.listeners[id] = l

	return func() {
		ps.mu.Lock()
		defer ps.mu.Unlock()
		delete(ps.listeners, id)
	}
}

// Close marque le store comme démonté. Les réconciliations d'appels encore
// en vol deviennent des no-op au lieu de toucher un état mort.
func (ps *ProfileStore) Close() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.closed = true
	ps.listeners = make(map[int]Listener)
}

// ErrClosed est retourné quand une opération est lancée sur un store fermé
var ErrClosed = errors.New("store is closed")

// dispatchLocked applique une action et retourne la diffusion aux listeners,
// à exécuter après avoir relâché ps.mu : un listener peut ainsi relire le
// store (Snapshot, Subscribe, mutation) depuis son callback sans interblocage.
// Appelé avec ps.mu tenu.
func (ps *ProfileStore) dispatchLocked(action Action) func() {
	if ps.closed {
		return func() {}
	}

	ps.state = reduce(ps.state, action)

	snapshot := ps.state.clone()
	listeners := make([]Listener, 0, len(ps.listeners))
	for _, l := range ps.listeners {
		listeners = append(listeners, l)
	}
	return func() {
		for _, l := range listeners {
			l(snapshot)
		}
	}
}

// notify émet une notification utilisateur. Appelé hors verrou : le notifier
// peut relire le store depuis son callback.
func (ps *ProfileStore) notify(level NotificationLevel, message string) {
	if ps.notifier != nil {
		ps.notifier(Notification{Level: level, Message: message})
	}
	if level == NotifyError {
		logger.Warning("%s", message)
	}
}
