package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/MassBabyGeek/PumpPro-client/internal/api"
	"github.com/MassBabyGeek/PumpPro-client/internal/logger"
)

// mutation décrit une action mutante sous la forme générique du protocole
// optimiste. Chaque étape est un champ : précondition locale, effet
// tentatif, appel distant, réconciliation avec le payload serveur.
type mutation struct {
	name string

	// validate vérifie les préconditions locales ; en échec, aucun appel
	// réseau n'est émis. Appelé sous verrou : c'est aussi l'endroit où
	// capturer l'état pré-mutation dont l'appel distant a besoin.
	validate func(s *Snapshot) error

	// tentative applique l'effet optimiste sur l'instantané
	tentative func(next *Snapshot)

	// call émet l'appel distant, hors verrou
	call func(ctx context.Context) (json.RawMessage, error)

	// reconcile interprète le payload confirmé et retourne l'effet à
	// commiter. Un champ attendu absent est une ProtocolError : rollback,
	// jamais un succès silencieux.
	reconcile func(data json.RawMessage) (func(next *Snapshot), error)

	// success construit la notification de succès (après commit)
	success func() string

	// failureMessage est la notification spécifique à l'action en échec
	failureMessage string
}

// run déroule le protocole : validation, application tentative immédiate,
// appel distant, réconciliation ou rollback. Exactement une notification
// d'échec est émise par mutation échouée ; l'échec d'une mutation ne touche
// jamais les champs du store étrangers à son effet.
func (ps *ProfileStore) run(ctx context.Context, m mutation) error {
	ps.mu.Lock()
	if ps.closed {
		ps.mu.Unlock()
		return ErrClosed
	}

	if ps.state.Status != StatusReady {
		ps.mu.Unlock()
		err := &api.ValidationError{Message: "profile is not loaded"}
		ps.notify(NotifyError, m.failureMessage)
		return err
	}

	if m.validate != nil {
		if err := m.validate(&ps.state); err != nil {
			ps.mu.Unlock()
			ps.notify(NotifyError, err.Error())
			return err
		}
	}

	// Instantané pré-mutation, base du rollback
	saved := ps.state.clone()
	fanout := ps.dispatchLocked(Action{Name: m.name, Phase: PhasePending, Apply: m.tentative})
	ps.mu.Unlock()
	fanout()

	// Point de suspension : l'appel distant s'exécute hors verrou
	data, callErr := m.call(ctx)

	ps.mu.Lock()

	// Le composant a pu être démonté pendant l'appel : ne pas toucher
	// un état mort
	if ps.closed {
		ps.mu.Unlock()
		return ErrClosed
	}

	if callErr != nil {
		fanout = ps.dispatchLocked(Action{Name: m.name, Phase: PhaseRolledBack, Restore: &saved})
		ps.mu.Unlock()
		fanout()
		logger.Error("%s failed: %v", m.name, callErr)
		ps.notify(NotifyError, m.failureMessage)
		return callErr
	}

	var commit func(next *Snapshot)
	if m.reconcile != nil {
		var err error
		commit, err = m.reconcile(data)
		if err != nil {
			fanout = ps.dispatchLocked(Action{Name: m.name, Phase: PhaseRolledBack, Restore: &saved})
			ps.mu.Unlock()
			fanout()
			var protocolErr *api.ProtocolError
			if errors.As(err, &protocolErr) {
				logger.Protocol("%s: %v", m.name, err)
			} else {
				logger.Error("%s failed: %v", m.name, err)
			}
			ps.notify(NotifyError, m.failureMessage)
			return err
		}
	}

	fanout = ps.dispatchLocked(Action{Name: m.name, Phase: PhaseConfirmed, Apply: commit})
	ps.mu.Unlock()
	fanout()

	if m.success != nil {
		ps.notify(NotifySuccess, m.success())
	}
	return nil
}
