package store

// Phase distingue les variantes explicites du protocole optimiste :
// application tentative, confirmation serveur, retour arrière
type Phase int

const (
	PhasePending Phase = iota
	PhaseConfirmed
	PhaseRolledBack
)

// Action est une transition du store. Apply décrit l'effet (tentatif ou
// confirmé) ; Restore porte l'instantané pré-mutation pour le rollback.
type Action struct {
	Name    string
	Phase   Phase
	Apply   func(next *Snapshot)
	Restore *Snapshot
}

// reduce applique une action et retourne le nouvel état. L'état courant
// n'est jamais modifié en place : chaque transition part d'une copie, les
// vues dérivées sont recalculées avant de rendre la main.
func reduce(current Snapshot, action Action) Snapshot {
	if action.Phase == PhaseRolledBack {
		if action.Restore == nil {
			return current
		}
		next := action.Restore.clone()
		recomputeDerived(&next)
		return next
	}

	next := current.clone()
	if action.Apply != nil {
		action.Apply(&next)
	}
	recomputeDerived(&next)
	return next
}
