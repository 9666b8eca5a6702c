package store

import (
	"github.com/MassBabyGeek/PumpPro-client/internal/achievements"
	model "github.com/MassBabyGeek/PumpPro-client/internal/models"
	"github.com/jinzhu/copier"
)

// Status représente l'état de chargement du profil consulté
type Status string

const (
	StatusUnloaded Status = "unloaded"
	StatusLoading  Status = "loading"
	StatusReady    Status = "ready"
	StatusError    Status = "error"
)

// QuickStats regroupe les compteurs affichés dans la barre de stats
type QuickStats struct {
	Posts     int `json:"posts"`
	Followers int `json:"followers"`
	Following int `json:"following"`
}

// WorkoutSummary regroupe les compteurs du résumé de workouts
type WorkoutSummary struct {
	TotalWorkouts int     `json:"totalWorkouts"`
	TotalMinutes  float64 `json:"totalMinutes"`
	MuscleGroups  int     `json:"muscleGroups"`
	HighIntensity int     `json:"highIntensity"`
}

// Snapshot est l'instantané canonique de l'état d'une vue profil.
// Le store en est l'unique propriétaire : toute mutation passe par le
// reducer, jamais par modification directe.
type Snapshot struct {
	Status Status

	Viewer  model.UserProfile
	Subject model.UserProfile

	// EditForm est distinct du profil live tant que l'édition n'est pas soumise
	EditForm model.ProfileEdit

	Posts          []model.Post
	WorkoutUpdates []model.WorkoutUpdate

	// Caches de listes follow : le dernier fetch écrase, pas de fusion
	Followers []model.FollowUser
	Following []model.FollowUser

	// Vues dérivées, recalculées à chaque transition, jamais mutées seules
	Achievements []model.Achievement
	QuickStats   QuickStats
	Summary      WorkoutSummary
}

// IsOwnProfile indique si le viewer consulte son propre profil
func (s *Snapshot) IsOwnProfile() bool {
	return s.Viewer.ID != "" && s.Viewer.ID == s.Subject.ID
}

// FindPost retourne l'index du post donné, -1 si absent
func (s *Snapshot) FindPost(postID string) int {
	for i := range s.Posts {
		if s.Posts[i].ID == postID {
			return i
		}
	}
	return -1
}

// FindWorkoutUpdate retourne l'index du workout donné, -1 si absent
func (s *Snapshot) FindWorkoutUpdate(updateID string) int {
	for i := range s.WorkoutUpdates {
		if s.WorkoutUpdates[i].ID == updateID {
			return i
		}
	}
	return -1
}

// clone produit une copie profonde de l'instantané, support du rollback
func (s Snapshot) clone() Snapshot {
	var copied Snapshot
	if err := copier.CopyWithOption(&copied, &s, copier.Option{DeepCopy: true}); err != nil {
		// copier n'échoue pas sur des structs de données simples ;
		// en dernier recours la copie superficielle reste cohérente
		copied = s
	}
	return copied
}

// recomputeDerived recalcule les vues dérivées depuis les collections
func recomputeDerived(s *Snapshot) {
	s.Achievements = achievements.Evaluate(s.WorkoutUpdates)

	s.QuickStats = QuickStats{
		Posts:     len(s.Posts),
		Followers: s.Subject.FollowersCount,
		Following: s.Subject.FollowingCount,
	}

	muscles := make(map[string]struct{})
	summary := WorkoutSummary{TotalWorkouts: len(s.WorkoutUpdates)}
	for _, update := range s.WorkoutUpdates {
		summary.TotalMinutes += update.Duration
		for _, muscle := range update.MuscleGroups {
			muscles[muscle] = struct{}{}
		}
		if update.Intensity == model.IntensityHigh {
			summary.HighIntensity++
		}
	}
	summary.MuscleGroups = len(muscles)
	s.Summary = summary
}
