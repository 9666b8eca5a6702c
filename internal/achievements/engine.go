// Package achievements dérive les badges fitness du journal de workouts.
// Fonction pure : même collection en entrée, même séquence en sortie.
package achievements

import (
	"time"

	model "github.com/MassBabyGeek/PumpPro-client/internal/models"
)

// Seuils des règles
const (
	balancedMuscleGroups = 5
	addictWorkoutCount   = 10
	consistentDays       = 30
	enduranceMinutes     = 500
)

// Evaluate calcule la séquence d'achievements pour un journal de workouts.
// L'ordre de sortie est fixe et défini par les règles, indépendant de
// l'ordre de la collection. Chaque règle est évaluée sur la collection
// entière ; une collection vide ne produit jamais d'erreur.
func Evaluate(updates []model.WorkoutUpdate) []model.Achievement {
	return []model.Achievement{
		{
			Title:    "First Workout",
			Icon:     "bx-trophy",
			Color:    "text-yellow-500",
			Achieved: len(updates) > 0,
		},
		{
			Title:    "Balanced Trainer",
			Icon:     "bx-body",
			Color:    "text-purple-500",
			Achieved: distinctMuscleGroups(updates) >= balancedMuscleGroups,
		},
		{
			Title:    "Fitness Addict",
			Icon:     "bx-heart",
			Color:    "text-blue-500",
			Achieved: len(updates) >= addictWorkoutCount,
		},
		{
			Title:    "Consistent Athlete",
			Icon:     "bx-calendar-check",
			Color:    "text-green-500",
			Achieved: daySpread(updates) >= consistentDays,
		},
		{
			Title:    "Endurance Master",
			Icon:     "bx-time",
			Color:    "text-pink-500",
			Achieved: totalMinutes(updates) >= enduranceMinutes,
		},
		{
			Title:    "Intensity Champion",
			Icon:     "bx-flame",
			Color:    "text-red-500",
			Achieved: hasHighIntensity(updates),
		},
	}
}

// distinctMuscleGroups compte les groupes musculaires distincts sur tout le journal
func distinctMuscleGroups(updates []model.WorkoutUpdate) int {
	seen := make(map[string]struct{})
	for _, update := range updates {
		for _, muscle := range update.MuscleGroups {
			seen[muscle] = struct{}{}
		}
	}
	return len(seen)
}

// daySpread retourne l'écart en jours calendaires entre le workout le plus
// ancien et le plus récent. Avec moins de 2 workouts la règle "Consistent
// Athlete" n'est jamais atteinte : l'écart vaut 0.
func daySpread(updates []model.WorkoutUpdate) int {
	if len(updates) < 2 {
		return 0
	}

	earliest := truncateToDay(updates[0].CompletedAt)
	latest := earliest
	for _, update := range updates[1:] {
		day := truncateToDay(update.CompletedAt)
		if day.Before(earliest) {
			earliest = day
		}
		if day.After(latest) {
			latest = day
		}
	}

	return int(latest.Sub(earliest).Hours() / 24)
}

// truncateToDay ramène un instant au minuit du même jour
func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// totalMinutes additionne la durée de tous les workouts.
// Une durée absente compte pour 0, elle n'invalide pas la somme.
func totalMinutes(updates []model.WorkoutUpdate) float64 {
	var total float64
	for _, update := range updates {
		total += update.Duration
	}
	return total
}

func hasHighIntensity(updates []model.WorkoutUpdate) bool {
	for _, update := range updates {
		if update.Intensity == model.IntensityHigh {
			return true
		}
	}
	return false
}
