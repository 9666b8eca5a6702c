// Package adapter convertit entre la forme générique stockée par le backend
// (LearningUpdate) et la vue fitness affichée par l'app (WorkoutUpdate).
// Transformation pure, tolérante aux champs absents : les optionnels
// manquants prennent une valeur par défaut définie, jamais un zéro ambigu.
package adapter

import (
	model "github.com/MassBabyGeek/PumpPro-client/internal/models"
)

// ToWorkoutView convertit un enregistrement générique en vue fitness.
// L'id est stable : il traverse la conversion inchangé.
func ToWorkoutView(record model.LearningUpdate) model.WorkoutUpdate {
	name := record.Title
	if name == "" {
		name = record.ResourceName
	}

	muscleGroups := record.SkillsLearned
	if muscleGroups == nil {
		muscleGroups = []string{}
	}

	return model.WorkoutUpdate{
		ID:             record.ID,
		WorkoutName:    name,
		Description:    record.Description,
		Category:       record.Category,
		MuscleGroups:   muscleGroups,
		Duration:       record.HoursSpent,
		Intensity:      record.Difficulty,
		CaloriesBurned: record.CaloriesBurned,
		CompletedAt:    record.CompletedAt,
	}
}

// ToLearningUpdate convertit une vue fitness en enregistrement générique.
// CaloriesBurned n'est pas saisi par les formulaires fitness mais peut venir
// du backend : la valeur est transportée telle quelle, pas écartée.
func ToLearningUpdate(view model.WorkoutUpdate) model.LearningUpdate {
	skills := view.MuscleGroups
	if skills == nil {
		skills = []string{}
	}

	return model.LearningUpdate{
		ID:             view.ID,
		Title:          view.WorkoutName,
		ResourceName:   view.WorkoutName,
		Description:    view.Description,
		Category:       view.Category,
		Difficulty:     view.Intensity,
		HoursSpent:     view.Duration,
		SkillsLearned:  skills,
		CaloriesBurned: view.CaloriesBurned,
		CompletedAt:    view.CompletedAt,
	}
}

// ToWorkoutViews convertit une collection complète
func ToWorkoutViews(records []model.LearningUpdate) []model.WorkoutUpdate {
	views := make([]model.WorkoutUpdate, 0, len(records))
	for _, record := range records {
		views = append(views, ToWorkoutView(record))
	}
	return views
}
