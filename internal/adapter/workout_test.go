package adapter

import (
	"testing"
	"time"

	model "github.com/MassBabyGeek/PumpPro-client/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToWorkoutView(t *testing.T) {
	completedAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	t.Run("maps generic fields to fitness view", func(t *testing.T) {
		calories := 250.0
		record := model.LearningUpdate{
			ID:             "lu_1",
			Title:          "Morning run",
			Description:    "5k around the park",
			Category:       model.CategoryCardio,
			Difficulty:     model.IntensityMedium,
			HoursSpent:     30,
			SkillsLearned:  []string{"cardio", "legs"},
			CaloriesBurned: &calories,
			CompletedAt:    completedAt,
		}

		view := ToWorkoutView(record)

		assert.Equal(t, "lu_1", view.ID)
		assert.Equal(t, "Morning run", view.WorkoutName)
		assert.Equal(t, model.CategoryCardio, view.Category)
		assert.Equal(t, model.IntensityMedium, view.Intensity)
		assert.Equal(t, 30.0, view.Duration)
		assert.Equal(t, []string{"cardio", "legs"}, view.MuscleGroups)
		require.NotNil(t, view.CaloriesBurned)
		assert.Equal(t, 250.0, *view.CaloriesBurned)
		assert.Equal(t, completedAt, view.CompletedAt)
	})

	t.Run("falls back to resource name when title is empty", func(t *testing.T) {
		view := ToWorkoutView(model.LearningUpdate{ResourceName: "Bench press"})
		assert.Equal(t, "Bench press", view.WorkoutName)
	})

	t.Run("title wins over resource name", func(t *testing.T) {
		view := ToWorkoutView(model.LearningUpdate{Title: "Deadlift", ResourceName: "Other"})
		assert.Equal(t, "Deadlift", view.WorkoutName)
	})

	t.Run("missing skills become empty slice, not nil", func(t *testing.T) {
		view := ToWorkoutView(model.LearningUpdate{Title: "Stretching"})
		require.NotNil(t, view.MuscleGroups)
		assert.Empty(t, view.MuscleGroups)
	})

	t.Run("missing calories stay nil", func(t *testing.T) {
		view := ToWorkoutView(model.LearningUpdate{Title: "Stretching"})
		assert.Nil(t, view.CaloriesBurned)
	})
}

func TestToLearningUpdate(t *testing.T) {
	t.Run("workout name fills both title and resource name", func(t *testing.T) {
		record := ToLearningUpdate(model.WorkoutUpdate{WorkoutName: "HIIT session"})
		assert.Equal(t, "HIIT session", record.Title)
		assert.Equal(t, "HIIT session", record.ResourceName)
	})

	t.Run("calories carried through untouched", func(t *testing.T) {
		calories := 410.5
		record := ToLearningUpdate(model.WorkoutUpdate{
			WorkoutName:    "Rowing",
			CaloriesBurned: &calories,
		})
		require.NotNil(t, record.CaloriesBurned)
		assert.Equal(t, 410.5, *record.CaloriesBurned)
	})

	t.Run("round trip preserves the view", func(t *testing.T) {
		calories := 180.0
		view := model.WorkoutUpdate{
			ID:             "lu_42",
			WorkoutName:    "Leg day",
			Description:    "Squats and lunges",
			Category:       model.CategoryStrength,
			MuscleGroups:   []string{"legs", "glutes"},
			Duration:       45,
			Intensity:      model.IntensityHigh,
			CaloriesBurned: &calories,
			CompletedAt:    time.Date(2026, 5, 2, 18, 0, 0, 0, time.UTC),
		}

		back := ToWorkoutView(ToLearningUpdate(view))
		if diff := cmp.Diff(view, back); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestToWorkoutViews(t *testing.T) {
	views := ToWorkoutViews([]model.LearningUpdate{
		{ID: "a", Title: "One"},
		{ID: "b", ResourceName: "Two"},
	})

	require.Len(t, views, 2)
	assert.Equal(t, "One", views[0].WorkoutName)
	assert.Equal(t, "Two", views[1].WorkoutName)

	assert.NotNil(t, ToWorkoutViews(nil))
	assert.Empty(t, ToWorkoutViews(nil))
}
