package achievements

import (
	"fmt"
	"testing"
	"time"

	model "github.com/MassBabyGeek/PumpPro-client/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// achievedSet extrait les titres des badges obtenus
func achievedSet(achievements []model.Achievement) map[string]bool {
	set := make(map[string]bool)
	for _, a := range achievements {
		if a.Achieved {
			set[a.Title] = true
		}
	}
	return set
}

func TestEvaluateEmptyJournal(t *testing.T) {
	achievements := Evaluate(nil)

	require.Len(t, achievements, 6)
	for _, a := range achievements {
		assert.False(t, a.Achieved, "empty journal must not unlock %q", a.Title)
	}
}

func TestEvaluateOrderIsStable(t *testing.T) {
	wantOrder := []string{
		"First Workout",
		"Balanced Trainer",
		"Fitness Addict",
		"Consistent Athlete",
		"Endurance Master",
		"Intensity Champion",
	}

	for _, updates := range [][]model.WorkoutUpdate{
		nil,
		{{WorkoutName: "A", Duration: 10}},
	} {
		achievements := Evaluate(updates)
		require.Len(t, achievements, len(wantOrder))
		for i, title := range wantOrder {
			assert.Equal(t, title, achievements[i].Title)
		}
	}
}

func TestEvaluateSingleWorkout(t *testing.T) {
	updates := []model.WorkoutUpdate{{
		WorkoutName:  "Leg day",
		MuscleGroups: []string{"legs", "core"},
		Duration:     40,
		Intensity:    model.IntensityHigh,
		CompletedAt:  time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
	}}

	achieved := achievedSet(Evaluate(updates))

	assert.True(t, achieved["First Workout"])
	assert.True(t, achieved["Intensity Champion"])
	assert.False(t, achieved["Balanced Trainer"])
	assert.False(t, achieved["Fitness Addict"])
	assert.False(t, achieved["Consistent Athlete"])
	assert.False(t, achieved["Endurance Master"])
}

func TestBalancedTrainerCountsDistinctGroups(t *testing.T) {
	// 5 mentions mais 2 groupes distincts : pas de badge
	repeated := []model.WorkoutUpdate{
		{WorkoutName: "A", MuscleGroups: []string{"legs", "core", "legs"}},
		{WorkoutName: "B", MuscleGroups: []string{"core", "legs"}},
	}
	assert.False(t, achievedSet(Evaluate(repeated))["Balanced Trainer"])

	distinct := []model.WorkoutUpdate{
		{WorkoutName: "A", MuscleGroups: []string{"legs", "core", "back"}},
		{WorkoutName: "B", MuscleGroups: []string{"chest", "shoulders"}},
	}
	assert.True(t, achievedSet(Evaluate(distinct))["Balanced Trainer"])
}

func TestFitnessAddictThreshold(t *testing.T) {
	journal := func(n int) []model.WorkoutUpdate {
		updates := make([]model.WorkoutUpdate, n)
		for i := range updates {
			updates[i] = model.WorkoutUpdate{WorkoutName: fmt.Sprintf("w%d", i)}
		}
		return updates
	}

	assert.False(t, achievedSet(Evaluate(journal(9)))["Fitness Addict"])
	assert.True(t, achievedSet(Evaluate(journal(10)))["Fitness Addict"])
}

func TestConsistentAthleteDaySpread(t *testing.T) {
	day := func(offset int) time.Time {
		return time.Date(2026, 1, 1, 23, 50, 0, 0, time.UTC).AddDate(0, 0, offset)
	}

	t.Run("single workout never qualifies", func(t *testing.T) {
		updates := []model.WorkoutUpdate{{WorkoutName: "A", CompletedAt: day(0)}}
		assert.False(t, achievedSet(Evaluate(updates))["Consistent Athlete"])
	})

	t.Run("29 calendar days is not enough", func(t *testing.T) {
		updates := []model.WorkoutUpdate{
			{WorkoutName: "A", CompletedAt: day(0)},
			{WorkoutName: "B", CompletedAt: day(29)},
		}
		assert.False(t, achievedSet(Evaluate(updates))["Consistent Athlete"])
	})

	t.Run("30 calendar days qualifies", func(t *testing.T) {
		updates := []model.WorkoutUpdate{
			{WorkoutName: "A", CompletedAt: day(0)},
			{WorkoutName: "B", CompletedAt: day(30)},
		}
		assert.True(t, achievedSet(Evaluate(updates))["Consistent Athlete"])
	})

	t.Run("spread ignores time of day", func(t *testing.T) {
		// 23h50 -> 00h10 trente jours plus tard : l'écart horaire brut est
		// sous les 30 jours mais l'écart calendaire vaut bien 30
		updates := []model.WorkoutUpdate{
			{WorkoutName: "A", CompletedAt: time.Date(2026, 1, 1, 23, 50, 0, 0, time.UTC)},
			{WorkoutName: "B", CompletedAt: time.Date(2026, 1, 31, 0, 10, 0, 0, time.UTC)},
		}
		assert.True(t, achievedSet(Evaluate(updates))["Consistent Athlete"])
	})

	t.Run("order of the journal does not matter", func(t *testing.T) {
		updates := []model.WorkoutUpdate{
			{WorkoutName: "B", CompletedAt: day(30)},
			{WorkoutName: "C", CompletedAt: day(12)},
			{WorkoutName: "A", CompletedAt: day(0)},
		}
		assert.True(t, achievedSet(Evaluate(updates))["Consistent Athlete"])
	})
}

func TestEnduranceMasterBoundary(t *testing.T) {
	updates := []model.WorkoutUpdate{
		{WorkoutName: "A", Duration: 250},
		{WorkoutName: "B", Duration: 249},
	}
	assert.False(t, achievedSet(Evaluate(updates))["Endurance Master"])

	// La borne est inclusive : 500 minutes pile suffisent
	updates[1].Duration = 250
	assert.True(t, achievedSet(Evaluate(updates))["Endurance Master"])
}

func TestIntensityChampion(t *testing.T) {
	updates := []model.WorkoutUpdate{
		{WorkoutName: "A", Intensity: model.IntensityLow},
		{WorkoutName: "B", Intensity: model.IntensityMedium},
	}
	assert.False(t, achievedSet(Evaluate(updates))["Intensity Champion"])

	updates = append(updates, model.WorkoutUpdate{WorkoutName: "C", Intensity: model.IntensityHigh})
	assert.True(t, achievedSet(Evaluate(updates))["Intensity Champion"])
}

func TestEvaluateIsMonotoneOnAppend(t *testing.T) {
	// Ajouter un workout ne retire jamais un badge déjà obtenu
	base := []model.WorkoutUpdate{
		{WorkoutName: "A", MuscleGroups: []string{"legs", "core", "back", "chest", "arms"},
			Duration: 500, Intensity: model.IntensityHigh,
			CompletedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{WorkoutName: "B", CompletedAt: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)},
	}
	before := achievedSet(Evaluate(base))

	extended := append(base, model.WorkoutUpdate{WorkoutName: "C", Duration: 5})
	after := achievedSet(Evaluate(extended))

	for title := range before {
		assert.True(t, after[title], "%q lost after appending a workout", title)
	}
}
