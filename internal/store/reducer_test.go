package store

import (
	"testing"

	model "github.com/MassBabyGeek/PumpPro-client/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readySnapshot() Snapshot {
	s := Snapshot{
		Status:  StatusReady,
		Viewer:  model.UserProfile{ID: "u_1", FirstName: "Lucas"},
		Subject: model.UserProfile{ID: "u_1", FirstName: "Lucas", FollowersCount: 3, FollowingCount: 2},
		Posts: []model.Post{
			{ID: "p_1", UserID: "u_1", Content: "hello", Likes: []string{}, Comments: []model.Comment{}},
		},
		WorkoutUpdates: []model.WorkoutUpdate{
			{ID: "w_1", WorkoutName: "Run", MuscleGroups: []string{"legs"}, Duration: 30, Intensity: model.IntensityHigh},
		},
	}
	recomputeDerived(&s)
	return s
}

func TestReduceNeverMutatesInPlace(t *testing.T) {
	current := readySnapshot()

	next := reduce(current, Action{
		Name:  "like-post",
		Phase: PhasePending,
		Apply: func(s *Snapshot) {
			s.Posts[0].AddLike("u_2")
		},
	})

	assert.Empty(t, current.Posts[0].Likes, "current snapshot must stay untouched")
	assert.Equal(t, []string{"u_2"}, next.Posts[0].Likes)
}

func TestReduceRecomputesDerivedViews(t *testing.T) {
	current := readySnapshot()
	assert.Equal(t, 1, current.QuickStats.Posts)
	assert.Equal(t, 1, current.Summary.TotalWorkouts)

	next := reduce(current, Action{
		Name:  "add-workout",
		Phase: PhasePending,
		Apply: func(s *Snapshot) {
			s.WorkoutUpdates = append(s.WorkoutUpdates, model.WorkoutUpdate{
				ID: "w_2", WorkoutName: "Swim", MuscleGroups: []string{"back", "arms"}, Duration: 470,
			})
		},
	})

	assert.Equal(t, 2, next.Summary.TotalWorkouts)
	assert.Equal(t, 500.0, next.Summary.TotalMinutes)
	assert.Equal(t, 3, next.Summary.MuscleGroups)

	// Les badges suivent la collection
	achieved := map[string]bool{}
	for _, a := range next.Achievements {
		achieved[a.Title] = a.Achieved
	}
	assert.True(t, achieved["Endurance Master"])
	assert.True(t, achieved["Intensity Champion"])
}

func TestReduceRollbackRestoresSavedSnapshot(t *testing.T) {
	initial := readySnapshot()
	saved := initial.clone()

	pending := reduce(initial, Action{
		Name:  "delete-workout",
		Phase: PhasePending,
		Apply: func(s *Snapshot) {
			s.WorkoutUpdates = nil
		},
	})
	require.Empty(t, pending.WorkoutUpdates)
	require.Equal(t, 0, pending.Summary.TotalWorkouts)

	restored := reduce(pending, Action{
		Name:    "delete-workout",
		Phase:   PhaseRolledBack,
		Restore: &saved,
	})

	if diff := cmp.Diff(initial, restored); diff != "" {
		t.Errorf("rollback did not restore the saved snapshot (-want +got):\n%s", diff)
	}
}

func TestReduceRollbackWithoutRestoreIsNoop(t *testing.T) {
	current := readySnapshot()
	next := reduce(current, Action{Name: "noop", Phase: PhaseRolledBack})
	if diff := cmp.Diff(current, next); diff != "" {
		t.Errorf("rollback without restore must keep the state (-want +got):\n%s", diff)
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := readySnapshot()
	copied := original.clone()

	copied.Posts[0].AddLike("u_9")
	copied.WorkoutUpdates[0].MuscleGroups[0] = "arms"
	copied.Subject.FollowersCount = 99

	assert.Empty(t, original.Posts[0].Likes)
	assert.Equal(t, "legs", original.WorkoutUpdates[0].MuscleGroups[0])
	assert.Equal(t, 3, original.Subject.FollowersCount)
}
