package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/MassBabyGeek/PumpPro-client/internal/api"
	"github.com/MassBabyGeek/PumpPro-client/internal/config"
	"github.com/MassBabyGeek/PumpPro-client/internal/logger"
	model "github.com/MassBabyGeek/PumpPro-client/internal/models"
	"github.com/MassBabyGeek/PumpPro-client/internal/services"
	"github.com/MassBabyGeek/PumpPro-client/internal/session"
	"github.com/MassBabyGeek/PumpPro-client/internal/store"
	"github.com/MassBabyGeek/PumpPro-client/internal/stubserver"
)

// Démo du store profil : un backend stub en mémoire, une session, et le
// déroulé complet consultation + mutations optimistes.
func main() {
	logger.Info("démarrage de la démo PumpPro client...")

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("impossible de charger la configuration: %v", err)
		os.Exit(1)
	}

	baseURL := cfg.APIBaseURL
	if os.Getenv("API_BASE_URL") == "" {
		// Sans backend configuré, la démo démarre son propre stub
		url, stop, err := startStub()
		if err != nil {
			logger.Error("impossible de démarrer le stub: %v", err)
			os.Exit(1)
		}
		defer stop()
		baseURL = url
		logger.Info("backend stub en écoute sur %s", baseURL)
	}

	var uploader services.Uploader
	if svc, err := services.NewCloudinaryService(cfg); err != nil {
		logger.Warning("cloudinary non configuré, upload de médias désactivé")
	} else {
		uploader = svc
	}

	sess := session.NewSession()
	client := api.NewClientWithBaseURL(baseURL)

	profile := store.New(client, uploader, sess, func(n store.Notification) {
		if n.Level == store.NotifySuccess {
			logger.Success("toast: %s", n.Message)
		} else {
			logger.Error("toast: %s", n.Message)
		}
	})
	defer profile.Close()

	unsubscribe := profile.Subscribe(func(s store.Snapshot) {
		logger.Debug("état: %s | posts=%d workouts=%d", s.Status, len(s.Posts), len(s.WorkoutUpdates))
	})
	defer unsubscribe()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := profile.Login(ctx, "lucas@pumppro.fr", "password123"); err != nil {
		os.Exit(1)
	}

	if err := profile.LoadProfile(ctx, ""); err != nil {
		os.Exit(1)
	}

	snapshot := profile.Snapshot()
	logger.Info("profil de %s : %d posts, %d followers, %d suivis",
		snapshot.Subject.FullName(), snapshot.QuickStats.Posts,
		snapshot.QuickStats.Followers, snapshot.QuickStats.Following)

	// Quelques mutations optimistes
	profile.CreatePost(ctx, "Séance jambes terminée, tout donné !", nil, "")

	for _, template := range model.WorkoutTemplates() {
		if template.Category == model.CategoryStrength {
			logger.Debug("formulaire %q : %d champs", template.Title, len(template.Fields))
		}
	}

	calories := 320.0
	profile.SubmitWorkoutUpdate(ctx, model.WorkoutUpdate{
		WorkoutName:    "Squat & fentes",
		Category:       model.CategoryStrength,
		MuscleGroups:   []string{"legs", "glutes"},
		Duration:       45,
		Intensity:      model.IntensityHigh,
		CaloriesBurned: &calories,
	})

	snapshot = profile.Snapshot()
	for _, post := range snapshot.Posts {
		logger.Info("post (%s) : %s", model.FormatPostDate(post.CreatedAt, time.Now()), post.Content)
	}
	if len(snapshot.Posts) > 0 {
		profile.ToggleLikePost(ctx, snapshot.Posts[0].ID)
	}

	snapshot = profile.Snapshot()
	fmt.Println()
	logger.Info("résumé workouts : %d séances, %.0f minutes, %d groupes musculaires, %d haute intensité",
		snapshot.Summary.TotalWorkouts, snapshot.Summary.TotalMinutes,
		snapshot.Summary.MuscleGroups, snapshot.Summary.HighIntensity)

	for _, achievement := range snapshot.Achievements {
		if achievement.Achieved {
			logger.Success("badge obtenu : %s", achievement.Title)
		} else {
			logger.Debug("badge verrouillé : %s", achievement.Title)
		}
	}

	if err := profile.Logout(ctx); err != nil {
		logger.Warning("logout: %v", err)
	}
	logger.Info("démo terminée")
}

// startStub lance le backend stub sur un port libre et le peuple
func startStub() (string, func(), error) {
	stub := stubserver.New()

	lucasID := stub.SeedUser(model.UserProfile{
		FirstName: "Lucas",
		LastName:  "Martin",
		Bio:       "Coach sportif, fan de renfo",
		Skills:    []string{"musculation", "cardio"},
	}, "lucas@pumppro.fr", "password123")
	emmaID := stub.SeedUser(model.UserProfile{
		FirstName: "Emma",
		LastName:  "Dubois",
	}, "emma@pumppro.fr", "password123")

	stub.SeedFollow(emmaID, lucasID)
	stub.SeedPost(model.Post{
		UserID:    lucasID,
		Content:   "Premier post sur PumpPro !",
		CreatedAt: time.Now().Add(-48 * time.Hour),
	})
	stub.SeedUpdate(model.LearningUpdate{
		UserID:        lucasID,
		Title:         "Course matinale",
		Category:      model.CategoryCardio,
		SkillsLearned: []string{"cardio"},
		HoursSpent:    30,
		Difficulty:    model.IntensityMedium,
		CompletedAt:   time.Now().Add(-24 * time.Hour),
	})

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, err
	}

	server := &http.Server{Handler: stub.Handler()}
	go server.Serve(listener)

	stop := func() { server.Close() }
	return "http://" + listener.Addr().String(), stop, nil
}
