package model

import "time"

// Category représente la catégorie d'une activité
type Category string

const (
	CategoryCardio   Category = "CARDIO"
	CategoryStrength Category = "STRENGTH"
	CategoryOther    Category = "OTHER"
)

// Intensity représente le niveau d'intensité d'une activité
type Intensity string

const (
	IntensityLow    Intensity = "LOW"
	IntensityMedium Intensity = "MEDIUM"
	IntensityHigh   Intensity = "HIGH"
)

// LearningUpdate est la forme générique stockée côté backend.
// Le backend parle "learning" (title, skillsLearned, hoursSpent) ;
// l'app affiche une vue fitness (voir WorkoutUpdate et internal/adapter).
type LearningUpdate struct {
	ID             string    `json:"id,omitempty"`
	UserID         string    `json:"userId,omitempty"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       Category  `json:"category"`
	ResourceName   string    `json:"resourceName"`
	Difficulty     Intensity `json:"difficulty,omitempty"`
	HoursSpent     float64   `json:"hoursSpent"`
	SkillsLearned  []string  `json:"skillsLearned"`
	CaloriesBurned *float64  `json:"caloriesBurned,omitempty"`
	CompletedAt    time.Time `json:"completedAt"`
}

// WorkoutUpdate est la vue fitness d'un LearningUpdate, utilisée par le
// store et le moteur d'achievements
type WorkoutUpdate struct {
	ID             string    `json:"id,omitempty"`
	WorkoutName    string    `json:"workoutName"`
	Description    string    `json:"description"`
	Category       Category  `json:"category"`
	MuscleGroups   []string  `json:"muscleGroups"`
	Duration       float64   `json:"duration"`
	Intensity      Intensity `json:"intensity,omitempty"`
	CaloriesBurned *float64  `json:"caloriesBurned,omitempty"`
	CompletedAt    time.Time `json:"completedAt"`
}
