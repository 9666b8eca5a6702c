package model

// TemplateField décrit un champ d'un formulaire de workout
type TemplateField struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Type     string   `json:"type"` // text, textarea, tags, number, select
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
}

// WorkoutTemplate décrit un modèle de saisie par catégorie d'activité
type WorkoutTemplate struct {
	Title    string          `json:"title"`
	Category Category        `json:"category"`
	Fields   []TemplateField `json:"fields"`
}

var intensityOptions = []string{string(IntensityLow), string(IntensityMedium), string(IntensityHigh)}

// WorkoutTemplates retourne les modèles de formulaire proposés à l'utilisateur
func WorkoutTemplates() []WorkoutTemplate {
	return []WorkoutTemplate{
		{
			Title:    "Cardio Workout",
			Category: CategoryCardio,
			Fields: []TemplateField{
				{Name: "workoutName", Label: "Workout Name", Type: "text", Required: true},
				{Name: "description", Label: "Description", Type: "textarea"},
				{Name: "muscleGroups", Label: "Muscle Groups Worked", Type: "tags", Required: true},
				{Name: "duration", Label: "Duration (minutes)", Type: "number", Required: true},
				{Name: "intensity", Label: "Intensity Level", Type: "select", Options: intensityOptions, Required: true},
			},
		},
		{
			Title:    "Strength Training",
			Category: CategoryStrength,
			Fields: []TemplateField{
				{Name: "workoutName", Label: "Workout Name", Type: "text", Required: true},
				{Name: "description", Label: "Exercises Performed", Type: "textarea", Required: true},
				{Name: "muscleGroups", Label: "Muscle Groups Worked", Type: "tags", Required: true},
				{Name: "duration", Label: "Duration (minutes)", Type: "number", Required: true},
				{Name: "weightLifted", Label: "Total Weight Lifted (kg)", Type: "number"},
				{Name: "intensity", Label: "Intensity Level", Type: "select", Options: intensityOptions, Required: true},
			},
		},
		{
			Title:    "Other Activity",
			Category: CategoryOther,
			Fields: []TemplateField{
				{Name: "workoutName", Label: "Activity Name", Type: "text", Required: true},
				{Name: "description", Label: "Description", Type: "textarea"},
				{Name: "muscleGroups", Label: "Muscle Groups Worked", Type: "tags", Required: true},
				{Name: "duration", Label: "Duration (minutes)", Type: "number", Required: true},
				{Name: "intensity", Label: "Intensity Level", Type: "select", Options: intensityOptions, Required: true},
			},
		},
	}
}
