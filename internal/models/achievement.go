package model

// Achievement est un badge dérivé du journal d'activités.
// Jamais persisté : recalculé à chaque changement de la collection.
type Achievement struct {
	Title    string `json:"title"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
	Achieved bool   `json:"achieved"`
}
