package model

import (
	"fmt"
	"time"
)

// MediaType représente le type de média attaché à un post
type MediaType string

const (
	MediaTypeImage MediaType = "IMAGE"
	MediaTypeVideo MediaType = "VIDEO"
)

// Comment représente un commentaire sur un post
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post représente une publication d'un utilisateur
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	MediaURL  string    `json:"mediaUrl,omitempty"`
	MediaType MediaType `json:"mediaType,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Likes     []string  `json:"likes"`
	Comments  []Comment `json:"comments"`
}

// LikedBy indique si l'utilisateur a liké ce post
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// AddLike ajoute un like (sans doublon)
func (p *Post) AddLike(userID string) {
	if !p.LikedBy(userID) {
		p.Likes = append(p.Likes, userID)
	}
}

// RemoveLike retire un like
func (p *Post) RemoveLike(userID string) {
	likes := p.Likes[:0]
	for _, id := range p.Likes {
		if id != userID {
			likes = append(likes, id)
		}
	}
	p.Likes = likes
}

// FormatPostDate formate une date de post en durée relative ("2h ago")
func FormatPostDate(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("1/2/2006")
	}
}
