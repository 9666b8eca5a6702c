package model

// UserProfile représente un utilisateur tel que renvoyé par le backend
type UserProfile struct {
	ID             string   `json:"id,omitempty"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email,omitempty"`
	Bio            string   `json:"bio,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	ProfilePicture string   `json:"profilePicture,omitempty"`
	PostsCount     int      `json:"postsCount"`
	FollowersCount int      `json:"followersCount"`
	FollowingCount int      `json:"followingCount"`

	// IsFollowing est relatif au viewer : nil quand le viewer est le sujet
	IsFollowing *bool `json:"isFollowing,omitempty"`
}

// FullName retourne le nom complet de l'utilisateur
func (u *UserProfile) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// FollowUser représente une entrée des listes followers/following
type FollowUser struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	IsFollowing    *bool  `json:"isFollowing,omitempty"`
}

// ProfileEdit contient les champs éditables du profil, distincts du profil
// live tant que l'édition n'est pas soumise
type ProfileEdit struct {
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Bio            string   `json:"bio"`
	Skills         []string `json:"skills"`
	ProfilePicture string   `json:"profilePicture,omitempty"`
}

// EditFromProfile initialise un formulaire d'édition depuis un profil
func EditFromProfile(u UserProfile) ProfileEdit {
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return ProfileEdit{
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Bio:            u.Bio,
		Skills:         skills,
		ProfilePicture: u.ProfilePicture,
	}
}
