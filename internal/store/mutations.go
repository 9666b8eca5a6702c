package store

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/MassBabyGeek/PumpPro-client/internal/adapter"
	"github.com/MassBabyGeek/PumpPro-client/internal/api"
	model "github.com/MassBabyGeek/PumpPro-client/internal/models"
	"github.com/MassBabyGeek/PumpPro-client/internal/services"
	"github.com/google/uuid"
)

// ToggleLikePost like ou unlike un post. Le serveur tranche l'état final
// via le champ "liked" de sa réponse.
func (ps *ProfileStore) ToggleLikePost(ctx context.Context, postID string) error {
	viewerID := ps.session.ViewerID
	successMsg := "Post liked!"

	return ps.run(ctx, mutation{
		name:           "like-post",
		failureMessage: "Failed to like post",
		validate: func(s *Snapshot) error {
			if viewerID == "" {
				return &api.ValidationError{Message: "not authenticated"}
			}
			if s.FindPost(postID) < 0 {
				return &api.ValidationError{Message: "post not found"}
			}
			return nil
		},
		tentative: func(next *Snapshot) {
			post := &next.Posts[next.FindPost(postID)]
			if post.LikedBy(viewerID) {
				post.RemoveLike(viewerID)
			} else {
				post.AddLike(viewerID)
			}
		},
		call: func(ctx context.Context) (json.RawMessage, error) {
			return ps.client.Call(ctx, http.MethodPost, "/posts/"+postID+"/like", nil, ps.session.Token())
		},
		reconcile: func(data json.RawMessage) (func(*Snapshot), error) {
			rawLiked, err := api.Field(data, "liked")
			if err != nil {
				return nil, err
			}
			var liked bool
			if err := api.Bind(rawLiked, &liked); err != nil {
				return nil, err
			}
			if !liked {
				successMsg = "Post unliked!"
			}
			return func(next *Snapshot) {
				i := next.FindPost(postID)
				if i < 0 {
					return
				}
				// Le serveur fait autorité sur l'appartenance
				if liked {
					next.Posts[i].AddLike(viewerID)
				} else {
					next.Posts[i].RemoveLike(viewerID)
				}
			}, nil
		},
		success: func() string { return successMsg },
	})
}

// ToggleFollowSubject suit ou arrête de suivre le sujet consulté
func (ps *ProfileStore) ToggleFollowSubject(ctx context.Context) error {
	var wasFollowing bool
	var subjectID string
	successMsg := ""

	return ps.run(ctx, mutation{
		name:           "follow-subject",
		failureMessage: "Failed to update follow status",
		validate: func(s *Snapshot) error {
			if s.IsOwnProfile() {
				return &api.ValidationError{Message: "cannot follow yourself"}
			}
			if s.Subject.IsFollowing == nil {
				return &api.ValidationError{Message: "follow status unknown"}
			}
			wasFollowing = *s.Subject.IsFollowing
			subjectID = s.Subject.ID
			if wasFollowing {
				successMsg = "Successfully unfollowed user"
			} else {
				successMsg = "Successfully followed user"
			}
			return nil
		},
		tentative: func(next *Snapshot) {
			following := !wasFollowing
			next.Subject.IsFollowing = &following
			if following {
				next.Subject.FollowersCount++
			} else {
				next.Subject.FollowersCount--
			}
		},
		call: func(ctx context.Context) (json.RawMessage, error) {
			endpoint := "/users/follow/"
			if wasFollowing {
				endpoint = "/users/unfollow/"
			}
			return ps.client.Call(ctx, http.MethodPost, endpoint+subjectID, nil, ps.session.Token())
		},
		// Pas de champ généré par le serveur : l'état tentatif est l'état final
		success: func() string { return successMsg },
	})
}

// ToggleFollowUser suit ou arrête de suivre une entrée des listes
// followers/following
func (ps *ProfileStore) ToggleFollowUser(ctx context.Context, userID string) error {
	var wasFollowing bool
	successMsg := ""

	flip := func(list []model.FollowUser, following bool) {
		for i := range list {
			if list[i].ID == userID && list[i].IsFollowing != nil {
				f := following
				list[i].IsFollowing = &f
			}
		}
	}

	return ps.run(ctx, mutation{
		name:           "follow-user",
		failureMessage: "Failed to update follow status",
		validate: func(s *Snapshot) error {
			if userID == ps.session.ViewerID {
				return &api.ValidationError{Message: "cannot follow yourself"}
			}
			for _, lists := range [][]model.FollowUser{s.Followers, s.Following} {
				for _, u := range lists {
					if u.ID == userID && u.IsFollowing != nil {
						wasFollowing = *u.IsFollowing
						if wasFollowing {
							successMsg = "Successfully unfollowed user"
						} else {
							successMsg = "Successfully followed user"
						}
						return nil
					}
				}
			}
			return &api.ValidationError{Message: "user not found in follow lists"}
		},
		tentative: func(next *Snapshot) {
			flip(next.Followers, !wasFollowing)
			flip(next.Following, !wasFollowing)
		},
		call: func(ctx context.Context) (json.RawMessage, error) {
			endpoint := "/users/follow/"
			if wasFollowing {
				endpoint = "/users/unfollow/"
			}
			return ps.client.Call(ctx, http.MethodPost, endpoint+userID, nil, ps.session.Token())
		},
		success: func() string { return successMsg },
	})
}

// CreatePost publie un nouveau post, avec média optionnel. Le média est
// uploadé avant l'appel distant : son échec annule la mutation avant tout
// envoi au backend.
func (ps *ProfileStore) CreatePost(ctx context.Context, content string, media []byte, mediaName string) error {
	if strings.TrimSpace(content) == "" && media == nil {
		err := &api.ValidationError{Message: "Please add some content or media to your post"}
		ps.notify(NotifyError, err.Message)
		return err
	}

	var mediaURL string
	var mediaType model.MediaType
	if media != nil {
		url, err := ps.uploader.Upload(ctx, media, mediaName)
		if err != nil {
			ps.notify(NotifyError, "Failed to upload media")
			return err
		}
		mediaURL = url
		mediaType = services.DetectMediaType(mediaName)
	}

	viewerID := ps.session.ViewerID
	tempID := "tmp_" + uuid.NewString()

	return ps.run(ctx, mutation{
		name:           "create-post",
		failureMessage: "Failed to create post",
		tentative: func(next *Snapshot) {
			post := model.Post{
				ID:        tempID,
				UserID:    viewerID,
				Content:   content,
				MediaURL:  mediaURL,
				MediaType: mediaType,
				CreatedAt: time.Now(),
				Likes:     []string{},
				Comments:  []model.Comment{},
			}
			next.Posts = append([]model.Post{post}, next.Posts...)
		},
		call: func(ctx context.Context) (json.RawMessage, error) {
			payload := map[string]interface{}{
				"content":  content,
				"mediaUrl": mediaURL,
			}
			if mediaType != "" {
				payload["mediaType"] = mediaType
			}
			return ps.client.Call(ctx, http.MethodPost, "/posts", payload, ps.session.Token())
		},
		reconcile: func(data json.RawMessage) (func(*Snapshot), error) {
			var created model.Post
			if err := api.Bind(data, &created); err != nil {
				return nil, err
			}
			if created.ID == "" {
				return nil, &api.ProtocolError{Field: "id", Message: "created post has no id"}
			}
			if created.Likes == nil {
				created.Likes = []string{}
			}
			if created.Comments == nil {
				created.Comments = []model.Comment{}
			}
			return func(next *Snapshot) {
				// Remplacer le post tentatif par la version serveur
				if i := next.FindPost(tempID); i >= 0 {
					next.Posts[i] = created
				}
			}, nil
		},
		success: func() string { return "Post created successfully!" },
	})
}

// AddComment ajoute un commentaire sur un post. Le serveur renvoie le post
// mis à jour, qui remplace la version locale.
func (ps *ProfileStore) AddComment(ctx context.Context, postID, content string) error {
	viewerID := ps.session.ViewerID
	tempID := "tmp_" + uuid.NewString()

	return ps.run(ctx, mutation{
		name:           "add-comment",
		failureMessage: "Failed to add comment",
		validate: func(s *Snapshot) error {
			if strings.TrimSpace(content) == "" {
				return &api.ValidationError{Message: "comment cannot be empty"}
			}
			if s.FindPost(postID) < 0 {
				return &api.ValidationError{Message: "post not found"}
			}
			return nil
		},
		tentative: func(next *Snapshot) {
			i := next.FindPost(postID)
			next.Posts[i].Comments = append(next.Posts[i].Comments, model.Comment{
				ID:        tempID,
				UserID:    viewerID,
				Content:   content,
				CreatedAt: time.Now(),
			})
		},
		call: func(ctx context.Context) (json.RawMessage, error) {
			payload := map[string]string{"content": content}
			return ps.client.Call(ctx, http.MethodPost, "/posts/"+postID+"/comments", payload, ps.session.Token())
		},
		reconcile: func(data json.RawMessage) (func(*Snapshot), error) {
			var updated model.Post
			if err := api.Bind(data, &updated); err != nil {
				return nil, err
			}
			if updated.ID == "" {
				return nil, &api.ProtocolError{Field: "id", Message: "updated post has no id"}
			}
			return func(next *Snapshot) {
				if i := next.FindPost(updated.ID); i >= 0 {
					next.Posts[i] = updated
				}
			}, nil
		},
		success: func() string { return "Comment added!" },
	})
}

// SetEditForm remplace le formulaire d'édition du profil (transition
// locale, aucun appel réseau)
func (ps *ProfileStore) SetEditForm(form model.ProfileEdit) {
	ps.mu.Lock()
	fanout := ps.dispatchLocked(Action{
		Name:  "set-edit-form",
		Phase: PhaseConfirmed,
		Apply: func(next *Snapshot) {
			next.EditForm = form
		},
	})
	ps.mu.Unlock()
	fanout()
}

// SubmitProfileEdit soumet le formulaire d'édition. L'avatar optionnel est
// uploadé avant l'appel ; le profil live est remplacé en entier par la
// réponse serveur.
func (ps *ProfileStore) SubmitProfileEdit(ctx context.Context, avatar []byte, avatarName string) error {
	snapshot := ps.Snapshot()
	form := snapshot.EditForm

	// Précondition vérifiée avant l'upload : pas d'octets envoyés au blob
	// store pour une mutation qui échouera en validation
	if !snapshot.IsOwnProfile() {
		err := &api.ValidationError{Message: "can only edit your own profile"}
		ps.notify(NotifyError, err.Message)
		return err
	}

	if strings.TrimSpace(form.FirstName) == "" {
		err := &api.ValidationError{Message: "first name is required"}
		ps.notify(NotifyError, err.Message)
		return err
	}

	if avatar != nil {
		url, err := ps.uploader.Upload(ctx, avatar, avatarName)
		if err != nil {
			ps.notify(NotifyError, "Failed to upload image. Please try again.")
			return err
		}
		form.ProfilePicture = url
	}

	return ps.run(ctx, mutation{
		name:           "edit-profile",
		failureMessage: "Failed to update profile. Please try again.",
		validate: func(s *Snapshot) error {
			if !s.IsOwnProfile() {
				return &api.ValidationError{Message: "can only edit your own profile"}
			}
			return nil
		},
		tentative: func(next *Snapshot) {
			next.EditForm = form
			applyEdit(&next.Subject, form)
			next.Viewer = next.Subject
		},
		call: func(ctx context.Context) (json.RawMessage, error) {
			return ps.client.Call(ctx, http.MethodPut, "/users/profile", form, ps.session.Token())
		},
		reconcile: func(data json.RawMessage) (func(*Snapshot), error) {
			var updated model.UserProfile
			if err := api.Bind(data, &updated); err != nil {
				return nil, err
			}
			if updated.ID == "" {
				return nil, &api.ProtocolError{Field: "id", Message: "updated user has no id"}
			}
			return func(next *Snapshot) {
				// Le profil édité est remplacé en bloc par la version serveur
				next.Subject = updated
				next.Viewer = updated
				next.EditForm = model.EditFromProfile(updated)
			}, nil
		},
		success: func() string { return "Profile updated successfully!" },
	})
}

func applyEdit(u *model.UserProfile, form model.ProfileEdit) {
	u.FirstName = form.FirstName
	u.LastName = form.LastName
	u.Bio = form.Bio
	u.Skills = form.Skills
	if form.ProfilePicture != "" {
		u.ProfilePicture = form.ProfilePicture
	}
}

// SubmitWorkoutUpdate enregistre un nouveau workout dans le journal.
// La vue fitness est convertie en forme générique pour le backend ; la
// réponse doit porter la clé "learningUpdate", sinon ProtocolError et
// rollback.
func (ps *ProfileStore) SubmitWorkoutUpdate(ctx context.Context, update model.WorkoutUpdate) error {
	viewerID := ps.session.ViewerID
	tempID := "tmp_" + uuid.NewString()

	if update.CompletedAt.IsZero() {
		update.CompletedAt = time.Now()
	}

	return ps.run(ctx, mutation{
		name:           "add-workout",
		failureMessage: "Failed to add workout update",
		validate: func(s *Snapshot) error {
			if !s.IsOwnProfile() {
				return &api.ValidationError{Message: "can only log workouts on your own profile"}
			}
			if strings.TrimSpace(update.WorkoutName) == "" {
				return &api.ValidationError{Message: "workout name is required"}
			}
			if update.Duration <= 0 {
				return &api.ValidationError{Message: "duration must be positive"}
			}
			return nil
		},
		tentative: func(next *Snapshot) {
			tentativeView := update
			tentativeView.ID = tempID
			next.WorkoutUpdates = append([]model.WorkoutUpdate{tentativeView}, next.WorkoutUpdates...)
		},
		call: func(ctx context.Context) (json.RawMessage, error) {
			record := adapter.ToLearningUpdate(update)
			record.UserID = viewerID
			return ps.client.Call(ctx, http.MethodPost, "/learning/updates", record, ps.session.Token())
		},
		reconcile: reconcileWorkoutUpdate(tempID),
		success:   func() string { return "Workout update added successfully!" },
	})
}

// EditWorkoutUpdate remplace un workout existant du journal
func (ps *ProfileStore) EditWorkoutUpdate(ctx context.Context, update model.WorkoutUpdate) error {
	viewerID := ps.session.ViewerID

	return ps.run(ctx, mutation{
		name:           "edit-workout",
		failureMessage: "Failed to update workout update",
		validate: func(s *Snapshot) error {
			if !s.IsOwnProfile() {
				return &api.ValidationError{Message: "can only edit workouts on your own profile"}
			}
			if s.FindWorkoutUpdate(update.ID) < 0 {
				return &api.ValidationError{Message: "workout update not found"}
			}
			if strings.TrimSpace(update.WorkoutName) == "" {
				return &api.ValidationError{Message: "workout name is required"}
			}
			return nil
		},
		tentative: func(next *Snapshot) {
			next.WorkoutUpdates[next.FindWorkoutUpdate(update.ID)] = update
		},
		call: func(ctx context.Context) (json.RawMessage, error) {
			record := adapter.ToLearningUpdate(update)
			record.UserID = viewerID
			return ps.client.Call(ctx, http.MethodPut, "/learning/updates/"+update.ID, record, ps.session.Token())
		},
		reconcile: reconcileWorkoutUpdate(update.ID),
		success:   func() string { return "Workout update edited successfully!" },
	})
}

// reconcileWorkoutUpdate construit la réconciliation commune aux créations
// et éditions de workout : la clé "learningUpdate" est obligatoire, la clé
// "user" est optionnelle et rafraîchit les compteurs du profil
func reconcileWorkoutUpdate(localID string) func(json.RawMessage) (func(*Snapshot), error) {
	return func(data json.RawMessage) (func(*Snapshot), error) {
		raw, err := api.Field(data, "learningUpdate")
		if err != nil {
			return nil, err
		}
		var record model.LearningUpdate
		if err := api.Bind(raw, &record); err != nil {
			return nil, err
		}
		confirmed := adapter.ToWorkoutView(record)

		var refreshed *model.UserProfile
		if rawUser, err := api.Field(data, "user"); err == nil {
			var u model.UserProfile
			if err := api.Bind(rawUser, &u); err == nil && u.ID != "" {
				refreshed = &u
			}
		}

		return func(next *Snapshot) {
			if i := next.FindWorkoutUpdate(localID); i >= 0 {
				next.WorkoutUpdates[i] = confirmed
			}
			if refreshed != nil && refreshed.ID == next.Subject.ID {
				isFollowing := next.Subject.IsFollowing
				next.Subject = *refreshed
				next.Subject.IsFollowing = isFollowing
				if next.Viewer.ID == refreshed.ID {
					next.Viewer = *refreshed
				}
			}
		}, nil
	}
}

// DeleteWorkoutUpdate supprime un workout du journal
func (ps *ProfileStore) DeleteWorkoutUpdate(ctx context.Context, updateID string) error {
	return ps.run(ctx, mutation{
		name:           "delete-workout",
		failureMessage: "Failed to delete workout update",
		validate: func(s *Snapshot) error {
			if !s.IsOwnProfile() {
				return &api.ValidationError{Message: "can only delete workouts on your own profile"}
			}
			if s.FindWorkoutUpdate(updateID) < 0 {
				return &api.ValidationError{Message: "workout update not found"}
			}
			return nil
		},
		tentative: func(next *Snapshot) {
			i := next.FindWorkoutUpdate(updateID)
			next.WorkoutUpdates = append(next.WorkoutUpdates[:i], next.WorkoutUpdates[i+1:]...)
		},
		call: func(ctx context.Context) (json.RawMessage, error) {
			return ps.client.Call(ctx, http.MethodDelete, "/learning/updates/"+updateID, nil, ps.session.Token())
		},
		success: func() string { return "Workout update deleted successfully" },
	})
}
