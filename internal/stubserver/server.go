// Package stubserver fournit un double in-process de l'API PumpPro,
// utilisé par les tests d'intégration et la démo. Même enveloppe JSON et
// mêmes routes que le backend, état en mémoire.
package stubserver

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	model "github.com/MassBabyGeek/PumpPro-client/internal/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	profile      model.UserProfile
	email        string
	passwordHash []byte
}

// Server est l'état en mémoire du double d'API
type Server struct {
	mu sync.Mutex

	accounts map[string]*account          // par id utilisateur
	sessions map[string]string            // token -> id utilisateur
	posts    map[string]*model.Post       // par id post
	updates  map[string]model.LearningUpdate
	follows  map[string]map[string]bool   // follower -> followee -> true

	postOrder   []string
	updateOrder []string

	// Injection d'échec : la prochaine requête répond avec ce statut
	nextFailStatus  int
	nextFailMessage string
}

// New crée un serveur stub vide
func New() *Server {
	return &Server{
		accounts: make(map[string]*account),
		sessions: make(map[string]string),
		posts:    make(map[string]*model.Post),
		updates:  make(map[string]model.LearningUpdate),
		follows:  make(map[string]map[string]bool),
	}
}

// FailNext force la prochaine requête à échouer avec le statut donné
func (s *Server) FailNext(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextFailStatus = status
	s.nextFailMessage = message
}

// SeedUser enregistre un utilisateur avec son mot de passe et retourne son id
func (s *Server) SeedUser(profile model.UserProfile, email, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	s.accounts[profile.ID] = &account{profile: profile, email: email, passwordHash: hash}
	return profile.ID
}

// SeedPost insère un post existant
func (s *Server) SeedPost(post model.Post) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Comments == nil {
		post.Comments = []model.Comment{}
	}
	s.posts[post.ID] = &post
	s.postOrder = append(s.postOrder, post.ID)
	return post.ID
}

// SeedUpdate insère un enregistrement de journal existant
func (s *Server) SeedUpdate(record model.LearningUpdate) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	s.updates[record.ID] = record
	s.updateOrder = append(s.updateOrder, record.ID)
	return record.ID
}

// SeedFollow crée une relation follower -> followee
func (s *Server) SeedFollow(followerID, followeeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addFollow(followerID, followeeID)
}

func (s *Server) addFollow(followerID, followeeID string) {
	if s.follows[followerID] == nil {
		s.follows[followerID] = make(map[string]bool)
	}
	s.follows[followerID][followeeID] = true
}

// Handler retourne le routeur HTTP du stub
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.Use(s.failureMiddleware)

	// Auth
	r.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", s.logout).Methods(http.MethodPost)

	// Users
	r.HandleFunc("/users/profile", s.currentUser).Methods(http.MethodGet)
	r.HandleFunc("/users/profile", s.updateProfile).Methods(http.MethodPut)
	r.HandleFunc("/users/followers/{id}", s.followList("followers")).Methods(http.MethodGet)
	r.HandleFunc("/users/following/{id}", s.followList("following")).Methods(http.MethodGet)
	r.HandleFunc("/users/follow/{id}", s.follow).Methods(http.MethodPost)
	r.HandleFunc("/users/unfollow/{id}", s.unfollow).Methods(http.MethodPost)
	r.HandleFunc("/users/{id}", s.getUser).Methods(http.MethodGet)

	// Posts
	r.HandleFunc("/posts", s.createPost).Methods(http.MethodPost)
	r.HandleFunc("/posts/user/{id}", s.userPosts).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id}/like", s.toggleLike).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id}/comments", s.addComment).Methods(http.MethodPost)

	// Learning updates
	r.HandleFunc("/learning/updates", s.createUpdate).Methods(http.MethodPost)
	r.HandleFunc("/learning/updates/user/{id}", s.userUpdates).Methods(http.MethodGet)
	r.HandleFunc("/learning/updates/{id}", s.editUpdate).Methods(http.MethodPut)
	r.HandleFunc("/learning/updates/{id}", s.deleteUpdate).Methods(http.MethodDelete)

	return r
}

func (s *Server) failureMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status, message := s.nextFailStatus, s.nextFailMessage
		s.nextFailStatus, s.nextFailMessage = 0, ""
		s.mu.Unlock()

		if status != 0 {
			fail(w, status, message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// viewer résout l'utilisateur porteur du token Authorization
func (s *Server) viewer(r *http.Request) (string, bool) {
	token := r.Header.Get("Authorization")
	if token == "" {
		return "", false
	}
	userID, ok := s.sessions[token]
	return userID, ok
}

// profileFor construit le profil de subjectID vu par viewerID :
// compteurs matérialisés et flag isFollowing relatif au viewer
func (s *Server) profileFor(subjectID, viewerID string) model.UserProfile {
	profile := s.accounts[subjectID].profile
	profile.PostsCount = 0
	for _, id := range s.postOrder {
		if s.posts[id].UserID == subjectID {
			profile.PostsCount++
		}
	}

	profile.FollowersCount = 0
	for _, followees := range s.follows {
		if followees[subjectID] {
			profile.FollowersCount++
		}
	}
	profile.FollowingCount = len(s.follows[subjectID])

	if viewerID != "" && viewerID != subjectID {
		following := s.follows[viewerID][subjectID]
		profile.IsFollowing = &following
	} else {
		profile.IsFollowing = nil
	}
	return profile
}

// --- Auth ---

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, acc := range s.accounts {
		if acc.email != req.Email {
			continue
		}
		if bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)) != nil {
			break
		}
		token := uuid.NewString()
		s.sessions[token] = id
		success(w, map[string]interface{}{
			"user":  s.profileFor(id, id),
			"token": token,
		})
		return
	}
	fail(w, http.StatusUnauthorized, "invalid credentials")
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := r.Header.Get("Authorization")
	if _, ok := s.sessions[token]; !ok {
		fail(w, http.StatusNotFound, "session not found or already logged out")
		return
	}
	delete(s.sessions, token)
	message(w, "logged out")
}

// --- Users ---

func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewerID, ok := s.viewer(r)
	if !ok {
		fail(w, http.StatusUnauthorized, "missing authorization token")
		return
	}
	success(w, s.profileFor(viewerID, viewerID))
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subjectID := mux.Vars(r)["id"]
	if _, ok := s.accounts[subjectID]; !ok {
		fail(w, http.StatusNotFound, "user not found")
		return
	}
	viewerID, _ := s.viewer(r)
	success(w, s.profileFor(subjectID, viewerID))
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewerID, ok := s.viewer(r)
	if !ok {
		fail(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	var req model.ProfileEdit
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	acc := s.accounts[viewerID]
	acc.profile.FirstName = req.FirstName
	acc.profile.LastName = req.LastName
	acc.profile.Bio = req.Bio
	acc.profile.Skills = req.Skills
	if req.ProfilePicture != "" {
		acc.profile.ProfilePicture = req.ProfilePicture
	}

	success(w, s.profileFor(viewerID, viewerID))
}

func (s *Server) followList(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		subjectID := mux.Vars(r)["id"]
		viewerID, _ := s.viewer(r)

		var ids []string
		if kind == "followers" {
			for follower, followees := range s.follows {
				if followees[subjectID] {
					ids = append(ids, follower)
				}
			}
		} else {
			for followee := range s.follows[subjectID] {
				ids = append(ids, followee)
			}
		}
		sort.Strings(ids)

		users := []model.FollowUser{}
		for _, id := range ids {
			acc, ok := s.accounts[id]
			if !ok {
				continue
			}
			entry := model.FollowUser{
				ID:             id,
				FirstName:      acc.profile.FirstName,
				LastName:       acc.profile.LastName,
				ProfilePicture: acc.profile.ProfilePicture,
			}
			if viewerID != "" && viewerID != id {
				following := s.follows[viewerID][id]
				entry.IsFollowing = &following
			}
			users = append(users, entry)
		}
		success(w, users)
	}
}

func (s *Server) follow(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewerID, ok := s.viewer(r)
	if !ok {
		fail(w, http.StatusUnauthorized, "missing authorization token")
		return
	}
	targetID := mux.Vars(r)["id"]
	if _, ok := s.accounts[targetID]; !ok {
		fail(w, http.StatusNotFound, "user not found")
		return
	}
	if targetID == viewerID {
		fail(w, http.StatusBadRequest, "cannot follow yourself")
		return
	}
	s.addFollow(viewerID, targetID)
	message(w, "followed")
}

func (s *Server) unfollow(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewerID, ok := s.viewer(r)
	if !ok {
		fail(w, http.StatusUnauthorized, "missing authorization token")
		return
	}
	targetID := mux.Vars(r)["id"]
	delete(s.follows[viewerID], targetID)
	message(w, "unfollowed")
}

// --- Posts ---

func (s *Server) userPosts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := mux.Vars(r)["id"]
	posts := []model.Post{}
	// Les plus récents d'abord
	for i := len(s.postOrder) - 1; i >= 0; i-- {
		post := s.posts[s.postOrder[i]]
		if post.UserID == userID {
			posts = append(posts, *post)
		}
	}
	success(w, posts)
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewerID, ok := s.viewer(r)
	if !ok {
		fail(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	var req struct {
		Content   string          `json:"content"`
		MediaURL  string          `json:"mediaUrl"`
		MediaType model.MediaType `json:"mediaType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Content == "" && req.MediaURL == "" {
		fail(w, http.StatusBadRequest, "post content or media is required")
		return
	}

	post := model.Post{
		ID:        uuid.NewString(),
		UserID:    viewerID,
		Content:   req.Content,
		MediaURL:  req.MediaURL,
		MediaType: req.MediaType,
		CreatedAt: time.Now(),
		Likes:     []string{},
		Comments:  []model.Comment{},
	}
	s.posts[post.ID] = &post
	s.postOrder = append(s.postOrder, post.ID)

	success(w, post)
}

func (s *Server) toggleLike(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewerID, ok := s.viewer(r)
	if !ok {
		fail(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	post, ok := s.posts[mux.Vars(r)["id"]]
	if !ok {
		fail(w, http.StatusNotFound, "post not found")
		return
	}

	liked := !post.LikedBy(viewerID)
	if liked {
		post.AddLike(viewerID)
	} else {
		post.RemoveLike(viewerID)
	}

	success(w, map[string]interface{}{"liked": liked})
}

func (s *Server) addComment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewerID, ok := s.viewer(r)
	if !ok {
		fail(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	post, ok := s.posts[mux.Vars(r)["id"]]
	if !ok {
		fail(w, http.StatusNotFound, "post not found")
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		fail(w, http.StatusBadRequest, "comment content is required")
		return
	}

	post.Comments = append(post.Comments, model.Comment{
		ID:        uuid.NewString(),
		UserID:    viewerID,
		Content:   req.Content,
		CreatedAt: time.Now(),
	})

	success(w, *post)
}

// --- Learning updates ---

func (s *Server) userUpdates(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := mux.Vars(r)["id"]
	records := []model.LearningUpdate{}
	for i := len(s.updateOrder) - 1; i >= 0; i-- {
		record := s.updates[s.updateOrder[i]]
		if record.UserID == userID {
			records = append(records, record)
		}
	}
	success(w, records)
}

func (s *Server) createUpdate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewerID, ok := s.viewer(r)
	if !ok {
		fail(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	var record model.LearningUpdate
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		fail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	record.ID = uuid.NewString()
	record.UserID = viewerID
	s.updates[record.ID] = record
	s.updateOrder = append(s.updateOrder, record.ID)

	success(w, map[string]interface{}{
		"learningUpdate": record,
		"user":           s.profileFor(viewerID, viewerID),
	})
}

func (s *Server) editUpdate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewerID, ok := s.viewer(r)
	if !ok {
		fail(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	id := mux.Vars(r)["id"]
	existing, ok := s.updates[id]
	if !ok || existing.UserID != viewerID {
		fail(w, http.StatusNotFound, "learning update not found")
		return
	}

	var record model.LearningUpdate
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		fail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	record.ID = id
	record.UserID = viewerID
	s.updates[id] = record

	success(w, map[string]interface{}{
		"learningUpdate": record,
		"user":           s.profileFor(viewerID, viewerID),
	})
}

func (s *Server) deleteUpdate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewerID, ok := s.viewer(r)
	if !ok {
		fail(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	id := mux.Vars(r)["id"]
	existing, ok := s.updates[id]
	if !ok || existing.UserID != viewerID {
		fail(w, http.StatusNotFound, "learning update not found")
		return
	}

	delete(s.updates, id)
	for i, orderedID := range s.updateOrder {
		if orderedID == id {
			s.updateOrder = append(s.updateOrder[:i], s.updateOrder[i+1:]...)
			break
		}
	}
	message(w, "deleted")
}
