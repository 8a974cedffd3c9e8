package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tshirt-shop/models"
	"tshirt-shop/store"
)

// UserController handles user-related requests
type UserController struct {
	Users store.Users
}

// NewUserController creates a new UserController
func NewUserController(users store.Users) *UserController {
	return &UserController{Users: users}
}

// Search returns users whose email contains the query term,
// case-insensitively. Admin only.
func (uc *UserController) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("email")

	users, err := uc.Users.SearchByEmail(r.Context(), term)
	if err != nil {
		logrus.WithError(err).Error("user search failed")
		writeError(w, http.StatusInternalServerError, "Failed to search users")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// Role returns a user's role by email. Admin only.
func (uc *UserController) Role(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	user, err := uc.Users.FindByEmail(r.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "User not found"})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("user role lookup failed")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "Failed to fetch role"})
		return
	}

	role := user.Role
	if role == "" {
		role = models.RoleUser
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"email":   user.Email,
		"role":    role,
	})
}

// SetRole overwrites a user's role by id. The role must be one of the
// known roles. Admin only.
func (uc *UserController) SetRole(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var body struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if !models.ValidRole(body.Role) {
		writeError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	result, err := uc.Users.SetRole(r.Context(), id, body.Role)
	if err != nil {
		logrus.WithError(err).Error("role update failed")
		writeError(w, http.StatusInternalServerError, "Error updating role")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Create inserts a user on first sign-in. Idempotent by email: posting
// an existing email returns the no-op signal instead of a duplicate.
func (uc *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if user.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	result, err := uc.Users.InsertIfAbsent(r.Context(), &user)
	if err != nil {
		logrus.WithError(err).Error("user insert failed")
		writeError(w, http.StatusInternalServerError, "Error creating user")
		return
	}
	if result.InsertedID == nil {
		noopInsert(w, "User already exists")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// List returns all users. Admin only.
func (uc *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := uc.Users.All(r.Context())
	if err != nil {
		logrus.WithError(err).Error("user list failed")
		writeError(w, http.StatusInternalServerError, "Error fetching users")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// Get returns a single user by email.
func (uc *UserController) Get(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	user, err := uc.Users.FindByEmail(r.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		logrus.WithError(err).Error("user fetch failed")
		writeError(w, http.StatusInternalServerError, "Error fetching user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile updates name and profilePic for the user matching the
// path email. Other fields are untouched.
func (uc *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	var body struct {
		Name       string `json:"name"`
		ProfilePic string `json:"profilePic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	result, err := uc.Users.UpdateProfile(r.Context(), email, body.Name, body.ProfilePic)
	if err != nil {
		logrus.WithError(err).Error("profile update failed")
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
