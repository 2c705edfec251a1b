package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"neoverse-be/internal/middleware"
	"neoverse-be/internal/user"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	users user.Service
}

type userJSON struct {
	ID        int     `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Firstname *string `json:"firstname"`
	Lastname  *string `json:"lastname"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
}

func toUserJSON(u user.User) userJSON {
	return userJSON{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Address:   u.Address,
		Phone:     u.Phone,
	}
}

type registerRequest struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Firstname *string `json:"firstname"`
	Lastname  *string `json:"lastname"`
}

func (h *UserHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	missing := missingFields([]fieldCheck{
		{"username", req.Username == ""},
		{"email", req.Email == ""},
		{"password", req.Password == ""},
	})
	if missing != "" {
		writeMessage(w, http.StatusBadRequest, "Missing required fields: "+missing)
		return
	}

	token, _, err := h.users.Register(r.Context(), user.RegisterParams{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "User registered successfully",
		"token":   token,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *UserHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	token, u, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user": map[string]any{
			"id":       u.ID,
			"username": u.Username,
			"email":    u.Email,
			"role":     u.Role,
		},
	})
}

// logout exists for the client's benefit; bearer tokens hold no server-side
// session to tear down.
func (h *UserHandler) logout(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "Logged out successfully")
}

func (h *UserHandler) profile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	u, err := h.users.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserJSON(u))
}

type updateProfileRequest struct {
	Firstname *string `json:"firstname"`
	Lastname  *string `json:"lastname"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
}

func (h *UserHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	_, err := h.users.UpdateProfile(r.Context(), user.UpdateProfileParams{
		UserID:    userID,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "Profile updated successfully")
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *UserHandler) changePassword(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	missing := missingFields([]fieldCheck{
		{"current_password", req.CurrentPassword == ""},
		{"new_password", req.NewPassword == ""},
	})
	if missing != "" {
		writeMessage(w, http.StatusBadRequest, "Missing required fields: "+missing)
		return
	}

	if err := h.users.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "Password changed successfully")
}

// --- admin ---

func (h *UserHandler) adminList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]userJSON, 0, len(users))
	for _, u := range users {
		out = append(out, toUserJSON(u))
	}
	writeJSON(w, http.StatusOK, out)
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (h *UserHandler) adminUpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}

	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Role == "" {
		writeMessage(w, http.StatusBadRequest, "Missing required fields: role")
		return
	}

	u, err := h.users.UpdateRole(r.Context(), id, user.Role(req.Role))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserJSON(u))
}

func (h *UserHandler) makeAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}

	u, err := h.users.MakeAdmin(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, fmt.Sprintf("User %s is now an admin", u.Username))
}
