package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"expensetracker/internal/auth"
	"expensetracker/internal/storage"
)

type userJSON struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func toUserJSON(u storage.User) userJSON {
	return userJSON{ID: u.ID, Username: u.Username, Email: u.Email}
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		BadRequestError("malformed request body").Write(w)
		return
	}

	username := parser.Get("username")
	email := parser.Get("email")
	password := parser.Get("password")
	if username == "" || email == "" || password == "" {
		BadRequestError("username, email and password are required").Write(w)
		return
	}
	if len(password) < 8 {
		BadRequestError("password must be at least 8 characters").Write(w)
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		slog.ErrorContext(r.Context(), "Password hashing failed", "error", err)
		InternalServerError().Write(w)
		return
	}

	user, err := s.users.CreateUser(r.Context(), storage.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateUser) {
			ConflictError("username or email already taken").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "User creation failed", "error", err)
		InternalServerError().Write(w)
		return
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Username, user.Email)
	if err != nil {
		slog.ErrorContext(r.Context(), "Token generation failed", "error", err, "user_id", user.ID)
		InternalServerError().Write(w)
		return
	}

	NewJSONResponse().
		Status(http.StatusCreated).
		Body(map[string]any{
			"token": token,
			"user":  toUserJSON(user),
		}).
		Write(w)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		BadRequestError("malformed request body").Write(w)
		return
	}

	username := parser.Get("username")
	password := parser.Get("password")
	if username == "" || password == "" {
		BadRequestError("username and password are required").Write(w)
		return
	}

	user, err := s.users.GetUserByUsername(r.Context(), username)
	if err != nil {
		// Unknown user and wrong password are indistinguishable to callers.
		if errors.Is(err, storage.ErrNotFound) {
			UnauthorizedError("invalid credentials").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "User lookup failed", "error", err)
		InternalServerError().Write(w)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		UnauthorizedError("invalid credentials").Write(w)
		return
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Username, user.Email)
	if err != nil {
		slog.ErrorContext(r.Context(), "Token generation failed", "error", err, "user_id", user.ID)
		InternalServerError().Write(w)
		return
	}

	NewJSONResponse().Body(map[string]any{
		"token": token,
		"user":  toUserJSON(user),
	}).Write(w)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, ownerID string) {
	user, err := s.users.GetUserByID(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			NotFoundError("user not found").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Profile lookup failed", "error", err, "user_id", ownerID)
		InternalServerError().Write(w)
		return
	}

	NewJSONResponse().Body(map[string]any{"user": toUserJSON(user)}).Write(w)
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	claims, err := s.claimsFromRequest(r)
	if err != nil {
		UnauthorizedError("invalid or missing token").Write(w)
		return
	}

	NewJSONResponse().Body(map[string]any{
		"valid":    true,
		"user_id":  claims.UserID,
		"username": claims.Username,
	}).Write(w)
}
