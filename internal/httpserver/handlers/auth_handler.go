package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"orbix/internal/auth"
	"orbix/internal/models"
)

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func Register(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
			respondError(w, http.StatusBadRequest, "email, password and name required")
			return
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "hash error")
			return
		}
		u := models.User{Email: req.Email, PasswordHash: hash, Name: strings.TrimSpace(req.Name)}
		if err := db.Create(&u).Error; err != nil {
			// uniqueIndex on email surfaces duplicates here
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		tok, err := auth.Sign(u.ID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "token error")
			return
		}
		lg.Infow("user registered", "user_id", u.ID)
		respondJSON(w, map[string]any{"user": u, "token": tok})
	}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		var u models.User
		if err := db.First(&u, "email = ?", strings.TrimSpace(strings.ToLower(req.Email))).Error; err != nil {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if err := auth.CheckPassword(u.PasswordHash, req.Password); err != nil {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		tok, err := auth.Sign(u.ID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "token error")
			return
		}
		respondJSON(w, map[string]any{"user": u, "token": tok})
	}
}

func Me(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var u models.User
		if err := db.First(&u, "id = ?", auth.Subject(r.Context())).Error; err != nil {
			notFoundOr500(w, err, "user")
			return
		}
		respondJSON(w, u)
	}
}
