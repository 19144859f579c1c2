package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"orbix/internal/auth"
	"orbix/internal/models"
	"orbix/internal/services/ats"
)

func CreateResume(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title          string                `json:"title"`
			PersonalInfo   models.PersonalInfo   `json:"personal_info"`
			Experience     models.Experiences    `json:"experience"`
			Education      models.Educations     `json:"education"`
			Skills         models.StringList     `json:"skills"`
			Projects       models.ResumeProjects `json:"projects"`
			Certifications models.Certifications `json:"certifications"`
			TemplateID     string                `json:"template_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.Title) == "" {
			respondError(w, http.StatusBadRequest, "title required")
			return
		}
		res := models.Resume{
			UserID:         auth.Subject(r.Context()),
			Title:          strings.TrimSpace(req.Title),
			PersonalInfo:   req.PersonalInfo,
			Experience:     req.Experience,
			Education:      req.Education,
			Skills:         req.Skills,
			Projects:       req.Projects,
			Certifications: req.Certifications,
			TemplateID:     "modern",
		}
		if req.TemplateID != "" {
			res.TemplateID = req.TemplateID
		}
		if err := db.Create(&res).Error; err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondJSON(w, res)
	}
}

func ListResumes(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rs []models.Resume
		if err := db.Where("user_id = ?", auth.Subject(r.Context())).
			Order("updated_at desc").Find(&rs).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, rs)
	}
}

func GetResume(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var res models.Resume
		if err := db.First(&res, "id = ? AND user_id = ?", chi.URLParam(r, "id"), auth.Subject(r.Context())).Error; err != nil {
			notFoundOr500(w, err, "resume")
			return
		}
		respondJSON(w, res)
	}
}

func UpdateResume(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title          *string                `json:"title"`
			PersonalInfo   *models.PersonalInfo   `json:"personal_info"`
			Experience     *models.Experiences    `json:"experience"`
			Education      *models.Educations     `json:"education"`
			Skills         *models.StringList     `json:"skills"`
			Projects       *models.ResumeProjects `json:"projects"`
			Certifications *models.Certifications `json:"certifications"`
			TemplateID     *string                `json:"template_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		var res models.Resume
		if err := db.First(&res, "id = ? AND user_id = ?", chi.URLParam(r, "id"), auth.Subject(r.Context())).Error; err != nil {
			notFoundOr500(w, err, "resume")
			return
		}
		if req.Title != nil {
			res.Title = *req.Title
		}
		if req.PersonalInfo != nil {
			res.PersonalInfo = *req.PersonalInfo
		}
		if req.Experience != nil {
			res.Experience = *req.Experience
		}
		if req.Education != nil {
			res.Education = *req.Education
		}
		if req.Skills != nil {
			res.Skills = *req.Skills
		}
		if req.Projects != nil {
			res.Projects = *req.Projects
		}
		if req.Certifications != nil {
			res.Certifications = *req.Certifications
		}
		if req.TemplateID != nil {
			res.TemplateID = *req.TemplateID
		}
		res.UpdatedAt = time.Now()
		if err := db.Save(&res).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, res)
	}
}

func DeleteResume(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := db.Delete(&models.Resume{}, "id = ? AND user_id = ?", chi.URLParam(r, "id"), auth.Subject(r.Context()))
		if res.Error != nil {
			respondError(w, http.StatusInternalServerError, res.Error.Error())
			return
		}
		if res.RowsAffected == 0 {
			respondError(w, http.StatusNotFound, "resume not found")
			return
		}
		respondJSON(w, map[string]any{"deleted": true})
	}
}

func DuplicateResume(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := auth.Subject(r.Context())
		var src models.Resume
		if err := db.First(&src, "id = ? AND user_id = ?", chi.URLParam(r, "id"), uid).Error; err != nil {
			notFoundOr500(w, err, "resume")
			return
		}
		dup := models.Resume{
			UserID:         uid,
			Title:          src.Title + " (Copy)",
			PersonalInfo:   src.PersonalInfo,
			Experience:     src.Experience,
			Education:      src.Education,
			Skills:         src.Skills,
			Projects:       src.Projects,
			Certifications: src.Certifications,
			TemplateID:     src.TemplateID,
		}
		if err := db.Create(&dup).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, dup)
	}
}

func ListResumeTemplates(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	templates := []map[string]string{
		{"id": "modern", "name": "Modern", "description": "Clean two-column layout with accent color"},
		{"id": "classic", "name": "Classic", "description": "Traditional single-column chronological layout"},
		{"id": "minimal", "name": "Minimal", "description": "Typography-first layout with generous whitespace"},
		{"id": "creative", "name": "Creative", "description": "Bold layout for design-oriented roles"},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, templates)
	}
}

// AtsScore runs the checklist scorer and persists the result on the
// resume.
func AtsScore(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var res models.Resume
		if err := db.First(&res, "id = ? AND user_id = ?", chi.URLParam(r, "id"), auth.Subject(r.Context())).Error; err != nil {
			notFoundOr500(w, err, "resume")
			return
		}
		result := ats.Score(&res)
		res.AtsScore = &result.Score
		res.UpdatedAt = time.Now()
		if err := db.Save(&res).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, result)
	}
}

// ImproveSection is a placeholder for the AI rewriting service, which is
// not wired to a real model. It echoes a lightly polished version of the
// submitted text.
func ImproveSection(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Section string `json:"section"`
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Section == "" {
			respondError(w, http.StatusBadRequest, "section required")
			return
		}
		var res models.Resume
		if err := db.First(&res, "id = ? AND user_id = ?", chi.URLParam(r, "id"), auth.Subject(r.Context())).Error; err != nil {
			notFoundOr500(w, err, "resume")
			return
		}
		improved := strings.TrimSpace(req.Content)
		if improved == "" {
			improved = "Results-driven professional with a track record of delivering measurable outcomes."
		}
		respondJSON(w, map[string]any{
			"section":          req.Section,
			"improved_content": improved,
			"suggestions": []string{
				"Lead with quantified achievements rather than responsibilities",
				"Use strong action verbs at the start of each bullet",
				"Mirror keywords from the target job description",
			},
		})
	}
}
