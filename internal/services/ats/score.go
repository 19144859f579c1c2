// Package ats scores resumes against a fixed checklist the way applicant
// tracking systems are commonly gamed: presence of contact details, a
// summary, and at least one entry in each major section. The weights are
// business policy, not an algorithm, so they live in a config struct.
package ats

import (
	"strings"

	"orbix/internal/models"
)

type Weights struct {
	FullName   int
	Email      int
	Phone      int
	Summary    int
	Experience int
	Education  int
	Skills     int
	Projects   int
}

// DefaultWeights sums to 100.
var DefaultWeights = Weights{
	FullName:   10,
	Email:      10,
	Phone:      5,
	Summary:    15,
	Experience: 20,
	Education:  15,
	Skills:     15,
	Projects:   10,
}

type Result struct {
	Score       int      `json:"score"`
	Feedback    string   `json:"feedback"`
	Suggestions []string `json:"suggestions"`
}

func Score(r *models.Resume) Result {
	return ScoreWith(DefaultWeights, r)
}

func ScoreWith(w Weights, r *models.Resume) Result {
	score := 0
	var suggestions []string

	check := func(present bool, weight int, suggestion string) {
		if present {
			score += weight
		} else {
			suggestions = append(suggestions, suggestion)
		}
	}

	check(strings.TrimSpace(r.PersonalInfo.FullName) != "", w.FullName, "Add your full name")
	check(strings.TrimSpace(r.PersonalInfo.Email) != "", w.Email, "Add a contact email address")
	check(strings.TrimSpace(r.PersonalInfo.Phone) != "", w.Phone, "Add a phone number")
	check(strings.TrimSpace(r.PersonalInfo.Summary) != "", w.Summary, "Add a professional summary at the top")
	check(len(r.Experience) > 0, w.Experience, "Add at least one work experience entry")
	check(len(r.Education) > 0, w.Education, "Add your education history")
	check(len(r.Skills) > 0, w.Skills, "List your key skills")
	check(len(r.Projects) > 0, w.Projects, "Showcase at least one project")

	return Result{Score: score, Feedback: feedback(score), Suggestions: suggestions}
}

func feedback(score int) string {
	switch {
	case score >= 80:
		return "Excellent!"
	case score >= 60:
		return "Good, but can be improved"
	default:
		return "Needs improvement"
	}
}
