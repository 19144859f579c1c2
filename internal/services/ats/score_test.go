package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"orbix/internal/models"
)

func fullResume() *models.Resume {
	return &models.Resume{
		PersonalInfo: models.PersonalInfo{
			FullName: "Jordan Reyes",
			Email:    "jordan@example.com",
			Phone:    "+1 555 0100",
			Summary:  "Backend engineer with eight years of Go experience.",
		},
		Experience: models.Experiences{{Company: "Acme", Position: "Engineer"}},
		Education:  models.Educations{{Institution: "State University", Degree: "BSc"}},
		Skills:     models.StringList{"Go", "PostgreSQL"},
		Projects:   models.ResumeProjects{{Name: "orbix"}},
	}
}

func TestScoreEmptyResume(t *testing.T) {
	res := Score(&models.Resume{})
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, "Needs improvement", res.Feedback)
	assert.Len(t, res.Suggestions, 8)
}

func TestScoreFullResume(t *testing.T) {
	res := Score(fullResume())
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, "Excellent!", res.Feedback)
	assert.Empty(t, res.Suggestions)
}

// Adding any single checked item to an empty resume raises the score by
// exactly that item's weight.
func TestScoreMonotonic(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.Resume)
		weight int
	}{
		{"full_name", func(r *models.Resume) { r.PersonalInfo.FullName = "A" }, DefaultWeights.FullName},
		{"email", func(r *models.Resume) { r.PersonalInfo.Email = "a@b.c" }, DefaultWeights.Email},
		{"phone", func(r *models.Resume) { r.PersonalInfo.Phone = "555" }, DefaultWeights.Phone},
		{"summary", func(r *models.Resume) { r.PersonalInfo.Summary = "x" }, DefaultWeights.Summary},
		{"experience", func(r *models.Resume) { r.Experience = models.Experiences{{}} }, DefaultWeights.Experience},
		{"education", func(r *models.Resume) { r.Education = models.Educations{{}} }, DefaultWeights.Education},
		{"skills", func(r *models.Resume) { r.Skills = models.StringList{"Go"} }, DefaultWeights.Skills},
		{"projects", func(r *models.Resume) { r.Projects = models.ResumeProjects{{}} }, DefaultWeights.Projects},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var r models.Resume
			tc.mutate(&r)
			assert.Equal(t, tc.weight, Score(&r).Score)
		})
	}
}

func TestFeedbackThresholds(t *testing.T) {
	assert.Equal(t, "Excellent!", feedback(80))
	assert.Equal(t, "Good, but can be improved", feedback(79))
	assert.Equal(t, "Good, but can be improved", feedback(60))
	assert.Equal(t, "Needs improvement", feedback(59))
}

func TestWhitespaceOnlyFieldsDoNotCount(t *testing.T) {
	r := &models.Resume{PersonalInfo: models.PersonalInfo{FullName: "   "}}
	assert.Equal(t, 0, Score(r).Score)
}
