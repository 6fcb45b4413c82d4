package matcher

import (
	"testing"

	"github.com/wmuchiri/kaziflow/pkg/models"
)

func welder(yrs int) *models.Applicant {
	return &models.Applicant{
		FullName:          "Test Welder",
		Category:          "Welder",
		Nationality:       "KE",
		YearsExperience:   yrs,
		Gender:            "M",
		TrainingCompleted: true,
		MedicalClearance:  true,
	}
}

func welderJob(required int) *models.JobRequest {
	return &models.JobRequest{
		Category:           "Welder",
		Country:            "KE",
		RequiredExperience: required,
		Gender:             "M",
	}
}

func TestScorePrimary(t *testing.T) {
	tests := []struct {
		name      string
		applicant *models.Applicant
		job       *models.JobRequest
		expected  int
	}{
		{
			name:      "full match",
			applicant: welder(3),
			job:       welderJob(2),
			expected:  100, // 40 + 30 + 10 + 10 + 10
		},
		{
			name:      "one year short gets partial experience credit",
			applicant: welder(1),
			job:       welderJob(2),
			expected:  85, // 40 + 15 + 10 + 10 + 10
		},
		{
			name:      "two years short gets no experience credit",
			applicant: welder(0),
			job:       welderJob(2),
			expected:  70, // 40 + 0 + 10 + 10 + 10
		},
		{
			name:      "category mismatch",
			applicant: &models.Applicant{Category: "Driver", YearsExperience: 5, Gender: "M", TrainingCompleted: true, MedicalClearance: true},
			job:       welderJob(2),
			expected:  60, // 0 + 30 + 10 + 10 + 10
		},
		{
			name:      "gender filter mismatch",
			applicant: &models.Applicant{Category: "Welder", YearsExperience: 3, Gender: "F", TrainingCompleted: true, MedicalClearance: true},
			job:       welderJob(2),
			expected:  90, // 40 + 30 + 0 + 10 + 10
		},
		{
			name:      "unspecified gender does not satisfy a gender filter",
			applicant: &models.Applicant{Category: "Welder", YearsExperience: 3, TrainingCompleted: true, MedicalClearance: true},
			job:       welderJob(2),
			expected:  90,
		},
		{
			name:      "no gender filter scores the gender component",
			applicant: &models.Applicant{Category: "Welder", YearsExperience: 3},
			job:       &models.JobRequest{Category: "Welder", RequiredExperience: 2},
			expected:  80, // 40 + 30 + 10
		},
		{
			name:      "empty applicant against empty job",
			applicant: &models.Applicant{},
			job:       &models.JobRequest{},
			expected:  80, // category "" == "", experience 0 >= 0, no gender filter
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PolicyPrimary.Score(tt.applicant, tt.job)
			if got != tt.expected {
				t.Errorf("PolicyPrimary.Score() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestScoreBulk(t *testing.T) {
	tests := []struct {
		name      string
		applicant *models.Applicant
		job       *models.JobRequest
		expected  int
	}{
		{
			name:      "full match without passport",
			applicant: welder(3),
			job:       welderJob(2),
			expected:  70, // 25 + 25 + 20 + 0
		},
		{
			name:      "experience short gets no partial credit",
			applicant: welder(1),
			job:       welderJob(2),
			expected:  50, // 25 + 25 + 0 + 0
		},
		{
			name: "passport on file",
			applicant: &models.Applicant{
				Category:        "Welder",
				Nationality:     "KE",
				YearsExperience: 3,
				PassportNumber:  "A1234567",
			},
			job:      welderJob(2),
			expected: 85, // 25 + 25 + 20 + 15
		},
		{
			name:      "missing nationality contributes zero even when job country is empty",
			applicant: &models.Applicant{Category: "Welder", YearsExperience: 3},
			job:       &models.JobRequest{Category: "Welder", RequiredExperience: 2},
			expected:  45, // 25 + 0 + 20 + 0
		},
		{
			name:      "nothing matches",
			applicant: &models.Applicant{Category: "Driver", Nationality: "UG"},
			job:       &models.JobRequest{Category: "Welder", Country: "KE", RequiredExperience: 5},
			expected:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PolicyBulk.Score(tt.applicant, tt.job)
			if got != tt.expected {
				t.Errorf("PolicyBulk.Score() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestScoreDeterministicAndBounded(t *testing.T) {
	applicants := []*models.Applicant{
		welder(0), welder(1), welder(3), welder(25),
		{},
		{Category: "Driver", Nationality: "UG", Gender: "F", PassportNumber: "B7654321"},
	}
	jobs := []*models.JobRequest{
		welderJob(0), welderJob(2), welderJob(10),
		{},
		{Category: "Driver", Country: "UG", Gender: "F", RequiredExperience: 1},
	}

	for _, policy := range []Policy{PolicyPrimary, PolicyBulk} {
		for _, a := range applicants {
			for _, j := range jobs {
				first := policy.Score(a, j)
				for i := 0; i < 3; i++ {
					if got := policy.Score(a, j); got != first {
						t.Fatalf("%s score not deterministic: %d then %d", policy, first, got)
					}
				}
				if first < 0 || first > 100 {
					t.Errorf("%s score %d out of [0,100]", policy, first)
				}
			}
		}
	}
}

func TestDefaultThreshold(t *testing.T) {
	if got := PolicyPrimary.DefaultThreshold(); got != 50 {
		t.Errorf("primary threshold = %d, expected 50", got)
	}
	if got := PolicyBulk.DefaultThreshold(); got != 60 {
		t.Errorf("bulk threshold = %d, expected 60", got)
	}
}
