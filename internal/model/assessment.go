package model

import "time"

// AssessmentType selects one of the supported screening questionnaires.
type AssessmentType string

const (
	AssessmentPHQ9 AssessmentType = "phq9" // depression screening
	AssessmentGAD7 AssessmentType = "gad7" // anxiety screening
)

// SeverityLevel is the named severity band of an assessment score.
type SeverityLevel string

const (
	SeverityMinimal          SeverityLevel = "minimal"
	SeverityMild             SeverityLevel = "mild"
	SeverityModerate         SeverityLevel = "moderate"
	SeverityModeratelySevere SeverityLevel = "moderately_severe"
	SeveritySevere           SeverityLevel = "severe"
)

// AssessmentQuestion is one questionnaire item with its fixed Likert options.
type AssessmentQuestion struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// AssessmentAnswer is the user's score for one question, 0-3.
type AssessmentAnswer struct {
	QuestionID int `json:"question_id"`
	Score      int `json:"score"`
}

// AssessmentSubmission is a complete set of answers for one questionnaire.
type AssessmentSubmission struct {
	UserID         string             `json:"user_id" binding:"required"`
	AssessmentType AssessmentType     `json:"assessment_type" binding:"required"`
	Answers        []AssessmentAnswer `json:"answers" binding:"required"`
	Language       string             `json:"language"`
}

// AssessmentResult is the scored, interpreted outcome of a submission.
// Immutable once created.
type AssessmentResult struct {
	ID                    string         `json:"id"`
	UserID                string         `json:"user_id"`
	AssessmentType        AssessmentType `json:"assessment_type"`
	TotalScore            int            `json:"total_score"`
	SeverityLevel         SeverityLevel  `json:"severity_level"`
	Interpretation        string         `json:"interpretation"`
	Recommendations       []string       `json:"recommendations"`
	NeedsProfessionalHelp bool           `json:"needs_professional_help"`
	CreatedAt             time.Time      `json:"created_at"`
}

// MoodEntry is a daily mood log record, mood score on a 1-10 scale.
type MoodEntry struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	MoodScore int       `json:"mood_score"`
	Emotions  []string  `json:"emotions"`
	Note      string    `json:"note"`
	Date      time.Time `json:"date"`
}
