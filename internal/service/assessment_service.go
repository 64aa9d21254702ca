package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/eggjam/eggjam-go/internal/model"
	"github.com/google/uuid"
)

// Assessment validation errors.
var (
	ErrUnknownAssessmentType = errors.New("unknown assessment type")
	ErrAnswerCountMismatch   = errors.New("answer count does not match question count")
	ErrScoreOutOfRange       = errors.New("answer score out of range")
)

// phq9Questions are the nine PHQ-9 depression screening items.
var phq9Questions = []string{
	"Little interest or pleasure in doing things",
	"Feeling down, depressed, or hopeless",
	"Trouble falling or staying asleep, or sleeping too much",
	"Feeling tired or having little energy",
	"Poor appetite or overeating",
	"Feeling bad about yourself - or that you are a failure or have let yourself or your family down",
	"Trouble concentrating on things, such as reading or watching television",
	"Moving or speaking so slowly that other people could have noticed. Or the opposite - being so fidgety or restless that you have been moving around a lot more than usual",
	"Thoughts that you would be better off dead, or of hurting yourself in some way",
}

// gad7Questions are the seven GAD-7 anxiety screening items.
var gad7Questions = []string{
	"Feeling nervous, anxious, or on edge",
	"Not being able to stop or control worrying",
	"Worrying too much about different things",
	"Trouble relaxing",
	"Being so restless that it is hard to sit still",
	"Becoming easily annoyed or irritable",
	"Feeling afraid, as if something awful might happen",
}

// responseOptions is the fixed 4-option Likert scale shared by both
// questionnaires, scored 0-3.
var responseOptions = []string{
	"Not at all (0)",
	"Several days (1)",
	"More than half the days (2)",
	"Nearly every day (3)",
}

// AssessmentService scores PHQ-9 and GAD-7 questionnaire submissions.
type AssessmentService struct{}

// NewAssessmentService creates the assessment scorer.
func NewAssessmentService() *AssessmentService {
	return &AssessmentService{}
}

// Questions returns the ordered question list for an assessment type.
func (s *AssessmentService) Questions(assessmentType model.AssessmentType) ([]model.AssessmentQuestion, error) {
	var texts []string
	switch assessmentType {
	case model.AssessmentPHQ9:
		texts = phq9Questions
	case model.AssessmentGAD7:
		texts = gad7Questions
	default:
		return nil, ErrUnknownAssessmentType
	}

	questions := make([]model.AssessmentQuestion, len(texts))
	for i, text := range texts {
		questions[i] = model.AssessmentQuestion{
			ID:       i + 1,
			Question: text,
			Options:  responseOptions,
		}
	}
	return questions, nil
}

// Score validates a submission and produces an immutable result. Malformed
// input (wrong answer count, out-of-range score, unknown type) is rejected,
// never silently scored.
func (s *AssessmentService) Score(submission *model.AssessmentSubmission) (*model.AssessmentResult, error) {
	var questionCount int
	switch submission.AssessmentType {
	case model.AssessmentPHQ9:
		questionCount = len(phq9Questions)
	case model.AssessmentGAD7:
		questionCount = len(gad7Questions)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAssessmentType, submission.AssessmentType)
	}

	if len(submission.Answers) != questionCount {
		return nil, fmt.Errorf("%w: got %d, want %d",
			ErrAnswerCountMismatch, len(submission.Answers), questionCount)
	}

	totalScore := 0
	for _, answer := range submission.Answers {
		if answer.Score < 0 || answer.Score > 3 {
			return nil, fmt.Errorf("%w: question %d scored %d",
				ErrScoreOutOfRange, answer.QuestionID, answer.Score)
		}
		totalScore += answer.Score
	}

	var interp interpretation
	if submission.AssessmentType == model.AssessmentPHQ9 {
		interp = interpretPHQ9(totalScore)
	} else {
		interp = interpretGAD7(totalScore)
	}

	return &model.AssessmentResult{
		ID:                    uuid.New().String(),
		UserID:                submission.UserID,
		AssessmentType:        submission.AssessmentType,
		TotalScore:            totalScore,
		SeverityLevel:         interp.severity,
		Interpretation:        interp.text,
		Recommendations:       interp.recommendations,
		NeedsProfessionalHelp: interp.needsHelp,
		CreatedAt:             time.Now(),
	}, nil
}

type interpretation struct {
	severity        model.SeverityLevel
	text            string
	recommendations []string
	needsHelp       bool
}

// interpretPHQ9 maps a PHQ-9 total (0-27) to its fixed severity band.
// Bands: 0-4 minimal, 5-9 mild, 10-14 moderate, 15-19 moderately severe,
// 20-27 severe. Professional help recommended at moderate and above.
func interpretPHQ9(score int) interpretation {
	switch {
	case score >= 20:
		return interpretation{
			severity: model.SeveritySevere,
			text:     "Your responses indicate severe depression symptoms.",
			recommendations: []string{
				"Immediate professional help is strongly recommended",
				"Consider talking to a psychiatrist or mental health professional",
				"Reach out to your school counselor immediately",
				"Don't hesitate to contact crisis helplines if needed",
			},
			needsHelp: true,
		}
	case score >= 15:
		return interpretation{
			severity: model.SeverityModeratelySevere,
			text:     "Your responses suggest moderately severe depression.",
			recommendations: []string{
				"Professional mental health support is recommended",
				"Schedule an appointment with a counselor or therapist",
				"Practice self-care and maintain social connections",
				"Consider evidence-based therapies like CBT",
			},
			needsHelp: true,
		}
	case score >= 10:
		return interpretation{
			severity: model.SeverityModerate,
			text:     "Your responses indicate moderate depression symptoms.",
			recommendations: []string{
				"Consider talking to a school counselor or therapist",
				"Engage in regular physical activity and healthy sleep habits",
				"Stay connected with supportive friends and family",
				"Practice mindfulness and relaxation techniques",
			},
			needsHelp: true,
		}
	case score >= 5:
		return interpretation{
			severity: model.SeverityMild,
			text:     "Your responses suggest mild depression symptoms.",
			recommendations: []string{
				"Monitor your mood and symptoms over time",
				"Practice self-care: exercise, sleep, healthy eating",
				"Stay socially connected",
				"Consider talking to someone if symptoms persist",
			},
		}
	default:
		return interpretation{
			severity: model.SeverityMinimal,
			text:     "Your responses indicate minimal or no depression symptoms.",
			recommendations: []string{
				"Continue your healthy habits",
				"Stay aware of your mental health",
				"Reach out for support if things change",
			},
		}
	}
}

// interpretGAD7 maps a GAD-7 total (0-21) to its fixed severity band.
// Bands: 0-4 minimal, 5-9 mild, 10-14 moderate, 15-21 severe.
func interpretGAD7(score int) interpretation {
	switch {
	case score >= 15:
		return interpretation{
			severity: model.SeveritySevere,
			text:     "Your responses indicate severe anxiety symptoms.",
			recommendations: []string{
				"Professional mental health support is strongly recommended",
				"Consider seeing a psychiatrist or therapist specializing in anxiety",
				"Learn and practice anxiety management techniques",
				"Reach out to your school counselor",
			},
			needsHelp: true,
		}
	case score >= 10:
		return interpretation{
			severity: model.SeverityModerate,
			text:     "Your responses suggest moderate anxiety.",
			recommendations: []string{
				"Consider talking to a mental health professional",
				"Practice relaxation techniques (deep breathing, meditation)",
				"Regular exercise can help manage anxiety",
				"Limit caffeine and maintain good sleep habits",
			},
			needsHelp: true,
		}
	case score >= 5:
		return interpretation{
			severity: model.SeverityMild,
			text:     "Your responses indicate mild anxiety symptoms.",
			recommendations: []string{
				"Practice stress management techniques",
				"Maintain regular sleep schedule and exercise",
				"Talk to trusted friends or family",
				"Monitor symptoms and seek help if they worsen",
			},
		}
	default:
		return interpretation{
			severity: model.SeverityMinimal,
			text:     "Your responses indicate minimal or no anxiety symptoms.",
			recommendations: []string{
				"Continue practicing healthy coping strategies",
				"Stay mindful of your mental health",
				"Reach out for support if needed",
			},
		}
	}
}
