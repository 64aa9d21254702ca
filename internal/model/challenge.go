package model

import "time"

// ChallengeType distinguishes how a challenge is delivered.
type ChallengeType string

const (
	ChallengeDaily    ChallengeType = "daily"
	ChallengeQuest    ChallengeType = "quest"
	ChallengeSocial   ChallengeType = "social"
	ChallengeProof    ChallengeType = "proof"
	ChallengeSurprise ChallengeType = "surprise"
)

// SkillCategory is the life-skill area a challenge targets.
type SkillCategory string

const (
	SkillCivicSense         SkillCategory = "civic_sense"
	SkillRoadManners        SkillCategory = "road_manners"
	SkillSoftSkills         SkillCategory = "soft_skills"
	SkillCommunication      SkillCategory = "communication"
	SkillGoalSetting        SkillCategory = "goal_setting"
	SkillConflictResolution SkillCategory = "conflict_resolution"
)

// DifficultyLevel grades a challenge.
type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
)

// ChallengeRequest asks for personalized challenges for one user.
type ChallengeRequest struct {
	UserID           string          `json:"user_id" binding:"required"`
	Age              int             `json:"age"`
	Interests        []string        `json:"interests"`
	CurrentStruggles []string        `json:"current_struggles"`
	SkillCategory    SkillCategory   `json:"skill_category"`
	Difficulty       DifficultyLevel `json:"difficulty"`
}

// Challenge is one generated, user-specific challenge.
type Challenge struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Category       SkillCategory   `json:"category"`
	ChallengeType  ChallengeType   `json:"challenge_type"`
	Difficulty     DifficultyLevel `json:"difficulty"`
	Points         int             `json:"points"`
	EstimatedTime  int             `json:"estimated_time"` // minutes
	RequiresProof  bool            `json:"requires_proof"`
	Hints          []string        `json:"hints"`
	WhyThisMatters string          `json:"why_this_matters"`
}

// Quest is a multi-day story-based challenge arc.
type Quest struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Story     string         `json:"story"`
	TotalDays int            `json:"total_days"`
	Chapters  []QuestChapter `json:"chapters"`
}

// QuestChapter is one day of a quest.
type QuestChapter struct {
	Day       int    `json:"day"`
	Title     string `json:"title"`
	Challenge string `json:"challenge"`
}

// ChallengeCompletion records that a user finished a challenge.
type ChallengeCompletion struct {
	UserID       string    `json:"user_id" binding:"required"`
	ChallengeID  string    `json:"challenge_id" binding:"required"`
	CompletedAt  time.Time `json:"completed_at"`
	ProofURL     string    `json:"proof_url"`
	Reflection   string    `json:"reflection"`
	PointsEarned int       `json:"points_earned"`
}
