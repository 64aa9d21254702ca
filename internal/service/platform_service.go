package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/eggjam/eggjam-go/internal/model"
	"github.com/eggjam/eggjam-go/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// defaultConfigs are seeded at startup when their key is absent. Admin edits
// survive restarts because seeding never overwrites.
var defaultConfigs = []model.PlatformConfig{
	{
		Key:         "ai_model_config",
		Value:       json.RawMessage(`{"provider":"openai","model":"gpt-4","temperature":0.7,"max_tokens":2000,"fallback_provider":"anthropic"}`),
		Category:    "ai_gateway",
		Description: "Core AI model configuration",
	},
	{
		Key:         "subscription_pricing",
		Value:       json.RawMessage(`{"student_monthly":199,"student_yearly":1999,"school_license_base":50000,"currency":"INR","discount_enabled":true}`),
		Category:    "billing",
		Description: "Global pricing configuration",
	},
	{
		Key:         "feature_flags",
		Value:       json.RawMessage(`{"video_chat":true,"parent_portal":true,"beta_features":false,"maintenance_mode":false}`),
		Category:    "system",
		Description: "Global feature toggles",
	},
	{
		Key:         "api_rate_limits",
		Value:       json.RawMessage(`{"global_limit":1000,"student_limit":100,"school_limit":5000}`),
		Category:    "api",
		Description: "API Rate limiting configuration",
	},
	{
		Key:         "roles_config",
		Value:       json.RawMessage(`{"default_student_role":"student","admin_can_delete_users":true,"teacher_can_view_analytics":true,"counselor_max_students":50}`),
		Category:    "roles",
		Description: "Role-based access control settings",
	},
	{
		Key:         "partner_config",
		Value:       json.RawMessage(`{"enable_resellers":false,"partner_api_access":true,"revenue_share_percentage":20,"whitelabel_enabled":false}`),
		Category:    "partner",
		Description: "Partner and reseller configurations",
	},
	{
		Key:         "regional_config",
		Value:       json.RawMessage(`{"default_language":"en","supported_languages":["en","hi","ta","te"],"timezone":"Asia/Kolkata","data_residency":"India"}`),
		Category:    "regional",
		Description: "Regional and localization settings",
	},
	{
		Key:         "marketing_config",
		Value:       json.RawMessage(`{"enable_referral_program":true,"referral_bonus_credits":100,"seo_meta_tags":{"title":"EggJam.ai - Student Mental Health","description":"AI-powered mental health platform"},"email_campaign_enabled":true}`),
		Category:    "marketing",
		Description: "Marketing and growth configurations",
	},
	{
		Key:         "ad_config",
		Value:       json.RawMessage(`{"enable_ads_free_tier":false,"ad_provider":"google_adsense","ad_frequency_minutes":30,"blocked_categories":["gambling","alcohol"]}`),
		Category:    "advertisement",
		Description: "Advertisement settings for free tier",
	},
	{
		Key:         "landing_page_config",
		Value:       json.RawMessage(`{"hero_title":"Empowering Student Minds","hero_subtitle":"AI-driven mental health support for the next generation","show_testimonials":true,"show_pricing":true,"primary_color":"#4f46e5"}`),
		Category:    "landing_page",
		Description: "Public landing page customization",
	},
	{
		Key:         "account_config",
		Value:       json.RawMessage(`{"password_min_length":8,"require_email_verification":true,"session_timeout_minutes":60,"max_login_attempts":5}`),
		Category:    "account",
		Description: "User account security policies",
	},
}

// PlatformService covers platform administration: config documents with an
// audit trail, schools, and dashboard stats.
type PlatformService struct {
	db     *store.DB
	logger *zap.Logger
}

// NewPlatformService creates the admin layer.
func NewPlatformService(db *store.DB, logger *zap.Logger) *PlatformService {
	return &PlatformService{db: db, logger: logger}
}

// SeedDefaults inserts any missing default configurations. Existing keys are
// left untouched.
func (s *PlatformService) SeedDefaults(ctx context.Context) error {
	for i := range defaultConfigs {
		if err := s.db.SeedConfig(ctx, &defaultConfigs[i]); err != nil {
			return err
		}
	}
	s.logger.Info("default platform configs seeded", zap.Int("count", len(defaultConfigs)))
	return nil
}

// Configs lists configurations, optionally filtered by category.
func (s *PlatformService) Configs(ctx context.Context, category string) ([]model.PlatformConfig, error) {
	return s.db.Configs(ctx, category)
}

// Config loads one configuration.
func (s *PlatformService) Config(ctx context.Context, key string) (*model.PlatformConfig, error) {
	return s.db.ConfigByKey(ctx, key)
}

// CreateConfig inserts a new configuration and audits the action.
func (s *PlatformService) CreateConfig(ctx context.Context, cfg *model.PlatformConfig, clientIP string) error {
	if err := s.db.CreateConfig(ctx, cfg); err != nil {
		return err
	}
	s.audit(ctx, cfg.UpdatedBy, "create_config", "config:"+cfg.Key, cfg.Value, clientIP)
	return nil
}

// UpdateConfig replaces a configuration value and audits the action.
func (s *PlatformService) UpdateConfig(ctx context.Context, key string, update *model.ConfigUpdateRequest, clientIP string) (*model.PlatformConfig, error) {
	cfg, err := s.db.UpdateConfig(ctx, key, update)
	if err != nil {
		return nil, err
	}
	s.audit(ctx, update.UpdatedBy, "update_config", "config:"+key, update.Value, clientIP)
	return cfg, nil
}

// Stats returns the admin dashboard counters.
func (s *PlatformService) Stats(ctx context.Context) (*model.PlatformStats, error) {
	return s.db.Stats(ctx)
}

// CreateSchool registers a licensed school. A license key is generated when
// the request does not carry one; the key column is unique, so inserting the
// empty string twice would otherwise fail.
func (s *PlatformService) CreateSchool(ctx context.Context, school *model.School, actorID, clientIP string) error {
	if school.LicenseKey == "" {
		school.LicenseKey = newLicenseKey()
	}
	if school.MaxStudents <= 0 {
		school.MaxStudents = 500
	}
	if school.CreatedAt.IsZero() {
		school.CreatedAt = time.Now()
	}
	if err := s.db.CreateSchool(ctx, school); err != nil {
		return err
	}
	s.audit(ctx, actorID, "create_school", school.Name, nil, clientIP)
	return nil
}

// newLicenseKey builds a school license key like "SCH-3FA85F64".
func newLicenseKey() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "SCH-" + strings.ToUpper(hex[:8])
}

// Schools lists all schools.
func (s *PlatformService) Schools(ctx context.Context) ([]model.School, error) {
	return s.db.Schools(ctx)
}

// School loads one school.
func (s *PlatformService) School(ctx context.Context, id int64) (*model.School, error) {
	return s.db.SchoolByID(ctx, id)
}

// SchoolStudents lists accounts enrolled at a school.
func (s *PlatformService) SchoolStudents(ctx context.Context, schoolID int64) ([]model.User, error) {
	return s.db.UsersBySchool(ctx, schoolID)
}

// audit records an admin action. Audit failures are logged, never fatal.
func (s *PlatformService) audit(ctx context.Context, userID, action, resource string, details json.RawMessage, clientIP string) {
	entry := &model.AuditLog{
		UserID:    userID,
		Action:    action,
		Resource:  resource,
		Details:   details,
		IPAddress: clientIP,
	}
	if err := s.db.InsertAuditLog(ctx, entry); err != nil {
		s.logger.Error("audit log write failed",
			zap.String("action", action), zap.Error(err))
	}
}
