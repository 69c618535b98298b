package audit

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"go-pos-backoffice/internal/models"
)

// Recorder appends entries to the activity log. Writes are best-effort:
// a failed insert is logged and swallowed so it can never fail the
// business action that triggered it.
type Recorder struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewRecorder constructs the activity log recorder.
func NewRecorder(db *gorm.DB, logger zerolog.Logger) *Recorder {
	return &Recorder{db: db, logger: logger}
}

// Record appends one entry: who did what, how serious, which icon the UI shows.
func (r *Recorder) Record(userID uint, verb, level, icon string) {
	entry := models.ActivityLog{
		UserID: userID,
		Verb:   verb,
		Level:  level,
		Icon:   icon,
	}
	if err := r.db.Create(&entry).Error; err != nil {
		r.logger.Error().Err(err).
			Uint("user_id", userID).
			Str("verb", verb).
			Msg("activity log write failed")
	}
}

// Recent returns the newest entries for the dashboard feed.
func (r *Recorder) Recent(limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 20
	}
	var entries []models.ActivityLog
	err := r.db.Preload("User").Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
