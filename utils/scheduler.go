package utils

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"lms/models"
)

// emailCodeTTL is how long an email-change code stays redeemable.
const emailCodeTTL = 15 * time.Minute

// StartEmailCodeJanitor runs a periodic job that clears stale email-change
// codes so an old code cannot be redeemed days later. The returned cron can
// be stopped on shutdown.
func StartEmailCodeJanitor(db *gorm.DB) *cron.Cron {
	log.Println("[JANITOR] Initializing email-change code janitor...")

	c := cron.New()
	c.AddFunc("@every 1h", func() {
		ExpireEmailChangeCodes(db)
	})
	c.Start()

	log.Println("[JANITOR] Email-change code janitor started - runs hourly")
	return c
}

// ExpireEmailChangeCodes clears pending email changes older than the TTL.
func ExpireEmailChangeCodes(db *gorm.DB) {
	cutoff := time.Now().Add(-emailCodeTTL)

	result := db.Model(&models.User{}).
		Where("email_change_sent_at IS NOT NULL AND email_change_sent_at < ?", cutoff).
		Updates(map[string]interface{}{
			"pending_email":        "",
			"email_change_code":    "",
			"email_change_sent_at": nil,
		})
	if result.Error != nil {
		log.Printf("[JANITOR] Error expiring email-change codes: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[JANITOR] Cleared %d stale email-change code(s)", result.RowsAffected)
	}
}
