package utils

import (
	"log"
	"time"

	"github.com/Manel-Mahdjoubi/novexa/database"
	"github.com/Manel-Mahdjoubi/novexa/models"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[CLEANUP-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// purgeExpiredOTPs hard-deletes verification codes past their expiry
func purgeExpiredOTPs() {
	result := database.Database.Db.Unscoped().
		Where("expires_at < ?", time.Now()).
		Delete(&models.OTP{})
	if result.Error != nil {
		logScheduler("Error purging expired OTPs: " + result.Error.Error())
		return
	}
	if result.RowsAffected > 0 {
		logScheduler("Purged expired OTPs: " + time.Now().Format(time.RFC3339))
	}
}

// purgeStaleLoginHistory trims login tracking rows older than 90 days
func purgeStaleLoginHistory() {
	cutoff := time.Now().AddDate(0, 0, -90)
	result := database.Database.Db.Unscoped().
		Where("created_at < ?", cutoff).
		Delete(&models.LoginTracking{})
	if result.Error != nil {
		logScheduler("Error purging login history: " + result.Error.Error())
	}
}

// StartCleanupScheduler runs housekeeping jobs on an hourly cadence.
// The returned cron can be stopped on shutdown.
func StartCleanupScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", purgeExpiredOTPs); err != nil {
		log.Fatalf("Failed to schedule OTP cleanup: %v", err)
	}
	if _, err := c.AddFunc("@daily", purgeStaleLoginHistory); err != nil {
		log.Fatalf("Failed to schedule login history cleanup: %v", err)
	}

	c.Start()
	logScheduler("Cleanup scheduler started")
	return c
}
