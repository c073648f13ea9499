package jobs

import (
	"log"
	"time"

	"cazinoureview/services/sheets"
	"cazinoureview/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InitCronJobs registers the daily token health check. Imports and
// calculations stay operator-triggered only.
func InitCronJobs(c *cron.Cron, db *gorm.DB) error {
	_, err := c.AddFunc("0 0 * * *", func() {
		now := time.Now()
		log.Printf("Running Google token health check at: %v", now)
		if sheets.TokenHealthy(db) {
			utils.LogInfo("Google token health check passed")
			return
		}
		utils.LogError("Google token missing or expired, admin re-authentication required")
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
