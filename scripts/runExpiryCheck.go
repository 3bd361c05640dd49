package main

import (
	"lms/config"
	"lms/database"
	"lms/utils"
	"log"
	"os"
	"time"
)

// One-shot enrollment expiry sweep, meant for an external daily scheduler.
// The API server runs the same sweep on its own cron; this entry point
// covers deployments where the server process is not long-lived.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	summary := utils.RunExpirySweep(database.Database.Db, time.Now())

	log.Printf("Expiry check completed: %d expired, %d warnings", summary.ExpiredCount, summary.WarningCount)

	if !summary.Success {
		log.Println("Expiry check finished with per-record errors")
		os.Exit(1)
	}
}
