package main

import (
	"log"

	"github.com/kelseyhightower/envconfig"

	"github.com/twgdev/sigma-scheduler/internal/domain/entities"
	"github.com/twgdev/sigma-scheduler/internal/infrastructure/database"
	"github.com/twgdev/sigma-scheduler/pkg/config"
)

type options struct {
	EventID string `envconfig:"EVENT_ID" default:"sigma-rome-2025"`
	Keep    bool   `envconfig:"SEED_KEEP_EXISTING" default:"false"`
}

func main() {
	log.Println("🚀 Seeding sample meetings...")

	var opts options
	if err := envconfig.Process("", &opts); err != nil {
		log.Fatalf("Failed to read options: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if !cfg.StoreConfigured() {
		log.Fatalf("❌ Record store is not configured. Set STORE_URL and STORE_ACCESS_KEY first.")
	}

	log.Println("📦 Connecting to record store...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to record store: %v", err)
	}
	defer database.CloseDB(db)

	if !opts.Keep {
		log.Printf("🗑️  Removing existing meetings for event %s...", opts.EventID)
		if err := db.Where("event_id = ?", opts.EventID).Delete(&entities.Meeting{}).Error; err != nil {
			log.Fatalf("Failed to clear existing meetings: %v", err)
		}
	}

	samples := entities.SampleMeetings()
	created := 0
	for i := range samples {
		m := samples[i]
		m.ID = "" // let the store assign a fresh uuid
		m.EventID = opts.EventID
		if err := db.Create(&m).Error; err != nil {
			log.Printf("❌ Failed to insert %s %s (%s): %v", m.Date, m.TimeSlot, m.CompanyName, err)
			continue
		}
		log.Printf("🟢 %s %s  %s", m.Date, m.TimeSlot, m.CompanyName)
		created++
	}

	log.Printf("✅ Seeded %d of %d sample meeting(s) for event %s", created, len(samples), opts.EventID)
}
