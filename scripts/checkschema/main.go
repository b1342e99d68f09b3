package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"

	"github.com/twgdev/sigma-scheduler/internal/domain/entities"
	"github.com/twgdev/sigma-scheduler/internal/infrastructure/database"
	"github.com/twgdev/sigma-scheduler/pkg/config"
)

type options struct {
	EventID string `envconfig:"EVENT_ID" default:"schema-probe"`
}

// checkschema verifies that the meetings table carries the meeting_summary
// column. The hosted store's SQL console is the only place the column can be
// added, so when the probe fails this prints the statement to paste there.
func main() {
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

	log.Println("🔎 Probing meetings table for the meeting_summary column...")

	// Explicit id so the cleanup targets exactly this row even if the run
	// is interrupted
	summary := "schema probe"
	probe := &entities.Meeting{
		ID:             uuid.NewString(),
		EventID:        opts.EventID,
		Date:           "2000-01-01",
		TimeSlot:       "10:00",
		Status:         entities.MeetingStatusNotConfirmed,
		CompanyName:    "schema-probe",
		MeetingSummary: &summary,
	}

	err = db.Create(probe).Error
	if err == nil {
		// Probe row landed, column exists. Remove it again.
		if delErr := db.Delete(&entities.Meeting{}, "id = ?", probe.ID).Error; delErr != nil {
			log.Printf("⚠️  Could not remove probe row %s: %v", probe.ID, delErr)
		}
		log.Println("✅ meeting_summary column is present. Schema is up to date.")
		return
	}

	if !strings.Contains(err.Error(), "meeting_summary") {
		log.Fatalf("❌ Probe insert failed for an unrelated reason: %v", err)
	}

	// Leftover probe rows from a partial earlier run
	db.Where("event_id = ?", opts.EventID).Delete(&entities.Meeting{})

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("❌ The meetings table is missing the meeting_summary column.")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Println("Run this statement in the store's SQL console:")
	fmt.Println()
	fmt.Println("    ALTER TABLE meetings ADD COLUMN IF NOT EXISTS meeting_summary TEXT;")
	fmt.Println()
	fmt.Println("Then re-run this check to confirm:")
	fmt.Println()
	fmt.Println("    go run ./scripts/checkschema")
	fmt.Println()
	fmt.Printf("Checked at %s\n", time.Now().Format(time.RFC3339))
}
