package main

import (
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/twgdev/sigma-scheduler/internal/domain/entities"
	"github.com/twgdev/sigma-scheduler/internal/infrastructure/database"
	"github.com/twgdev/sigma-scheduler/pkg/config"
)

// pingstore is a smoke test for the hosted record store: it inspects the
// access key, opens a connection, and counts the meetings table.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if !cfg.StoreConfigured() {
		log.Fatalf("❌ Record store is not configured. Set STORE_URL and STORE_ACCESS_KEY first.")
	}

	describeAccessKey(cfg.Store.AccessKey)

	log.Println("📦 Connecting to record store...")
	start := time.Now()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("❌ Connection failed: %v", err)
	}
	defer database.CloseDB(db)
	log.Printf("✅ Connected in %s", time.Since(start).Round(time.Millisecond))

	var count int64
	if err := db.Model(&entities.Meeting{}).Where("event_id = ?", cfg.Event.ID).Count(&count).Error; err != nil {
		log.Fatalf("❌ Query failed: %v", err)
	}

	fmt.Printf("\n✅ Store is reachable. Event %s has %d meeting(s).\n", cfg.Event.ID, count)
}

// describeAccessKey decodes the key without verifying its signature. Hosted
// store keys are JWTs; the claims tell us which role the key carries and when
// it expires, which is the usual cause of sudden 401s.
func describeAccessKey(key string) {
	token, _, err := jwt.NewParser().ParseUnverified(key, jwt.MapClaims{})
	if err != nil {
		log.Printf("⚠️  Access key is not a JWT (%v); skipping claim inspection", err)
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return
	}

	if role, ok := claims["role"].(string); ok {
		log.Printf("🔑 Access key role: %s", role)
		if role == "service_role" {
			log.Println("⚠️  service_role key detected. Keep this off client machines.")
		}
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if time.Now().After(exp.Time) {
			log.Printf("❌ Access key expired at %s", exp.Time.Format(time.RFC3339))
		} else {
			log.Printf("🔑 Access key valid until %s", exp.Time.Format(time.RFC3339))
		}
	}
}
