// seed-sample-data loads a demo tenant with offices, rooms, and roughly a
// month of synthetic occupancy events for local development.
//
// Usage: go run ./scripts/seed-sample-data
//
// Database connection: Uses standard PG* environment variables.
//
// Flags:
//
//	-days   How many days of historical events to generate (default: 30)
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
)

const demoTenantID = "a1b2c3d4-e5f6-4789-a012-345678901234"

type seedRoom struct {
	id       string
	officeID string
	roomID   string
	name     string
	roomType string
	capacity int
	floor    string
	// useRate is the probability a given business hour produces an event.
	useRate float64
}

var seedOffices = []struct {
	id       string
	name     string
	location string
	address  string
	timezone string
	capacity int
}{
	{"b2c3d4e5-f6a7-4890-b123-456789012345", "New York Headquarters", "New York", "123 Wall Street, New York, NY 10005", "America/New_York", 27},
	{"c3d4e5f6-a7b8-4901-c234-567890123456", "London Office", "London", "45 Canary Wharf, London E14 5AB", "Europe/London", 18},
}

var seedRooms = []seedRoom{
	{"d4e5f6a7-b8c9-4012-d345-678901234567", seedOffices[0].id, "confA", "Conference Room A", "conference", 12, "10", 0.75},
	{"e5f6a7b8-c9d0-4123-e456-789012345678", seedOffices[0].id, "confB", "Conference Room B", "conference", 8, "10", 0.15},
	{"f6a7b8c9-d0e1-4234-f567-890123456789", seedOffices[0].id, "collab1", "Collaboration Space 1", "collaboration", 6, "11", 0.55},
	{"a7b8c9d0-e1f2-4345-a678-901234567890", seedOffices[0].id, "phone1", "Phone Booth 1", "phone_booth", 1, "10", 0.40},
	{"b8c9d0e1-f2a3-4456-b789-012345678901", seedOffices[1].id, "london_conf1", "Thames Conference Room", "conference", 10, "3", 0.60},
	{"c9d0e1f2-a3b4-4567-c890-123456789012", seedOffices[1].id, "london_collab1", "Shoreditch Collab", "collaboration", 8, "3", 0.35},
}

func main() {
	days := flag.Int("days", 30, "How many days of historical events to generate")
	flag.Parse()

	ctx := context.Background()

	conn, err := pgx.Connect(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	if err := seed(ctx, conn, *days); err != nil {
		fmt.Fprintf(os.Stderr, "Seeding failed: %v\n", err)
		os.Exit(1)
	}
}

func seed(ctx context.Context, conn *pgx.Conn, days int) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Satisfy the occupancy_events row-level security policy when running
	// as a non-owner role.
	if _, err := tx.Exec(ctx, `SELECT set_config('app.current_tenant', $1, true)`, demoTenantID); err != nil {
		return fmt.Errorf("setting tenant context: %w", err)
	}

	// Re-runnable: wipe the demo tenant before reinserting.
	if _, err := tx.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, demoTenantID); err != nil {
		return fmt.Errorf("clearing demo tenant: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO tenants (id, name, slug, description, settings)
		VALUES ($1, $2, $3, $4, $5)`,
		demoTenantID,
		"Global Bank Corp",
		"bank123",
		"Demo tenant for occupancy analytics",
		map[string]any{"currency": "USD", "businessHours": map[string]string{"start": "09:00", "end": "18:00"}},
	); err != nil {
		return fmt.Errorf("inserting tenant: %w", err)
	}

	for _, o := range seedOffices {
		if _, err := tx.Exec(ctx, `
			INSERT INTO offices (id, tenant_id, name, location, address, timezone, total_capacity)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			o.id, demoTenantID, o.name, o.location, o.address, o.timezone, o.capacity,
		); err != nil {
			return fmt.Errorf("inserting office %s: %w", o.name, err)
		}
	}

	for _, r := range seedRooms {
		if _, err := tx.Exec(ctx, `
			INSERT INTO rooms (id, tenant_id, office_id, room_id, name, type, capacity, floor)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			r.id, demoTenantID, r.officeID, r.roomID, r.name, r.roomType, r.capacity, r.floor,
		); err != nil {
			return fmt.Errorf("inserting room %s: %w", r.roomID, err)
		}
	}

	total, err := seedEvents(ctx, tx, days)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	fmt.Printf("Seeded tenant %s with %d offices, %d rooms, %d events\n",
		demoTenantID, len(seedOffices), len(seedRooms), total)
	return nil
}

// seedEvents generates weekday business-hour events (09:00-18:00) for each
// room, with per-room usage probability and people counts scaled to capacity.
func seedEvents(ctx context.Context, tx pgx.Tx, days int) (int, error) {
	rng := rand.New(rand.NewSource(42))
	now := time.Now().UTC().Truncate(time.Hour)

	total := 0
	for d := days; d >= 1; d-- {
		day := now.AddDate(0, 0, -d)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		for hour := 9; hour < 18; hour++ {
			ts := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
			for _, r := range seedRooms {
				if rng.Float64() >= r.useRate {
					continue
				}
				people := 1 + rng.Intn(r.capacity)
				if _, err := tx.Exec(ctx, `
					INSERT INTO occupancy_events (tenant_id, room_id, timestamp, people_count, metadata)
					VALUES ($1, $2, $3, $4, $5)`,
					demoTenantID, r.roomID, ts, people, map[string]any{"source": "seed"},
				); err != nil {
					return total, fmt.Errorf("inserting event for %s: %w", r.roomID, err)
				}
				total++
			}
		}
	}
	return total, nil
}
