package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"activity-dashboard/internal/config"
	"activity-dashboard/internal/database"
	"activity-dashboard/internal/services"
	"activity-dashboard/internal/utils"
	"activity-dashboard/internal/validation"
)

// check-backend probes the statistics backend: it lists users and prints
// one overview as JSON. It exits non-zero on any failure.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fail("Failed to load config: %v", err)
	}

	if len(os.Args) > 3 {
		fmt.Println("Usage: check-backend [user] [date]")
		fmt.Println("Example: check-backend alice 2025-08-10")
		os.Exit(1)
	}

	validator, err := validation.NewValidator()
	if err != nil {
		fail("Failed to compile schemas: %v", err)
	}

	client, err := database.NewStatsAPIClient(cfg.StatsAPI.URL, cfg.StatsAPI.Timeout, validator)
	if err != nil {
		fail("Failed to create client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 4*cfg.StatsAPI.Timeout)
	defer cancel()

	svc := services.NewStatsService(client, cfg.StatsAPI.TrendDays)

	fmt.Printf("=== Stats API Check ===\n\n")
	fmt.Printf("Backend: %s\n", client.BaseURL())

	users, err := svc.ListUsers(ctx)
	if err != nil {
		fail("Failed to list users: %v", err)
	}
	fmt.Printf("Users (%d): %v\n", len(users), users)

	user := ""
	if len(os.Args) > 1 {
		user = os.Args[1]
	} else if len(users) > 0 {
		user = users[0]
	}
	if user == "" {
		fmt.Println("No users reported; nothing else to check")
		return
	}

	date := time.Now()
	if len(os.Args) > 2 {
		date, err = utils.ParseDate(os.Args[2])
		if err != nil {
			fail("Invalid date: %v", err)
		}
	}

	fmt.Printf("User: %s\n", user)
	fmt.Printf("Date: %s (week %s, month %s)\n\n", utils.FormatDate(date), utils.WeekKey(date), utils.MonthKey(date))

	overview, err := svc.FetchOverview(ctx, user, date)
	if err != nil {
		fail("Failed to fetch overview: %v", err)
	}

	out, err := json.MarshalIndent(overview, "", "  ")
	if err != nil {
		fail("Failed to encode overview: %v", err)
	}
	fmt.Println(string(out))
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
