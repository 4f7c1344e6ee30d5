// seed registers a test user against a running API server and creates a
// handful of events through the client stack.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/ErlanBelekov/events-client/config"
	"github.com/ErlanBelekov/events-client/internal/domain"
	"github.com/ErlanBelekov/events-client/internal/infrastructure/httpapi"
	"github.com/ErlanBelekov/events-client/internal/infrastructure/localstore"
	ctxlog "github.com/ErlanBelekov/events-client/internal/log"
	"github.com/ErlanBelekov/events-client/internal/usecase"
)

const (
	seedName     = "Seed User"
	seedEmail    = "seed@test.local"
	seedPassword = "seed-password"
)

type eventSpec struct {
	title   string
	desc    string
	price   float64
	lat     float64
	lng     float64
	address string
	inDays  int
}

var events = []eventSpec{
	{"Go meetup", "Generics in practice", 0, 42.8746, 74.5698, "Chui Ave 100, Bishkek", 3},
	{"Jazz night", "Live quartet", 25, 42.8700, 74.6000, "Philharmonic Hall", 5},
	{"Hiking Ala-Archa", "Day trip, bring water", 15, 42.5650, 74.4850, "Ala-Archa park gate", 9},
	{"Book club", "This month: Dune", 0, 42.8800, 74.5900, "Central library", 12},
	{"Startup pitch", "Five teams, one jury", 10, 42.8650, 74.6100, "Tech hub, floor 2", 2},
	{"Lake weekend", "Issyk-Kul trip", 120, 42.6450, 77.0850, "Cholpon-Ata pier", 30},
	{"Chess open", "Blitz tournament", 5, 42.8760, 74.6030, "Chess club", 7},
	{"Film screening", "Classic noir double bill", 8, 42.8730, 74.5920, "Manas cinema", 1},
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger := ctxlog.NewLogger(cfg.Env, cfg.SlogLevel())

	store := localstore.NewMemoryStore()
	api, err := httpapi.New(cfg.APIBaseURL, httpapi.NewTransport(store, logger))
	if err != nil {
		log.Fatalf("api client: %v", err)
	}
	session := usecase.NewSessionUsecase(api.Auth, store, usecase.NavigatorFunc(func() {}), logger)

	_, err = session.Register(ctx, domain.User{Name: seedName, Email: seedEmail, Password: seedPassword})
	var apiErr *domain.APIError
	switch {
	case err == nil:
		fmt.Printf("Registered %s\n", seedEmail)
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict:
		fmt.Printf("User %s already exists\n", seedEmail)
	default:
		log.Fatalf("register: %v", err)
	}

	lat, lng := 42.8746, 74.5698
	token, err := session.Login(ctx, domain.Credentials{Email: seedEmail, Password: seedPassword, Lat: &lat, Lng: &lng})
	if err != nil {
		log.Fatalf("login: %v", err)
	}
	if err := session.Persist(ctx, token); err != nil {
		log.Fatalf("persist: %v", err)
	}

	collection := usecase.NewEventCollection(api.Events, logger)
	start := time.Now().UTC().Truncate(time.Hour)

	created := 0
	for _, spec := range events {
		e, err := collection.CreateEvent(ctx, domain.Event{
			Title:       spec.title,
			Description: spec.desc,
			Price:       domain.Price(spec.price),
			Lat:         spec.lat,
			Lng:         spec.lng,
			Address:     spec.address,
			Date:        start.AddDate(0, 0, spec.inDays).Add(19 * time.Hour).Format(time.RFC3339),
		})
		if err != nil {
			log.Printf("skip %q: %v", spec.title, err)
			continue
		}
		fmt.Printf("  created #%d %s\n", e.ID, e.Title)
		created++
	}

	fmt.Printf("\nDone: %d events for %s\n", created, seedEmail)
	fmt.Printf("Log in with: eventsctl login -email %s\n", seedEmail)
}
