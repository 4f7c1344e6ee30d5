package usecase

import (
	"context"

	"github.com/ErlanBelekov/events-client/internal/domain"
	"github.com/ErlanBelekov/events-client/internal/repository"
	"golang.org/x/sync/errgroup"
)

type EventDetail struct {
	Event     domain.Event
	Attendees []domain.User
}

// GetEventDetail fetches the event and its attendees in parallel. The first
// failure cancels the other request.
func GetEventDetail(ctx context.Context, events repository.EventRepository, eventID int64) (*EventDetail, error) {
	var (
		event     *domain.Event
		attendees []domain.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		event, err = events.GetByID(gctx, eventID)
		return err
	})
	g.Go(func() error {
		var err error
		attendees, err = events.ListAttendees(gctx, eventID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &EventDetail{Event: *event, Attendees: attendees}, nil
}
