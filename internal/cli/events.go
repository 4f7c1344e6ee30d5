package cli

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/events-client/internal/domain"
	"github.com/ErlanBelekov/events-client/internal/usecase"
)

func (a *App) listEvents(ctx context.Context, args []string) error {
	fs := a.newFlagSet("events")
	sortBy := fs.String("sort", "", "price or date")
	query := fs.String("q", "", "only events whose title or description contains this")
	if err := a.parse(fs, args); err != nil {
		return err
	}

	if _, err := a.events.Load(ctx); err != nil {
		return err
	}
	switch *sortBy {
	case "":
	case "price":
		a.events.SortByPrice()
	case "date":
		a.events.SortByDate()
	default:
		fmt.Fprintf(a.errOut, "unknown sort %q, want price or date\n", *sortBy)
		return ErrUsage
	}

	printEvents(a.out, a.events.Filter(*query))
	return nil
}

func (a *App) showEvent(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	detail, err := usecase.GetEventDetail(ctx, a.api.Events, id)
	if err != nil {
		return err
	}
	printEventDetail(a.out, detail)
	return nil
}

func (a *App) createEvent(ctx context.Context, args []string) error {
	fs := a.newFlagSet("create")
	title := fs.String("title", "", "event title")
	description := fs.String("description", "", "event description")
	price := fs.Float64("price", 0, "ticket price")
	date := fs.String("date", "", "start, e.g. 2024-05-03T20:00:00Z")
	address := fs.String("address", "", "street address")
	image := fs.String("image", "", "image URL")
	lat := fs.String("lat", "", "latitude")
	lng := fs.String("lng", "", "longitude")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	la, ln, err := coordinates(*lat, *lng)
	if err != nil {
		fmt.Fprintln(a.errOut, err)
		return ErrUsage
	}

	event := domain.Event{
		Title:       *title,
		Description: *description,
		Price:       domain.Price(*price),
		Date:        *date,
		Address:     *address,
		Image:       *image,
	}
	if la != nil {
		event.Lat, event.Lng = *la, *ln
	}

	created, err := a.events.CreateEvent(ctx, event)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created event #%d %q\n", created.ID, created.Title)
	return nil
}

func (a *App) deleteEvent(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	if err := a.events.DeleteEvent(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted event #%d\n", id)
	return nil
}

// toggleAttendance joins the event, or leaves it when already attending.
func (a *App) toggleAttendance(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	if _, err := a.events.Load(ctx); err != nil {
		return err
	}
	event, err := a.events.ToggleAttendance(ctx, id)
	if err != nil {
		return err
	}

	verb := "Left"
	if event.Attend {
		verb = "Joined"
	}
	fmt.Fprintf(a.out, "%s %q, %d attending\n", verb, event.Title, event.NumAttend)
	return nil
}
