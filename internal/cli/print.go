package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/ErlanBelekov/events-client/internal/domain"
	"github.com/ErlanBelekov/events-client/internal/usecase"
)

func printEvents(w io.Writer, events []domain.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tPRICE\tGOING\tYOU\tDISTANCE\tTITLE")
	for _, e := range events {
		you := ""
		switch {
		case e.Mine:
			you = "host"
		case e.Attend:
			you = "going"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
			e.ID, e.Date, formatPrice(e.Price), e.NumAttend, you, formatDistance(e.Distance), e.Title)
	}
	_ = tw.Flush()
}

func printEventDetail(w io.Writer, d *usecase.EventDetail) {
	e := d.Event
	fmt.Fprintf(w, "#%d %s\n", e.ID, e.Title)
	fmt.Fprintf(w, "When:  %s\n", e.Date)
	fmt.Fprintf(w, "Where: %s %s\n", e.Address, formatDistance(e.Distance))
	fmt.Fprintf(w, "Price: %s\n", formatPrice(e.Price))
	if e.Creator != nil {
		fmt.Fprintf(w, "Host:  %s\n", e.Creator.Name)
	}
	if e.Description != "" {
		fmt.Fprintf(w, "\n%s\n", e.Description)
	}
	fmt.Fprintf(w, "\nAttendees (%d):\n", len(d.Attendees))
	for _, u := range d.Attendees {
		fmt.Fprintf(w, "  %s\n", u.Name)
	}
}

func formatPrice(p domain.Price) string {
	return strconv.FormatFloat(float64(p), 'f', 2, 64)
}

func formatDistance(d *float64) string {
	if d == nil {
		return ""
	}
	return strconv.FormatFloat(*d, 'f', 1, 64) + " km"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
