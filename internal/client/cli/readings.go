package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/sensorhub/internal/client/client"
	"github.com/dmitrijs2005/sensorhub/internal/client/models"
)

var errNotLoggedIn = errors.New("please log in first")

// timestampLayouts are tried in order; zone-less forms are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q, expected e.g. 2024-03-01T10:00:00Z", s)
}

// Add handles "add <sensorId> <value> [timestamp]".
func (a *App) Add(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	if len(args) < 2 || len(args) > 3 {
		return errors.New("usage: add <sensorId> <value> [timestamp]")
	}

	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid value %q: must be a number", args[1])
	}

	var ts *time.Time
	if len(args) == 3 {
		t, err := parseTimestamp(args[2])
		if err != nil {
			return err
		}
		ts = &t
	}

	r, err := a.readingService.Add(ctx, args[0], value, ts)
	if err != nil {
		return a.sessionCheck(ctx, err)
	}

	fmt.Fprintf(a.out, "Saved reading #%d\n", r.ID)
	return nil
}

// List handles "list [sensorId]".
func (a *App) List(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	if len(args) > 1 {
		return errors.New("usage: list [sensorId]")
	}

	sensorID := ""
	if len(args) == 1 {
		sensorID = args[0]
	}

	list, err := a.readingService.List(ctx, sensorID)
	if err != nil {
		return a.sessionCheck(ctx, err)
	}

	a.printReadings(list)
	return nil
}

// sessionCheck drops the local login when the server rejects the token.
func (a *App) sessionCheck(ctx context.Context, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		if lerr := a.authService.Logout(ctx); lerr != nil {
			a.logger.Warn(ctx, "clearing cached login failed", "error", lerr)
		}
		a.setUser("")
		return errors.New("session expired, please log in again")
	}
	return err
}

func (a *App) printReadings(list []models.Reading) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No readings")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSENSOR\tVALUE\tTIMESTAMP")
	for _, r := range list {
		fmt.Fprintf(tw, "%d\t%s\t%g\t%s\n", r.ID, r.SensorID, r.Value, r.Timestamp.UTC().Format(time.RFC3339))
	}
	_ = tw.Flush()
}
