package cli

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/sensorhub/internal/client/client"
	"github.com/dmitrijs2005/sensorhub/internal/client/services"
	"github.com/dmitrijs2005/sensorhub/internal/common"
)

// describeError turns a command error into a line for the user.
func describeError(err error) string {
	var fields common.ValidationErrors
	switch {
	case errors.As(err, &fields):
		msgs := make([]string, 0, len(fields))
		for _, f := range fields {
			msgs = append(msgs, f.Message)
		}
		return "Invalid input: " + strings.Join(msgs, "; ")
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable, try again later"
	case errors.Is(err, client.ErrUnauthorized):
		return "Invalid username or password"
	case errors.Is(err, common.ErrorConflict):
		return "Username already in use"
	case errors.Is(err, common.ErrorNotFound):
		return "No readings found"
	case errors.Is(err, services.ErrBlankSensorID):
		return "Sensor ID must not be blank"
	default:
		return "Error: " + err.Error()
	}
}
