package ultrahuman

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Query selects the time window and optional target user for a
// DailyMetrics call. Set either Date, or both StartEpoch and EndEpoch;
// the two forms are mutually exclusive. The zero value is invalid.
type Query struct {
	Date       *time.Time
	StartEpoch *int64
	EndEpoch   *int64
	Email      string
}

// ForDate selects a single calendar day. Only the date portion of day
// is used.
func ForDate(day time.Time) Query {
	return Query{Date: &day}
}

// ForEpochRange selects the window between two epoch timestamps,
// in seconds.
func ForEpochRange(start, end int64) Query {
	return Query{StartEpoch: &start, EndEpoch: &end}
}

// WithEmail returns a copy of q targeting the user with the given
// email instead of the key owner's own data.
func (q Query) WithEmail(email string) Query {
	q.Email = email
	return q
}

// validate enforces that exactly one selector form is present. A date
// combined with an epoch range is rejected as ambiguous rather than
// silently preferring one form.
func (q Query) validate() error {
	hasDate := q.Date != nil
	hasStart := q.StartEpoch != nil
	hasEnd := q.EndEpoch != nil

	switch {
	case hasStart != hasEnd:
		return fmt.Errorf("incomplete epoch range: %w", ErrInvalidQuery)
	case hasDate && hasStart:
		return fmt.Errorf("date and epoch range are mutually exclusive: %w", ErrInvalidQuery)
	case !hasDate && !hasStart:
		return ErrInvalidQuery
	}

	return nil
}

func (q Query) values() url.Values {
	params := url.Values{}

	if q.Date != nil {
		params.Set("date", q.Date.Format("2006-01-02"))
	} else {
		params.Set("start_epoch", strconv.FormatInt(*q.StartEpoch, 10))
		params.Set("end_epoch", strconv.FormatInt(*q.EndEpoch, 10))
	}

	if q.Email != "" {
		params.Set("email", q.Email)
	}

	return params
}

// kind reports the selector form, for logs and trace attributes.
func (q Query) kind() string {
	if q.Date != nil {
		return "date"
	}
	return "epoch_range"
}
