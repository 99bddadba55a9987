package ultrahuman

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	uni := ut.New(english, english)
	trans, _ = uni.GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(validate, trans)
}

// validationMessage flattens a validator error into a readable,
// translated summary.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fe.Translate(trans))
		}
		return strings.Join(msgs, "; ")
	}
	return err.Error()
}

// MetricValue is a single reading with its epoch timestamp.
type MetricValue struct {
	Value     float64 `json:"value"`
	Timestamp int64   `json:"timestamp" validate:"gte=0"`
}

// MetricSummary is the standard day-summary shape shared by the hr,
// temp, and spo2 metrics.
type MetricSummary struct {
	DayStartTimestamp int64         `json:"day_start_timestamp" validate:"gte=0"`
	Title             string        `json:"title" validate:"required"`
	Unit              string        `json:"unit" validate:"required"`
	LastReading       float64       `json:"last_reading"`
	Values            []MetricValue `json:"values" validate:"required,dive"`
}

// TrendSummary extends MetricSummary with trend information, used by
// the hrv and night_rhr metrics.
type TrendSummary struct {
	MetricSummary
	Avg            float64 `json:"avg"`
	Subtitle       string  `json:"subtitle" validate:"required"`
	TrendTitle     string  `json:"trend_title" validate:"required"`
	TrendDirection string  `json:"trend_direction" validate:"oneof=positive negative"`
}

// StepsSummary is the steps metric payload. It carries trend fields
// but no title, unit, or last reading.
type StepsSummary struct {
	DayStartTimestamp int64         `json:"day_start_timestamp" validate:"gte=0"`
	Values            []MetricValue `json:"values" validate:"required,dive"`
	Subtitle          string        `json:"subtitle" validate:"required"`
	Total             float64       `json:"total"`
	Avg               float64       `json:"avg"`
	TrendTitle        string        `json:"trend_title" validate:"required"`
	TrendDirection    string        `json:"trend_direction" validate:"oneof=positive negative"`
}

// SimpleValue is the payload for avg_sleep_hrv and sleep_rhr.
type SimpleValue struct {
	Value             float64 `json:"value"`
	DayStartTimestamp int64   `json:"day_start_timestamp" validate:"gte=0"`
}

// IndexValue is the payload for the index metrics: recovery_index,
// movement_index, active_minutes, and vo2_max.
type IndexValue struct {
	Value             float64 `json:"value"`
	Title             string  `json:"title" validate:"required"`
	DayStartTimestamp int64   `json:"day_start_timestamp" validate:"gte=0"`
}

// metricDecoders maps a metric type tag to the decoder for its
// payload. Tags not present here are kept as raw JSON.
var metricDecoders = map[string]func([]byte) (any, error){
	"hr":             decodeAs[MetricSummary],
	"temp":           decodeAs[MetricSummary],
	"spo2":           decodeAs[MetricSummary],
	"hrv":            decodeAs[TrendSummary],
	"night_rhr":      decodeAs[TrendSummary],
	"steps":          decodeAs[StepsSummary],
	"avg_sleep_hrv":  decodeAs[SimpleValue],
	"sleep_rhr":      decodeAs[SimpleValue],
	"recovery_index": decodeAs[IndexValue],
	"movement_index": decodeAs[IndexValue],
	"active_minutes": decodeAs[IndexValue],
	"vo2_max":        decodeAs[IndexValue],
	"sleep":          decodeAs[Sleep],
}

func decodeAs[T any](data []byte) (any, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if err := validate.Struct(&v); err != nil {
		return nil, errors.New(validationMessage(err))
	}
	return &v, nil
}

// MetricEntry is one typed measurement within a day's data. For known
// Type tags, Object holds a pointer to the decoded payload struct; for
// unknown tags it holds the raw JSON untouched.
type MetricEntry struct {
	Type   string
	Object any
}

func (e *MetricEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type   string          `json:"type"`
		Object json.RawMessage `json:"object"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Type = raw.Type

	// A missing payload arrives as nil, an explicit null as the
	// literal bytes "null"; neither has anything to dispatch on.
	if raw.Object == nil || bytes.Equal(raw.Object, []byte("null")) {
		return nil
	}

	decode, ok := metricDecoders[raw.Type]
	if !ok {
		e.Object = raw.Object
		return nil
	}

	obj, err := decode(raw.Object)
	if err != nil {
		return &ParseError{
			Message: fmt.Sprintf("invalid %q payload: %s", raw.Type, err),
			Err:     err,
		}
	}
	e.Object = obj

	return nil
}

// Metric retrieves an entry's payload as a concrete type. The second
// return is false when the payload is not a *T.
func Metric[T any](e MetricEntry) (*T, bool) {
	v, ok := e.Object.(*T)
	return v, ok
}

// MetricsData is the payload of a successful DailyMetrics call.
// Metrics maps a date string to that day's entries, preserving the
// server-provided order.
type MetricsData struct {
	Metrics        map[string][]MetricEntry `json:"metrics"`
	LatestTimeZone string                   `json:"latest_time_zone"`
}

// envelope is the outer response shape returned by the partner API.
// A non-empty Error inside a 2xx body still signals an API failure.
type envelope struct {
	Status int          `json:"status" validate:"gte=100,lte=599"`
	Error  string       `json:"error"`
	Data   *MetricsData `json:"data"`
}
