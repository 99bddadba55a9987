package ultrahuman

// Types for the sleep metric payload, the most deeply nested shape the
// partner API returns.

type TrackingParam struct {
	KeyName string `json:"key_name"`
	Value   string `json:"value"`
}

type QuickMetric struct {
	Title                  string          `json:"title" validate:"required"`
	DisplayText            string          `json:"display_text"`
	Unit                   *string         `json:"unit,omitempty"`
	Value                  float64         `json:"value"`
	Deeplink               *string         `json:"deeplink,omitempty"`
	Type                   string          `json:"type"`
	EducationModalDeeplink *string         `json:"education_modal_deeplink,omitempty"`
	TrackingParams         []TrackingParam `json:"tracking_params,omitempty"`
	DisplayTextMarkedUp    *string         `json:"display_text_marked_up,omitempty"`
}

type QuickMetricTiled struct {
	Title       string  `json:"title"`
	Value       string  `json:"value"`
	Tag         string  `json:"tag"`
	TagColor    string  `json:"tag_color"`
	Deeplink    string  `json:"deeplink"`
	TrendsUnit  string  `json:"trends_unit"`
	TrendsValue float64 `json:"trends_value"`
	Type        string  `json:"type"`
}

type SleepStage struct {
	Title         string `json:"title"`
	Type          string `json:"type" validate:"oneof=deep_sleep light_sleep rem_sleep awake"`
	Percentage    int    `json:"percentage"`
	StageTimeText string `json:"stage_time_text"`
	StageTime     int    `json:"stage_time"`
}

type SleepGraphEntry struct {
	Start    int64  `json:"start"`
	End      int64  `json:"end"`
	Type     string `json:"type" validate:"oneof=awake light_sleep deep_sleep rem_sleep"`
	TossTurn *int   `json:"toss_turn,omitempty"`
}

type MovementGraphEntry struct {
	Timestamp int64  `json:"timestamp"`
	Type      string `json:"type" validate:"oneof=light medium vigorous"`
}

type HRGraphEntry struct {
	Value     float64 `json:"value"`
	Timestamp int64   `json:"timestamp"`
}

type MarkPoint struct {
	MarkType  string `json:"mark_type"`
	MarkColor string `json:"mark_color"`
	MarkPoint int64  `json:"mark_point"`
}

type SleepGraph struct {
	Title                  string            `json:"title"`
	Data                   []SleepGraphEntry `json:"data" validate:"dive"`
	EducationModalDeeplink *string           `json:"education_modal_deeplink,omitempty"`
}

type MovementGraph struct {
	Title string               `json:"title"`
	Data  []MovementGraphEntry `json:"data" validate:"dive"`
}

type HRGraph struct {
	Title string         `json:"title"`
	Data  []HRGraphEntry `json:"data" validate:"dive"`
	Marks []MarkPoint    `json:"marks,omitempty"`
}

type Badge struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

type SleepScore struct {
	Score int `json:"score"`
}

type TotalSleep struct {
	Minutes          int   `json:"minutes"`
	Hours            int   `json:"hours"`
	RemainingMinutes int   `json:"remaining_minutes"`
	Seconds          int   `json:"seconds"`
	Badge            Badge `json:"badge"`
}

type SleepEfficiency struct {
	Percentage  int `json:"percentage"`
	Contributor int `json:"contributor"`
}

type TimeInBed struct {
	Minutes          int   `json:"minutes"`
	Hours            int   `json:"hours"`
	RemainingMinutes int   `json:"remaining_minutes"`
	Badge            Badge `json:"badge"`
}

type REMSleep struct {
	Minutes          int     `json:"minutes"`
	Seconds          int     `json:"seconds"`
	Percentage       float64 `json:"percentage"`
	Hours            int     `json:"hours"`
	RemainingMinutes int     `json:"remaining_minutes"`
	Contributor      float64 `json:"contributor"`
}

type DeepSleep struct {
	Minutes          int     `json:"minutes"`
	Seconds          int     `json:"seconds"`
	Hours            int     `json:"hours"`
	RemainingMinutes int     `json:"remaining_minutes"`
	Contributor      float64 `json:"contributor"`
}

type LightSleep struct {
	Minutes          int `json:"minutes"`
	Seconds          int `json:"seconds"`
	Percentage       int `json:"percentage"`
	Hours            int `json:"hours"`
	RemainingMinutes int `json:"remaining_minutes"`
}

type TemperatureDeviation struct {
	Celsius     float64 `json:"celsius"`
	Contributor int     `json:"contributor"`
}

type RestorativeSleep struct {
	Percentage int   `json:"percentage"`
	Badge      Badge `json:"badge"`
}

type Movements struct {
	Count int `json:"count"`
}

type MorningAlertness struct {
	Minutes int `json:"minutes"`
}

type FullSleepCycles struct {
	Cycles int `json:"cycles"`
}

type TossesAndTurns struct {
	Count int `json:"count"`
}

type AverageBodyTemperature struct {
	Celsius     float64 `json:"celsius"`
	Contributor int     `json:"contributor"`
}

// SleepHRDrop is optional in the sleep payload; both fields may be
// absent.
type SleepHRDrop struct {
	Timestamp *int64   `json:"timestamp,omitempty"`
	Value     *float64 `json:"value,omitempty"`
}

// Sleep is the payload for entries tagged "sleep".
type Sleep struct {
	BedtimeStart           int64                  `json:"bedtime_start" validate:"gte=0"`
	BedtimeEnd             int64                  `json:"bedtime_end" validate:"gte=0"`
	QuickMetrics           []QuickMetric          `json:"quick_metrics" validate:"dive"`
	QuickMetricsTiled      []QuickMetricTiled     `json:"quick_metrics_tiled" validate:"dive"`
	SleepStages            []SleepStage           `json:"sleep_stages" validate:"dive"`
	SleepGraph             SleepGraph             `json:"sleep_graph"`
	MovementGraph          MovementGraph          `json:"movement_graph"`
	HRGraph                HRGraph                `json:"hr_graph"`
	SleepScore             SleepScore             `json:"sleep_score"`
	TotalSleep             TotalSleep             `json:"total_sleep"`
	SleepEfficiency        SleepEfficiency        `json:"sleep_efficiency"`
	TimeInBed              TimeInBed              `json:"time_in_bed"`
	REMSleep               REMSleep               `json:"rem_sleep"`
	DeepSleep              DeepSleep              `json:"deep_sleep"`
	LightSleep             LightSleep             `json:"light_sleep"`
	TemperatureDeviation   TemperatureDeviation   `json:"temperature_deviation"`
	HRDrop                 *SleepHRDrop           `json:"hr_drop,omitempty"`
	RestorativeSleep       RestorativeSleep       `json:"restorative_sleep"`
	Movements              Movements              `json:"movements"`
	MorningAlertness       MorningAlertness       `json:"morning_alertness"`
	FullSleepCycles        FullSleepCycles        `json:"full_sleep_cycles"`
	TossesAndTurns         TossesAndTurns         `json:"tosses_and_turns"`
	AverageBodyTemperature AverageBodyTemperature `json:"average_body_temperature"`
}
