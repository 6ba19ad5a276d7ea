package models

// NTPSettings configures time synchronization.
type NTPSettings struct {
	Enabled  bool   `json:"enabled"`
	Server   string `json:"server"`
	TZLabel  string `json:"tz_label"`
	TZFormat string `json:"tz_format"`
}

// NTPStatus reports the time synchronization state.
type NTPStatus struct {
	Status    int    `json:"status"`
	UTCTime   string `json:"utc_time"`
	LocalTime string `json:"local_time"`
	Server    string `json:"server"`
	Uptime    int64  `json:"uptime"`
}

// TimeUpdate sets the device clock manually when NTP is disabled.
type TimeUpdate struct {
	LocalTime string `json:"local_time"`
}
