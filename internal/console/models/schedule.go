package models

// ScheduledStation is one sprinkler station in the weekly program.
type ScheduledStation struct {
	Pin             int    `json:"pin"`
	Name            string `json:"name"`
	DurationSeconds int    `json:"durationSeconds"`
}

// Schedule is the sprinkler weekly program. JSON keys are camelCase because
// the project firmware serializes them that way, unlike the framework
// resources.
type Schedule struct {
	Monday                         bool               `json:"monday"`
	Tuesday                        bool               `json:"tuesday"`
	Wednesday                      bool               `json:"wednesday"`
	Thursday                       bool               `json:"thursday"`
	Friday                         bool               `json:"friday"`
	Saturday                       bool               `json:"saturday"`
	Sunday                         bool               `json:"sunday"`
	StartOffsetFromMidnightSeconds int                `json:"startOffsetFromMidnightSeconds"`
	Stations                       []ScheduledStation `json:"stations"`
	DisableUntil                   int64              `json:"disableUntil"`
	TestStationPin                 int                `json:"testStationPin"`
	ManualStartTime                int64              `json:"manualStartTime"`
}

// SystemState enumerates the sprinkler run state.
type SystemState int

const (
	StateIdle SystemState = iota
	StateTesting
	StateRunningManual
	StateRunningScheduled
	StateDisabledUntil
)

func (s SystemState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateTesting:
		return "Testing"
	case StateRunningManual:
		return "RunningManual"
	case StateRunningScheduled:
		return "RunningScheduled"
	case StateDisabledUntil:
		return "DisabledUntil"
	default:
		return "INVALID"
	}
}

// SprinklerStatus reports which station is running and when the current
// state was entered and will be left.
type SprinklerStatus struct {
	ActivePin        int         `json:"activePin"`
	ActiveStation    string      `json:"activeStation"`
	EnteredStateTime int64       `json:"enteredStateTime"`
	LeavingStateTime int64       `json:"leavingStateTime"`
	State            SystemState `json:"state"`
}
