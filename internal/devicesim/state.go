package devicesim

import (
	"sync"
	"time"

	"github.com/sprinklerworks/sprinklerctl/internal/console/models"
)

// state is the simulated device's volatile memory. One mutex guards it all;
// the real device is single-threaded anyway.
type state struct {
	mu sync.Mutex

	wifi      models.WiFiSettings
	ap        models.APSettings
	ntp       models.NTPSettings
	ota       models.OTASettings
	security  models.SecuritySettings
	schedule  models.Schedule
	sprinkler models.SprinklerStatus

	scanStarted time.Time
}

func factoryState() *state {
	return &state{
		wifi: models.WiFiSettings{
			SSID:     "ssid",
			Password: "password",
			Hostname: "sprinkler",
		},
		ap: models.APSettings{
			ProvisionMode: models.APModeWhenDisconnected,
			SSID:          "ssid",
			Password:      "espadmin",
		},
		ntp: models.NTPSettings{
			Enabled:  true,
			Server:   "pool.ntp.org",
			TZLabel:  "Etc/UTC",
			TZFormat: "UTC0",
		},
		ota: models.OTASettings{
			Enabled:  false,
			Port:     8266,
			Password: "esp-react",
		},
		security: models.SecuritySettings{
			JWTSecret: "esp8266-react",
			Users: []models.User{
				{Username: "admin", Password: "admin", Admin: true},
				{Username: "guest", Password: "guest", Admin: false},
			},
		},
		schedule: models.Schedule{
			Monday:                         true,
			Thursday:                       true,
			StartOffsetFromMidnightSeconds: 6 * 3600,
			Stations: []models.ScheduledStation{
				{Pin: 4, Name: "Front lawn", DurationSeconds: 600},
				{Pin: 5, Name: "Back lawn", DurationSeconds: 900},
			},
			TestStationPin: -1,
		},
		sprinkler: models.SprinklerStatus{
			ActivePin: -1,
			State:     models.StateIdle,
		},
	}
}

// findUser checks a username/password pair against the device accounts.
func (s *state) findUser(username, password string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.security.Users {
		if u.Username == username && u.Password == password {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *state) jwtSecret() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.security.JWTSecret
}
