// Package devicesim implements the sprinkler device's REST API in memory so
// the console can be developed and tested without hardware. The surface is
// the device's, verbatim: same paths, same status codes, same 202-while-busy
// scan protocol.
package devicesim

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sprinklerworks/sprinklerctl/internal/console/api"
	"github.com/sprinklerworks/sprinklerctl/internal/console/models"
	"github.com/sprinklerworks/sprinklerctl/internal/logging"
)

// Config tunes the simulator.
type Config struct {
	// Features is what the device reports at /rest/features. Security off
	// also disables the auth middleware, like a firmware built without it.
	Features models.Features

	// ScanDuration is how long a network scan stays "in progress".
	ScanDuration time.Duration

	// TokenTTL bounds issued access tokens.
	TokenTTL time.Duration
}

func DefaultConfig() Config {
	return Config{
		Features: models.Features{
			Project:        true,
			Security:       true,
			NTP:            true,
			OTA:            true,
			UploadFirmware: true,
		},
		ScanDuration: 3 * time.Second,
		TokenTTL:     24 * time.Hour,
	}
}

// Server simulates one device.
type Server struct {
	cfg   Config
	state *state
	log   logging.Logger
	now   func() time.Time
}

func New(cfg Config, log logging.Logger) *Server {
	return &Server{cfg: cfg, state: factoryState(), log: log, now: time.Now}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get(api.FeaturesEndpoint, s.handleFeatures)
	r.Post(api.SignInEndpoint, s.handleSignIn)

	r.Group(func(r chi.Router) {
		if s.cfg.Features.Security {
			r.Use(s.authMiddleware)
		}

		r.Get(api.VerifyAuthorizationEndpoint, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]bool{"verified": true})
		})

		r.Get(api.WiFiSettingsEndpoint, handleGet(s, func() models.WiFiSettings { return s.state.wifi }))
		r.Post(api.WiFiSettingsEndpoint, handlePost(s, func() *models.WiFiSettings { return &s.state.wifi }))
		r.Get(api.WiFiStatusEndpoint, s.handleWiFiStatus)
		r.Get(api.ScanNetworksEndpoint, s.handleScanNetworks)
		r.Get(api.ListNetworksEndpoint, s.handleListNetworks)

		r.Get(api.APSettingsEndpoint, handleGet(s, func() models.APSettings { return s.state.ap }))
		r.Post(api.APSettingsEndpoint, handlePost(s, func() *models.APSettings { return &s.state.ap }))
		r.Get(api.APStatusEndpoint, s.handleAPStatus)

		r.Get(api.NTPSettingsEndpoint, handleGet(s, func() models.NTPSettings { return s.state.ntp }))
		r.Post(api.NTPSettingsEndpoint, handlePost(s, func() *models.NTPSettings { return &s.state.ntp }))
		r.Get(api.NTPStatusEndpoint, s.handleNTPStatus)
		r.Post(api.TimeEndpoint, s.handleTime)

		r.Get(api.OTASettingsEndpoint, handleGet(s, func() models.OTASettings { return s.state.ota }))
		r.Post(api.OTASettingsEndpoint, handlePost(s, func() *models.OTASettings { return &s.state.ota }))
		r.Get(api.SystemStatusEndpoint, s.handleSystemStatus)
		r.Post(api.RestartEndpoint, s.handleRestart)
		r.Post(api.FactoryResetEndpoint, s.handleFactoryReset)
		r.Post(api.UploadFirmwareEndpoint, s.handleUploadFirmware)

		r.Group(func(r chi.Router) {
			if s.cfg.Features.Security {
				r.Use(s.requireAdmin)
			}
			r.Get(api.SecuritySettingsEndpoint, handleGet(s, func() models.SecuritySettings { return s.state.security }))
			r.Post(api.SecuritySettingsEndpoint, handlePost(s, func() *models.SecuritySettings { return &s.state.security }))
		})

		r.Get(api.ScheduleEndpoint, handleGet(s, func() models.Schedule { return s.state.schedule }))
		r.Post(api.ScheduleEndpoint, handlePost(s, func() *models.Schedule { return &s.state.schedule }))
		r.Get(api.SprinklerStatusEndpoint, handleGet(s, func() models.SprinklerStatus { return s.state.sprinkler }))
	})

	return r
}

// handleGet serves the stored representation of one resource.
func handleGet[T any](s *Server, read func() T) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.state.mu.Lock()
		value := read()
		s.state.mu.Unlock()
		writeJSON(w, http.StatusOK, value)
	}
}

// handlePost replaces one resource and echoes the stored representation,
// since the device is the authority on the persisted shape.
func handlePost[T any](s *Server, target func() *T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var incoming T
		if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
			writeError(w, http.StatusBadRequest, "malformed_body")
			return
		}
		s.state.mu.Lock()
		*target() = incoming
		stored := *target()
		s.state.mu.Unlock()
		writeJSON(w, http.StatusOK, stored)
	}
}

func (s *Server) handleFeatures(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Features)
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_body")
		return
	}

	user, ok := s.state.findUser(req.Username, req.Password)
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}

	token, err := newAccessToken(s.state.jwtSecret(), user.Username, user.Admin, s.cfg.TokenTTL)
	if err != nil {
		s.log.Error(r.Context(), "failed to sign access token", "error", err)
		writeError(w, http.StatusInternalServerError, "token_error")
		return
	}
	writeJSON(w, http.StatusOK, models.SignInResponse{AccessToken: token})
}

func (s *Server) handleWiFiStatus(w http.ResponseWriter, _ *http.Request) {
	s.state.mu.Lock()
	ssid := s.state.wifi.SSID
	s.state.mu.Unlock()
	writeJSON(w, http.StatusOK, models.WiFiStatus{
		Status:     3, // WL_CONNECTED
		LocalIP:    "192.168.1.123",
		MACAddress: "5C:CF:7F:8E:91:E2",
		RSSI:       -52,
		SSID:       ssid,
		BSSID:      "DC:EF:09:AB:12:34",
		Channel:    11,
		SubnetMask: "255.255.255.0",
		GatewayIP:  "192.168.1.1",
		DNSIP1:     "192.168.1.1",
	})
}

func (s *Server) handleAPStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.APStatus{
		Status:     1,
		IPAddress:  "192.168.4.1",
		MACAddress: "5E:CF:7F:8E:91:E2",
		StationNum: 0,
	})
}

func (s *Server) handleNTPStatus(w http.ResponseWriter, _ *http.Request) {
	now := s.now().UTC()
	s.state.mu.Lock()
	server := s.state.ntp.Server
	enabled := s.state.ntp.Enabled
	s.state.mu.Unlock()
	status := 0
	if enabled {
		status = 1
	}
	writeJSON(w, http.StatusOK, models.NTPStatus{
		Status:    status,
		UTCTime:   now.Format(time.RFC3339),
		LocalTime: now.Format(time.RFC3339),
		Server:    server,
		Uptime:    4200,
	})
}

func (s *Server) handleTime(w http.ResponseWriter, r *http.Request) {
	var req models.TimeUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed_body")
		return
	}
	if _, err := time.Parse("2006-01-02T15:04:05", req.LocalTime); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_time")
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleSystemStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.SystemStatus{
		ESPPlatform:     "esp8266",
		MaxAllocHeap:    16368,
		CPUFreqMHz:      160,
		FreeHeap:        22896,
		SketchSize:      494112,
		FreeSketchSpace: 2650112,
		SDKVersion:      "2.2.2-dev(38a443e)",
		FlashChipSize:   4194304,
		FlashChipSpeed:  40000000,
		FSTotal:         233521,
		FSUsed:          66,
	})
}

func (s *Server) handleScanNetworks(w http.ResponseWriter, r *http.Request) {
	s.state.mu.Lock()
	s.state.scanStarted = s.now()
	s.state.mu.Unlock()
	s.log.Info(r.Context(), "network scan started")
	writeJSON(w, http.StatusAccepted, map[string]string{"message": "scan started"})
}

func (s *Server) handleListNetworks(w http.ResponseWriter, _ *http.Request) {
	s.state.mu.Lock()
	started := s.state.scanStarted
	s.state.mu.Unlock()

	if started.IsZero() || s.now().Sub(started) < s.cfg.ScanDuration {
		writeJSON(w, http.StatusAccepted, map[string]string{"message": "scan in progress"})
		return
	}
	writeJSON(w, http.StatusOK, models.WiFiNetworkList{
		Networks: []models.WiFiNetwork{
			{RSSI: -78, SSID: "Next Door", BSSID: "F0:9F:C2:11:22:33", Channel: 6, EncryptionType: 4},
			{RSSI: -45, SSID: "Home", BSSID: "F0:9F:C2:AA:BB:CC", Channel: 11, EncryptionType: 4},
			{RSSI: -67, SSID: "Workshop", BSSID: "F0:9F:C2:44:55:66", Channel: 1, EncryptionType: 3},
		},
	})
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	s.log.Info(r.Context(), "device restart requested")
	writeJSON(w, http.StatusOK, map[string]string{"message": "restarting"})
}

func (s *Server) handleFactoryReset(w http.ResponseWriter, r *http.Request) {
	s.log.Info(r.Context(), "factory reset requested")
	fresh := factoryState()
	s.state.mu.Lock()
	s.state.wifi = fresh.wifi
	s.state.ap = fresh.ap
	s.state.ntp = fresh.ntp
	s.state.ota = fresh.ota
	s.state.security = fresh.security
	s.state.schedule = fresh.schedule
	s.state.sprinkler = fresh.sprinkler
	s.state.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"message": "reset to factory settings"})
}

func (s *Server) handleUploadFirmware(w http.ResponseWriter, r *http.Request) {
	n, err := io.Copy(io.Discard, r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "upload_failed")
		return
	}
	s.log.Info(r.Context(), "firmware received", "bytes", n)
	writeJSON(w, http.StatusOK, map[string]string{"message": "firmware accepted"})
}

type claimsKey struct{}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing_token")
			return
		}

		claims, err := parseAccessToken(s.state.jwtSecret(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r.Context())
		if claims == nil || !claims.Admin {
			writeError(w, http.StatusForbidden, "admin_only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func claimsFromContext(ctx context.Context) *tokenClaims {
	claims, _ := ctx.Value(claimsKey{}).(*tokenClaims)
	return claims
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
