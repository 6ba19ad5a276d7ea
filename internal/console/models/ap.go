package models

// Access point provision modes.
const (
	APModeAlways = iota
	APModeWhenDisconnected
	APModeNever
)

// APSettings configures the device's soft access point.
type APSettings struct {
	ProvisionMode int    `json:"provision_mode"`
	SSID          string `json:"ssid"`
	Password      string `json:"password"`
}

// APStatus reports the soft access point state.
type APStatus struct {
	Status     int    `json:"status"`
	IPAddress  string `json:"ip_address"`
	MACAddress string `json:"mac_address"`
	StationNum int    `json:"station_num"`
}
