// Package models defines the typed resources synchronized with the device's
// REST endpoints. Field names and JSON keys follow the device firmware; the
// console treats every type here as an opaque unit of load/edit/save.
package models

// WiFiSettings configures the device's station interface.
type WiFiSettings struct {
	SSID           string `json:"ssid"`
	Password       string `json:"password"`
	Hostname       string `json:"hostname"`
	StaticIPConfig bool   `json:"static_ip_config"`
	LocalIP        string `json:"local_ip"`
	GatewayIP      string `json:"gateway_ip"`
	SubnetMask     string `json:"subnet_mask"`
	DNSIP1         string `json:"dns_ip_1"`
	DNSIP2         string `json:"dns_ip_2"`
}

// WiFiStatus reports the station interface state. Status carries the
// firmware's wl_status_t code.
type WiFiStatus struct {
	Status     int    `json:"status"`
	LocalIP    string `json:"local_ip"`
	MACAddress string `json:"mac_address"`
	RSSI       int    `json:"rssi"`
	SSID       string `json:"ssid"`
	BSSID      string `json:"bssid"`
	Channel    int    `json:"channel"`
	SubnetMask string `json:"subnet_mask"`
	GatewayIP  string `json:"gateway_ip"`
	DNSIP1     string `json:"dns_ip_1"`
	DNSIP2     string `json:"dns_ip_2"`
}

// WiFiNetwork is one entry in a scan result.
type WiFiNetwork struct {
	RSSI           int    `json:"rssi"`
	SSID           string `json:"ssid"`
	BSSID          string `json:"bssid"`
	Channel        int    `json:"channel"`
	EncryptionType int    `json:"encryption_type"`
}

// WiFiNetworkList is the payload of a completed network scan.
type WiFiNetworkList struct {
	Networks []WiFiNetwork `json:"networks"`
}
