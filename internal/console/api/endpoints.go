// Package api issues HTTP requests against the device REST API. It owns
// credential attachment and the centralized 401 handling; interpreting any
// other status code is the caller's job.
package api

// REST endpoint paths served by the device.
const (
	FeaturesEndpoint            = "/rest/features"
	SignInEndpoint              = "/rest/signIn"
	VerifyAuthorizationEndpoint = "/rest/verifyAuthorization"

	WiFiSettingsEndpoint = "/rest/wifiSettings"
	WiFiStatusEndpoint   = "/rest/wifiStatus"
	ScanNetworksEndpoint = "/rest/scanNetworks"
	ListNetworksEndpoint = "/rest/listNetworks"

	APSettingsEndpoint = "/rest/apSettings"
	APStatusEndpoint   = "/rest/apStatus"

	NTPSettingsEndpoint = "/rest/ntpSettings"
	NTPStatusEndpoint   = "/rest/ntpStatus"
	TimeEndpoint        = "/rest/time"

	OTASettingsEndpoint    = "/rest/otaSettings"
	SystemStatusEndpoint   = "/rest/systemStatus"
	RestartEndpoint        = "/rest/restart"
	FactoryResetEndpoint   = "/rest/factoryReset"
	UploadFirmwareEndpoint = "/rest/uploadFirmware"

	SecuritySettingsEndpoint = "/rest/securitySettings"

	ScheduleEndpoint        = "/rest/schedule"
	SprinklerStatusEndpoint = "/rest/status"
)
