package models

// User is one device account. The device stores credentials verbatim; the
// console never hashes or interprets them.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Admin    bool   `json:"admin"`
}

// SecuritySettings holds the device accounts and the secret used to sign
// access tokens.
type SecuritySettings struct {
	JWTSecret string `json:"jwt_secret"`
	Users     []User `json:"users"`
}

// SignInRequest is the body of the sign-in endpoint.
type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignInResponse carries the signed bearer credential.
type SignInResponse struct {
	AccessToken string `json:"access_token"`
}

// Features describes which device capabilities are compiled in. Served
// unauthenticated; the console will not start without it.
type Features struct {
	Project        bool `json:"project"`
	Security       bool `json:"security"`
	MQTT           bool `json:"mqtt"`
	NTP            bool `json:"ntp"`
	OTA            bool `json:"ota"`
	UploadFirmware bool `json:"upload_firmware"`
}
