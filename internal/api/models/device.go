package models

// Device represents a registered push notification device.
// The token is always redacted to a short prefix.
type Device struct {
	UserID       string    `json:"userId"`
	TokenPrefix  string    `json:"tokenPrefix"`
	Active       bool      `json:"active"`
	RegisteredAt Timestamp `json:"registeredAt"`
}

// DeviceRegisterRequest is the request body for registering a device.
type DeviceRegisterRequest struct {
	UserID      string `json:"userId"`
	DeviceToken string `json:"deviceToken"`
}

// DeviceList represents the list of active registrations.
type DeviceList struct {
	Items []Device `json:"items"`
	Count int      `json:"count"`
}
