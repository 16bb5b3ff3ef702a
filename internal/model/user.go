package model

// User is the single registered driver of a session.
type User struct {
	Name          string `json:"name"`
	VehicleNumber string `json:"vehicleNumber"`
	Email         string `json:"email"`
}

// RegistrationRequest is the unvalidated registration form.
type RegistrationRequest struct {
	Name          string `json:"name"`
	VehicleNumber string `json:"vehicleNumber"`
	Email         string `json:"email"`
}
