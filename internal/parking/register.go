package parking

import (
	"regexp"
	"strings"

	"parkly/internal/errors"
	"parkly/internal/model"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeRegistration validates a registration form and returns the
// normalized user. The email pattern is matched against the value as entered;
// trimming and lowercasing only happen once validation passed. On failure it
// returns a *errors.ValidationError keyed by field name.
func NormalizeRegistration(req model.RegistrationRequest) (model.User, error) {
	name := strings.TrimSpace(req.Name)
	vehicle := strings.TrimSpace(req.VehicleNumber)

	fields := make(map[string]string)
	if name == "" {
		fields["name"] = "Name is required"
	}
	if vehicle == "" {
		fields["vehicleNumber"] = "Vehicle number is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = "Email is required"
	} else if !emailPattern.MatchString(req.Email) {
		fields["email"] = "Invalid email format"
	}
	if len(fields) > 0 {
		return model.User{}, &errors.ValidationError{Fields: fields}
	}

	return model.User{
		Name:          name,
		VehicleNumber: strings.ToUpper(vehicle),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
	}, nil
}
