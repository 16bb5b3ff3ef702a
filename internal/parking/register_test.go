package parking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkly/internal/errors"
	"parkly/internal/model"
)

func TestNormalizeRegistration(t *testing.T) {
	tests := []struct {
		name           string
		req            model.RegistrationRequest
		expected       model.User
		expectedFields map[string]string
	}{
		{
			name:     "normalizes vehicle and email",
			req:      model.RegistrationRequest{Name: "  Alice ", VehicleNumber: " abc123", Email: "Alice@Example.COM"},
			expected: model.User{Name: "Alice", VehicleNumber: "ABC123", Email: "alice@example.com"},
		},
		{
			name: "all fields missing",
			req:  model.RegistrationRequest{Name: " ", VehicleNumber: "", Email: ""},
			expectedFields: map[string]string{
				"name":          "Name is required",
				"vehicleNumber": "Vehicle number is required",
				"email":         "Email is required",
			},
		},
		{
			name:           "email without domain dot",
			req:            model.RegistrationRequest{Name: "Alice", VehicleNumber: "abc123", Email: "alice@example"},
			expectedFields: map[string]string{"email": "Invalid email format"},
		},
		{
			name:           "email with leading space",
			req:            model.RegistrationRequest{Name: "Alice", VehicleNumber: "abc123", Email: " a@b.com"},
			expectedFields: map[string]string{"email": "Invalid email format"},
		},
		{
			name:           "email with trailing space",
			req:            model.RegistrationRequest{Name: "Alice", VehicleNumber: "abc123", Email: "a@b.com "},
			expectedFields: map[string]string{"email": "Invalid email format"},
		},
		{
			name:           "whitespace-only email",
			req:            model.RegistrationRequest{Name: "Alice", VehicleNumber: "abc123", Email: "   "},
			expectedFields: map[string]string{"email": "Email is required"},
		},
		{
			name:           "email with spaces",
			req:            model.RegistrationRequest{Name: "Alice", VehicleNumber: "abc123", Email: "al ice@example.com"},
			expectedFields: map[string]string{"email": "Invalid email format"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NormalizeRegistration(tt.req)
			if tt.expectedFields != nil {
				var verr *errors.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.expectedFields, verr.Fields)
				assert.Equal(t, model.User{}, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, user)
		})
	}
}
