package validator_test

import (
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/lucasaveiro/service-scheduler/shared/failure"
	"github.com/lucasaveiro/service-scheduler/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceForm struct {
	Name     string `validate:"required" json:"name"`
	Duration int    `validate:"gt=0,lte=480" json:"duration"`
	Status   string `validate:"oneof=active inactive" json:"status"`
}

type contactForm struct {
	Name  string `validate:"required" json:"name"`
	Email string `validate:"omitempty,booking_email" json:"email"`
	Phone string `validate:"omitempty,booking_phone" json:"phone"`
	Start string `validate:"omitempty,clock" json:"start"`
}

type addressForm struct {
	Email   string `validate:"required,contact_email" json:"email"`
	ZipCode string `validate:"required,zip_code" json:"zipCode"`
	Notes   string `json:"-"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		data    *serviceForm
		message string
	}{
		{
			name: "valid",
			data: &serviceForm{Name: "Haircut", Duration: 30, Status: "active"},
		},
		{
			name:    "missing name uses the json field name",
			data:    &serviceForm{Duration: 30, Status: "active"},
			message: "name is required",
		},
		{
			name:    "zero duration",
			data:    &serviceForm{Name: "Haircut", Status: "active"},
			message: "duration must be greater than 0",
		},
		{
			name:    "duration above a working day",
			data:    &serviceForm{Name: "Haircut", Duration: 600, Status: "active"},
			message: "duration must be less than or equal to 480",
		},
		{
			name:    "unknown status",
			data:    &serviceForm{Name: "Haircut", Duration: 30, Status: "archived"},
			message: "status must be one of active inactive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.message == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "valid body",
			body: `{"name":"Haircut","duration":45,"status":"inactive"}`,
		},
		{
			name:    "decodes but fails validation",
			body:    `{"name":"","duration":45,"status":"inactive"}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			body:    `{"name":"Haircut","duration":}`,
			wantErr: true,
		},
		{
			name:    "wrong field type",
			body:    `{"name":"Haircut","duration":"45","status":"active"}`,
			wantErr: true,
		},
		{
			name:    "empty object",
			body:    `{}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var form serviceForm

			err := validator.Validate(strings.NewReader(tt.body), &form)

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, serviceForm{Name: "Haircut", Duration: 45, Status: "inactive"}, form)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateStructFields(t *testing.T) {
	tests := []struct {
		name     string
		data     *contactForm
		expected map[string]string
	}{
		{
			name: "valid",
			data: &contactForm{Name: "Jane", Email: "jane@example.com", Phone: "+1 (555) 123-4567", Start: "09:30"},
		},
		{
			name: "optional fields may be empty",
			data: &contactForm{Name: "Jane"},
		},
		{
			name: "every failing field is reported",
			data: &contactForm{Email: "jane@", Phone: "call me", Start: "9am"},
			expected: map[string]string{
				"name":  "name is required",
				"email": "Invalid email address",
				"phone": "Invalid phone number",
				"start": "start must be a time in HH:MM format",
			},
		},
		{
			name: "hour out of range",
			data: &contactForm{Name: "Jane", Start: "24:00"},
			expected: map[string]string{
				"start": "start must be a time in HH:MM format",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validator.ValidateStructFields(tt.data)

			if tt.expected == nil {
				assert.Empty(t, fields)

				return
			}

			assert.Equal(t, tt.expected, fields)
		})
	}
}

func TestContactValidations(t *testing.T) {
	tests := []struct {
		name     string
		data     *addressForm
		expected map[string]string
	}{
		{
			name: "valid",
			data: &addressForm{Email: "owner@salon.io", ZipCode: "94107"},
		},
		{
			name: "extended zip code",
			data: &addressForm{Email: "owner@salon.io", ZipCode: "94107-1234"},
		},
		{
			name: "invalid email and zip code",
			data: &addressForm{Email: "owner at salon", ZipCode: "9410"},
			expected: map[string]string{
				"email":   "Please enter a valid email",
				"zipCode": "Please enter a valid ZIP code",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validator.ValidateStructFields(tt.data)

			if tt.expected == nil {
				assert.Empty(t, fields)

				return
			}

			assert.Equal(t, tt.expected, fields)
		})
	}
}

func TestValidateVar(t *testing.T) {
	png := multipart.FileHeader{
		Filename: "logo.png",
		Size:     512 * 1024,
		Header:   map[string][]string{"Content-Type": {"image/png"}},
	}

	tests := []struct {
		name    string
		field   any
		tag     string
		wantErr bool
	}{
		{
			name:  "allowed mimetype",
			field: png,
			tag:   "mimetypes=image/png image/jpeg",
		},
		{
			name:    "disallowed mimetype",
			field:   png,
			tag:     "mimetypes=image/jpeg",
			wantErr: true,
		},
		{
			name:  "within size limit",
			field: png,
			tag:   "maxfilesize=1",
		},
		{
			name:    "over size limit",
			field:   png,
			tag:     "maxfilesize=0.25",
			wantErr: true,
		},
		{
			name:    "data uri is not an upload",
			field:   "data:image/png;base64,iVBORw0KGgo=",
			tag:     "mimetypes=image/png",
			wantErr: true,
		},
		{
			name:    "size of a plain string",
			field:   "logo.png",
			tag:     "maxfilesize=1",
			wantErr: true,
		},
		{
			name:  "clock",
			field: "17:45",
			tag:   "clock",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestIsEmail(t *testing.T) {
	tests := map[string]bool{
		"jane@example.com":      true,
		"JANE.DOE+1@Example.IO": true,
		"jane@example":          false,
		"@example.com":          false,
		"jane example@mail.com": false,
	}

	for input, expected := range tests {
		assert.Equal(t, expected, validator.IsEmail(input), input)
	}
}

func TestIsPhone(t *testing.T) {
	tests := map[string]bool{
		"+1 (555) 123-4567": true,
		"5551234567":        true,
		"555-CALL":          false,
		"":                  false,
	}

	for input, expected := range tests {
		assert.Equal(t, expected, validator.IsPhone(input), input)
	}
}
