package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskwave/internal/service"
	"taskwave/internal/validate"
)

func TestStruct_TaskInput(t *testing.T) {
	tests := []struct {
		name    string
		in      service.TaskInput
		wantMsg string
	}{
		{"ok", service.TaskInput{Title: "Buy milk", Description: "two liters"}, ""},
		{"exactly three", service.TaskInput{Title: "abc"}, ""},
		{"two chars", service.TaskInput{Title: "Hi"}, "Title must be at least 3 characters"},
		{"empty", service.TaskInput{}, "Title must be at least 3 characters"},
		{"blank but long", service.TaskInput{Title: "     "}, "Title must be at least 3 characters"},
		{"multibyte counts runes", service.TaskInput{Title: "äöü"}, ""},
		{"description at limit", service.TaskInput{Title: "Task", Description: strings.Repeat("x", 500)}, ""},
		{"description too long", service.TaskInput{Title: "Task", Description: strings.Repeat("x", 501)}, "Description is too long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.in)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, validate.IsValidation(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestStruct_Credentials(t *testing.T) {
	tests := []struct {
		name    string
		in      service.Credentials
		wantMsg string
	}{
		{"ok", service.Credentials{Email: "a@b.com", Password: "x"}, ""},
		{"no email", service.Credentials{Password: "x"}, "Email is required"},
		{"blank email", service.Credentials{Email: "  ", Password: "x"}, "Email is required"},
		{"bad email", service.Credentials{Email: "a@b", Password: "x"}, "Invalid email format"},
		{"email with space", service.Credentials{Email: "a b@c.de", Password: "x"}, "Invalid email format"},
		{"bad email reported before password", service.Credentials{Email: "nope"}, "Invalid email format"},
		{"no password", service.Credentials{Email: "a@b.com"}, "Password is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.in)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestStructBlankFirst_Registration(t *testing.T) {
	full := service.Registration{
		FirstName:    "Ana",
		LastName:     "Bee",
		Email:        "ana@bee.io",
		MobileNumber: "0611",
		Password:     "pw",
	}
	require.NoError(t, validate.StructBlankFirst(full))

	bad := full
	bad.Email = "not-an-email"
	bad.Password = ""
	err := validate.StructBlankFirst(bad)
	require.Error(t, err)
	assert.Equal(t, "Password is required", err.Error())

	bad.Password = "pw"
	err = validate.StructBlankFirst(bad)
	require.Error(t, err)
	assert.Equal(t, "Invalid email format", err.Error())

	missing := full
	missing.MobileNumber = ""
	err = validate.StructBlankFirst(missing)
	require.Error(t, err)
	var vErr *validate.Error
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Mobile Number", vErr.Field)
	assert.Equal(t, "Mobile Number is required", vErr.Message)
}

func TestEmailShape(t *testing.T) {
	for email, ok := range map[string]bool{
		"a@b.co":  true,
		"a@@b.co": false,
		"@b.co":   false,
		"a@b.":    false,
		"a @b.co": false,
	} {
		err := validate.Struct(service.Credentials{Email: email, Password: "x"})
		assert.Equal(t, ok, err == nil, email)
	}
}

func TestFields_SkipsUnnamed(t *testing.T) {
	// The blank title is not checked when only the description is named.
	assert.NoError(t, validate.Fields(service.TaskInput{Description: "soon"}, "Description"))
	assert.NoError(t, validate.Fields(service.TaskInput{Title: "Hi"}))

	err := validate.Fields(service.TaskInput{Title: "Hi"}, "Title")
	require.Error(t, err)
	assert.Equal(t, "Title must be at least 3 characters", err.Error())

	err = validate.Fields(service.TaskInput{Title: "Hi", Description: strings.Repeat("x", 501)}, "Description")
	require.Error(t, err)
	assert.Equal(t, "Description is too long", err.Error())
}
