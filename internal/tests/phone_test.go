package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bravonest/internal/domain"
	"bravonest/internal/service"
)

func TestCleanPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "digits only", input: "5551234567", want: "5551234567"},
		{name: "formatted", input: "(555) 123-4567", want: "5551234567"},
		{name: "dots and spaces", input: "555.123 4567", want: "5551234567"},
		{name: "letters stripped", input: "55five5", want: "555"},
		{name: "empty", input: "", want: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, service.CleanPhone(testCase.input))
		})
	}
}

func TestPhoneToEmail(t *testing.T) {
	assert.Equal(t, "5551234567@bravonest.com", service.PhoneToEmail("(555) 123-4567"))
	assert.Equal(t, "5551234567@bravonest.com", service.PhoneToEmail("5551234567"))
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "ten digits", input: "5551234567", wantErr: false},
		{name: "formatted ten digits", input: "(555) 123-4567", wantErr: false},
		{name: "nine digits", input: "555123456", wantErr: true},
		{name: "eleven digits", input: "15551234567", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := service.ValidatePhone(testCase.input)
			if testCase.wantErr {
				assert.True(t, domain.IsKind(err, domain.KindValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "full number", input: "5551234567", want: "(555) 123-4567"},
		{name: "already formatted", input: "(555) 123-4567", want: "(555) 123-4567"},
		{name: "seven digits", input: "5551234", want: "(555) 123-4"},
		{name: "four digits", input: "5551", want: "(555) 1"},
		{name: "two digits", input: "55", want: "55"},
		{name: "overflow trimmed", input: "555123456789", want: "(555) 123-4567"},
		{name: "empty", input: "", want: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, service.FormatPhone(testCase.input))
		})
	}
}
