package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredentialsValidator_ValidateLogin(t *testing.T) {
	v := NewCredentialsValidator(false)

	tests := []struct {
		login   string
		wantErr bool
	}{
		{login: "registrar", wantErr: false},
		{login: "nurse.anna-2", wantErr: false},
		{login: "ab", wantErr: true},
		{login: "with space", wantErr: true},
		{login: "abcdefghijklmnopqrstuvwxyz0123456789", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.login, func(t *testing.T) {
			err := v.ValidateLogin(tt.login)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCredentialsValidator_SpecialChar(t *testing.T) {
	strict := NewCredentialsValidator(true)
	lax := NewCredentialsValidator(false)

	assert.Error(t, strict.ValidateRegister("registrar", "password123"))
	assert.NoError(t, strict.ValidateRegister("registrar", "password123!"))
	assert.NoError(t, lax.ValidateRegister("registrar", "password123"))
}
