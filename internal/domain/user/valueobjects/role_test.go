package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Role
		wantErr bool
	}{
		{"admin", "Admin", RoleAdmin, false},
		{"cozinha", "Cozinha", RoleCozinha, false},
		{"ti", "T.I", RoleTI, false},
		{"empty", "", "", true},
		{"unassigned user", "Guest", "", true},
		{"wrong case", "admin", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewRole(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleCozinha.IsValid())
	assert.True(t, RoleTI.IsValid())
	assert.False(t, Role("").IsValid())
	assert.False(t, Role("Guest").IsValid())
}

func TestNewEmail(t *testing.T) {
	t.Run("normalizes case and whitespace", func(t *testing.T) {
		e, err := NewEmail("  Alice@Example.COM ")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", e.String())
	})

	t.Run("rejects invalid formats", func(t *testing.T) {
		for _, input := range []string{"", "not-an-email", "a@b", "@example.com"} {
			_, err := NewEmail(input)
			assert.Error(t, err, "input %q", input)
		}
	})

	t.Run("equality", func(t *testing.T) {
		a, err := NewEmail("alice@example.com")
		require.NoError(t, err)
		b, err := NewEmail("ALICE@example.com")
		require.NoError(t, err)
		assert.True(t, a.Equals(b))
	})
}
