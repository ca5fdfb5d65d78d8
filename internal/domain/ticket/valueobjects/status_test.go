package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Status
		wantErr bool
	}{
		{"open", "open", StatusOpen, false},
		{"closed", "closed", StatusClosed, false},
		{"empty", "", "", true},
		{"unknown", "archived", "", true},
		{"wrong case", "Open", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewStatus(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_Predicates(t *testing.T) {
	assert.True(t, StatusOpen.IsOpen())
	assert.False(t, StatusOpen.IsClosed())
	assert.True(t, StatusClosed.IsClosed())
	assert.False(t, StatusClosed.IsOpen())
	assert.False(t, Status("").IsValid())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, StatusOpen.CanTransitionTo(StatusClosed))
	assert.True(t, StatusClosed.CanTransitionTo(StatusOpen))
	assert.False(t, StatusOpen.CanTransitionTo(StatusOpen))
	assert.False(t, Status("archived").CanTransitionTo(StatusOpen))
}
