package cafeteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateHours(t *testing.T) {
	tests := []struct {
		name      string
		startTime int
		closeTime int
		wantErr   error
	}{
		{"full day", 0, 1440, nil},
		{"typical hours", 480, 1320, nil},
		{"zero-length window", 600, 600, nil},
		{"negative start", -1, 600, ErrInvalidHours},
		{"start past midnight", 1441, 600, ErrInvalidHours},
		{"negative close", 480, -1, ErrInvalidHours},
		{"close past midnight", 480, 1441, ErrInvalidHours},
		{"close before open", 600, 480, ErrInvalidHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHours(tt.startTime, tt.closeTime)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
