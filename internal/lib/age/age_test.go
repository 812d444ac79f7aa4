package age

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestYears(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  time.Time
		want int
	}{
		{"день рождения уже прошёл", time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC), 30},
		{"день рождения ещё впереди — возраст тот же", time.Date(1995, 12, 31, 0, 0, 0, 0, time.UTC), 30},
		{"родился в этом году", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Years(tt.dob, now))
		})
	}
}

func TestIsNew(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsNew(now.AddDate(0, 0, -6), now, 7))
	assert.True(t, IsNew(now, now, 7))
	assert.False(t, IsNew(now.AddDate(0, 0, -8), now, 7))
}
