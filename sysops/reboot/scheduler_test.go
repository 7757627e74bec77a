package reboot

import (
	"strconv"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dts/setuptest"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		unit    Unit
		value   int
		wantErr bool
	}{
		{
			name:  "Minimum minutes",
			unit:  Minutes,
			value: 1,
		},
		{
			name:  "Maximum minutes",
			unit:  Minutes,
			value: 1440,
		},
		{
			name:    "Zero minutes",
			unit:    Minutes,
			value:   0,
			wantErr: true,
		},
		{
			name:    "Minutes above one day",
			unit:    Minutes,
			value:   1441,
			wantErr: true,
		},
		{
			name:  "Maximum hours",
			unit:  Hours,
			value: 24,
		},
		{
			name:    "Zero hours",
			unit:    Hours,
			value:   0,
			wantErr: true,
		},
		{
			name:    "Hours above one day",
			unit:    Hours,
			value:   25,
			wantErr: true,
		},
		{
			name:  "Maximum days",
			unit:  Days,
			value: 7,
		},
		{
			name:    "Zero days",
			unit:    Days,
			value:   0,
			wantErr: true,
		},
		{
			name:    "Days above one week",
			unit:    Days,
			value:   8,
			wantErr: true,
		},
		{
			name:    "Negative value",
			unit:    Days,
			value:   -1,
			wantErr: true,
		},
		{
			name:    "Unknown unit",
			unit:    Unit("weeks"),
			value:   1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)

			err := Validate(tt.unit, tt.value)

			assert.Equal(tt.wantErr, err != nil, "Validate() error = %v, wantErr %v", err, tt.wantErr)
			if tt.wantErr && tt.unit != Unit("weeks") {
				var rangeErr *RangeError
				assert.ErrorAs(err, &rangeErr)
			}
		})
	}
}

func TestSchedule(t *testing.T) {
	tests := []struct {
		name        string
		unit        Unit
		value       int
		wantMinutes string
		wantErr     bool
	}{
		{
			name:        "Twenty minutes",
			unit:        Minutes,
			value:       20,
			wantMinutes: "+20",
		},
		{
			name:        "Two hours",
			unit:        Hours,
			value:       2,
			wantMinutes: "+120",
		},
		{
			name:        "One day",
			unit:        Days,
			value:       1,
			wantMinutes: "+1440",
		},
		{
			name:    "Out of range never invokes shutdown",
			unit:    Minutes,
			value:   1441,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			r := setuptest.NewShellRecorder()
			r.Install(t)

			err := Schedule(tt.unit, tt.value)

			if tt.wantErr {
				assert.Error(err)
				assert.Len(r.Calls, 0)
				return
			}
			require.Nil(err)
			require.Len(r.Calls, 1)
			assert.Equal("shutdown", r.Calls[0].Name)
			assert.Equal([]string{"-r", tt.wantMinutes}, r.Calls[0].Args)
		})
	}
}

func TestNow(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	r := setuptest.NewShellRecorder()
	r.Install(t)

	err := Now()

	require.Nil(err)
	require.Len(r.Calls, 1)
	assert.Equal("shutdown", r.Calls[0].Name)
	assert.Equal([]string{"-r", "now"}, r.Calls[0].Args)
}

func TestCancel(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	r := setuptest.NewShellRecorder()
	r.Install(t)

	err := Cancel()

	require.Nil(err)
	require.Len(r.Calls, 1)
	assert.Equal("shutdown", r.Calls[0].Name)
	assert.Equal([]string{"-c"}, r.Calls[0].Args)
}

func TestStatus(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	fs := setuptest.UseMemFs(t)

	got, err := Status()
	require.Nil(err)
	assert.Equal("no reboot scheduled", got)

	at := time.Date(2026, 2, 1, 12, 30, 0, 0, time.Local)
	scheduled := "USEC=" + strconv.FormatInt(at.UnixMicro(), 10) + "\nWARN_WALL=1\nMODE=reboot\n"
	require.Nil(afero.WriteFile(fs, "/run/systemd/shutdown/scheduled", []byte(scheduled), 0644))

	got, err = Status()
	require.Nil(err)
	assert.Contains(got, "reboot scheduled for")
	assert.Contains(got, at.Format(time.RFC1123))
}
