package syspkg

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLookPath limits binary resolution to the given names until the test
// ends, and clears the memoized detection result around it.
func stubLookPath(t *testing.T, available ...string) {
	t.Helper()

	ResetDetection()
	oldLookPath := lookPath
	lookPath = func(name string) (string, error) {
		for _, b := range available {
			if b == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", fmt.Errorf("executable file not found in $PATH")
	}
	t.Cleanup(func() {
		lookPath = oldLookPath
		ResetDetection()
	})
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		available []string
		wantBin   string
		wantErr   bool
	}{
		{
			name:      "Only apt",
			available: []string{"apt-get"},
			wantBin:   "apt-get",
		},
		{
			name:      "Only yum",
			available: []string{"yum"},
			wantBin:   "yum",
		},
		{
			name:      "Only dnf",
			available: []string{"dnf"},
			wantBin:   "dnf",
		},
		{
			name:      "dnf wins over yum and apt",
			available: []string{"apt-get", "yum", "dnf"},
			wantBin:   "dnf",
		},
		{
			name:      "yum wins over apt",
			available: []string{"apt-get", "yum"},
			wantBin:   "yum",
		},
		{
			name:      "Nothing supported",
			available: []string{"pacman"},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			stubLookPath(t, tt.available...)

			pm, err := Detect()

			if tt.wantErr {
				assert.Error(err)
				assert.Nil(pm)
				return
			}
			require.Nil(t, err)
			assert.Equal(tt.wantBin, pm.GetBin())
		})
	}
}

func TestDetect_Memoized(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	stubLookPath(t, "dnf")

	first, err := Detect()
	require.Nil(err)

	// A changed path does not alter the memoized result.
	lookPath = func(name string) (string, error) {
		return "", fmt.Errorf("executable file not found in $PATH")
	}
	second, err := Detect()
	require.Nil(err)
	assert.Same(first, second)
}
