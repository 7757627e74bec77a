package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "Plain version",
			in:   "1.2.3",
			want: "1.2.3",
		},
		{
			name: "v prefix",
			in:   "v22.1.0",
			want: "22.1.0",
		},
		{
			name: "go prefix",
			in:   "go1.25.1",
			want: "1.25.1",
		},
		{
			name: "Pre-release suffix",
			in:   "v2.3.0-rc1",
			want: "2.3.0",
		},
		{
			name: "Epoch style suffix",
			in:   "1.9.5:2",
			want: "1.9.5",
		},
		{
			name: "Surrounding whitespace",
			in:   "  v1.0.0 ",
			want: "1.0.0",
		},
		{
			name: "Empty",
			in:   "",
			want: "",
		},
		{
			name: "Only one prefix is stripped",
			in:   "go1.0-beta",
			want: "1.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(tt.want, Normalize(tt.in))
		})
	}
}

func TestCompare(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		name    string
		current string
		latest  string
		want    Result
	}{
		{
			name:    "Latest is newer",
			current: "1.2.3",
			latest:  "1.2.4",
			want:    Newer,
		},
		{
			name:    "Equal versions",
			current: "1.2.3",
			latest:  "1.2.3",
			want:    OlderOrEqual,
		},
		{
			name:    "Current ahead of latest",
			current: "1.2.4",
			latest:  "1.2.3",
			want:    OlderOrEqual,
		},
		{
			name:    "Mixed prefixes",
			current: "go1.25.0",
			latest:  "go1.25.1",
			want:    Newer,
		},
		{
			name:    "Suffixes are ignored",
			current: "v2.3.0-rc1",
			latest:  "v2.3.0",
			want:    OlderOrEqual,
		},
		{
			name:    "Missing current",
			current: "",
			latest:  "1.0.0",
			want:    NotComparable,
		},
		{
			name:    "Missing latest",
			current: "1.0.0",
			latest:  "",
			want:    NotComparable,
		},
		{
			name:    "Unparsable current",
			current: "not-a-version",
			latest:  "1.0.0",
			want:    NotComparable,
		},
		{
			name:    "Different segment counts",
			current: "1.2",
			latest:  "1.2.1",
			want:    Newer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(tt.want, Compare(tt.current, tt.latest))
		})
	}
}

func TestResult_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("newer", Newer.String())
	assert.Equal("older/equal", OlderOrEqual.String())
	assert.Equal("not comparable", NotComparable.String())
}
