package leveledit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	assert.True(t, IsSemver(Version()), "embedded version must be semver: %q", Version())
	assert.Equal(t, "v"+Version(), VersionTag())
}

func TestIsSemver(t *testing.T) {
	cases := []struct {
		version string
		want    bool
	}{
		{"0.1.0", true},
		{"1.2.3-alpha.1", true},
		{"2.0.0+build.7", true},
		{"v1.2.3", false},
		{"1.2", false},
		{"01.2.3", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, IsSemver(tc.version), tc.version)
	}
}
