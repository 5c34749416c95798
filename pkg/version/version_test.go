package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		tag      string
		expected Info
	}{
		{tag: "v1.2.3", expected: Info{Version: "1.2.3", Release: true}},
		{tag: "1.2", expected: Info{Version: "1.2.0", Release: true}},
		{tag: "v1.3.0-rc.1", expected: Info{Version: "1.3.0-rc.1", Release: false}},
		{tag: "dev", expected: Info{Version: "dev", Release: false}},
		{tag: "", expected: Info{Version: "", Release: false}},
	}

	for _, tc := range testCases {
		t.Run(tc.tag, func(t *testing.T) {
			assert.Equal(t, tc.expected, Parse(tc.tag))
		})
	}
}

func TestCurrent(t *testing.T) {
	assert.Equal(t, Info{Version: "dev"}, Current())
}
