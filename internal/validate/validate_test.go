//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVar_VideoExt(t *testing.T) {
	tests := []struct {
		ext   string
		valid bool
	}{
		{".mp4", true},
		{".MKV", true},
		{"mp4", false},
		{".", false},
		{"", false},
		{".tar.gz", false},
		{"./mp4", false},
		{".m p4", false},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			err := Var(tt.ext, "videoext")
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestStruct_DiveVideoExt(t *testing.T) {
	type exts struct {
		List []string `validate:"required,dive,videoext"`
	}

	assert.NoError(t, Struct(exts{List: []string{".mp4", ".mkv"}}))
	assert.Error(t, Struct(exts{List: []string{".mp4", "avi"}}))
	assert.Error(t, Struct(exts{}))
}
