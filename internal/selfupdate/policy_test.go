package selfupdate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan(t *testing.T) {
	tests := []struct {
		name       string
		current    string
		target     string
		pinned     bool
		allowMajor bool
		want       Plan
		wantErr    error
	}{
		{"minor", "v1.2.0", "v1.3.0", false, false, Plan{From: "v1.2.0", To: "v1.3.0"}, nil},
		{"tag without v", "1.2.0", "1.2.1", false, false, Plan{From: "1.2.0", To: "v1.2.1"}, nil},
		{"same", "v1.2.0", "v1.2.0", false, false, Plan{}, ErrAlreadyLatest},
		{"latest older", "v1.4.0", "v1.3.0", false, false, Plan{}, ErrAlreadyLatest},
		{"pinned older", "v1.4.0", "v1.3.0", true, false, Plan{From: "v1.4.0", To: "v1.3.0", Downgrade: true}, nil},
		{"major refused", "v1.9.0", "v2.0.0", false, false, Plan{}, ErrMajorUpgrade},
		{"pinned major refused", "v2.1.0", "v1.9.0", true, false, Plan{}, ErrMajorUpgrade},
		{"major allowed", "v1.9.0", "v2.0.0", false, true, Plan{From: "v1.9.0", To: "v2.0.0"}, nil},
		{"dev build", "(devel)", "v1.0.0", false, false, Plan{}, ErrDevBuild},
		{"bad target", "v1.0.0", "nightly", true, false, Plan{}, ErrBadVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := plan(tt.current, tt.target, tt.pinned, tt.allowMajor)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
