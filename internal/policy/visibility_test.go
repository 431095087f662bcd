package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewer_CanViewVideo(t *testing.T) {
	const ownerID = int64(7)

	tests := []struct {
		name      string
		viewer    Viewer
		published bool
		want      bool
	}{
		{"staff sees unpublished", Viewer{UserID: 1, IsStaff: true}, false, true},
		{"staff sees published", Viewer{UserID: 1, IsStaff: true}, true, true},
		{"owner sees own unpublished", Viewer{UserID: ownerID}, false, true},
		{"other user denied unpublished", Viewer{UserID: 8}, false, false},
		{"other user sees published", Viewer{UserID: 8}, true, true},
		{"anonymous denied unpublished", Anonymous, false, false},
		{"anonymous sees published", Anonymous, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.viewer.CanViewVideo(ownerID, tt.published))
		})
	}
}

func TestViewer_AnonymousNeverMatchesZeroOwner(t *testing.T) {
	// owner_id 非空，但防止零值身份意外命中
	assert.False(t, Anonymous.CanViewVideo(0, false))
	assert.False(t, Anonymous.Authenticated())
}
