package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadResourceConfig(t *testing.T) {
	rm := newTestResourceManager(t)

	require.NotNil(t, rm.config)
	assert.Equal(t, "1.0", rm.config.Version)
	require.Contains(t, rm.config.Groups, "init")

	initGroup := rm.config.Groups["init"]
	require.Len(t, initGroup.Images, 2)
	assert.Equal(t, ImageResource{ID: "IMAGE_SHEET", Path: "images/sheet", Cols: 8, Rows: 8}, initGroup.Images[0])
	assert.Equal(t, []SoundResource{{ID: "SOUND_DROP", Path: "sounds/drop.wav"}}, initGroup.Sounds)
}

// TestBuildFullPath tests the buildFullPath helper function
func TestBuildFullPath(t *testing.T) {
	tests := []struct {
		basePath     string
		relativePath string
		expected     string
	}{
		{"assets", "images/bucket.png", "assets/images/bucket.png"},
		{"assets", "/images/bucket.png", "assets/images/bucket.png"},
		{"", "images/bucket.png", "images/bucket.png"},
		{"", "/images/bucket.png", "images/bucket.png"},
		{"", "./sounds//drop.wav", "sounds/drop.wav"},
		{"assets", "images/sheet", "assets/images/sheet"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, buildFullPath(tt.basePath, tt.relativePath),
			"buildFullPath(%q, %q)", tt.basePath, tt.relativePath)
	}
}

func TestBuildResourceMapDefaultExtensions(t *testing.T) {
	rm := NewResourceManager(nil, nil, nil)
	rm.config = &ResourceConfig{
		BasePath: "res",
		Groups: map[string]ResourceGroup{
			"g": {
				Images: []ImageResource{{ID: "IMG", Path: "images/a"}},
				Sounds: []SoundResource{{ID: "SND", Path: "sounds/b"}},
			},
		},
	}
	rm.buildResourceMap()

	assert.Equal(t, map[string]string{
		"IMG": "res/images/a.png",
		"SND": "res/sounds/b.ogg",
	}, rm.resourceMap)
}
