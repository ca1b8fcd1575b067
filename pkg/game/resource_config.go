package game

import (
	"path"
	"strings"
)

// ResourceConfig represents the top-level resource manifest loaded from YAML.
// It defines the structure of config/resources.yaml.
//
// Structure:
//
//	version: "1.0"
//	base_path: ""
//	groups:
//	  group_name:
//	    images: [...]
//	    sounds: [...]
type ResourceConfig struct {
	Version  string                   `yaml:"version"`   // Manifest version
	BasePath string                   `yaml:"base_path"` // Prefix for every resource path, may be empty
	Groups   map[string]ResourceGroup `yaml:"groups"`    // Resource groups keyed by group name
}

// ResourceGroup is a collection of resources that are loaded together.
type ResourceGroup struct {
	Images []ImageResource `yaml:"images"`
	Sounds []SoundResource `yaml:"sounds"`
}

// ImageResource represents a single image resource definition.
// Cols/Rows describe a sprite sheet grid and are informational only.
//
// Example:
//
//	images:
//	  - id: IMAGE_SHEET
//	    path: images/sheet
//	    cols: 8
//	    rows: 8
type ImageResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
	Cols int    `yaml:"cols,omitempty"`
	Rows int    `yaml:"rows,omitempty"`
}

// SoundResource represents a single sound or music resource definition.
//
// Example:
//
//	sounds:
//	  - id: SOUND_DROP
//	    path: sounds/drop.wav
type SoundResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// buildFullPath joins the base path and a resource's relative path using
// forward slashes, which is what fs.FS expects on every platform.
func buildFullPath(basePath, relativePath string) string {
	relativePath = strings.TrimPrefix(relativePath, "/")
	if basePath == "" {
		return path.Clean(relativePath)
	}
	return path.Join(basePath, relativePath)
}
