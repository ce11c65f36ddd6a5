package playback

import (
	"path/filepath"
	"strings"
)

// acceptedExtensions is the fixed set of audio file formats the direction
// layer will schedule.
var acceptedExtensions = map[string]bool{
	".mp3":  true,
	".ogg":  true,
	".wav":  true,
	".flac": true,
}

// AcceptedExtension reports whether the file name carries a playable audio
// extension.
func AcceptedExtension(name string) bool {
	return acceptedExtensions[strings.ToLower(filepath.Ext(name))]
}

// WebPath exposes an absolute file path under root as a root-relative URL
// for remote consumption. It returns the empty string for paths outside the
// root.
func WebPath(root, abs string) string {
	if root == "" || abs == "" {
		return ""
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return ""
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return "/" + filepath.ToSlash(rel)
}
