// Package testutil provides fixtures shared by driftwall tests.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/driftwall/driftwall/internal/playlist"
)

// WritePNG writes a solid-color PNG of the given size to fs.
func WritePNG(t *testing.T, fs afero.Fs, path string, width, height int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	if err := afero.WriteFile(fs, path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// WritePlaylist saves a directory playlist covering dir into the
// playlists directory.
func WritePlaylist(t *testing.T, fs afero.Fs, playlistsDir, name, dir string) {
	t.Helper()

	pl := &playlist.Playlist{
		Name:  name,
		Items: []playlist.Item{{Kind: playlist.KindDirectory, Path: dir, Recursive: true, Enabled: true}},
	}
	if err := playlist.Save(fs, filepath.Join(playlistsDir, name+".yaml"), pl); err != nil {
		t.Fatalf("failed to save playlist %q: %v", name, err)
	}
}
