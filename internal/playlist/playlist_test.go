package playlist

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/driftwall/driftwall/internal/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		pl      Playlist
		wantErr bool
	}{
		{
			name: "valid file item",
			pl: Playlist{
				Name:  "nature",
				Items: []Item{{Kind: KindFile, Path: "/img/a.png", Enabled: true}},
			},
		},
		{
			name:    "missing name",
			pl:      Playlist{Items: []Item{{Kind: KindFile, Path: "/img/a.png"}}},
			wantErr: true,
		},
		{
			name: "unknown kind",
			pl: Playlist{
				Name:  "bad",
				Items: []Item{{Kind: "symlink", Path: "/img/a.png"}},
			},
			wantErr: true,
		},
		{
			name: "empty item path",
			pl: Playlist{
				Name:  "bad",
				Items: []Item{{Kind: KindFile}},
			},
			wantErr: true,
		},
		{
			name: "invalid pattern",
			pl: Playlist{
				Name:     "bad",
				Patterns: []string{"[unclosed"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pl.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, errors.ErrInvalidInput) {
				t.Errorf("Validate() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/playlists/nature.yaml"

	original := &Playlist{
		Name: "nature",
		Items: []Item{
			{Kind: KindFile, Path: "/img/a.png", Enabled: true},
			{Kind: KindDirectory, Path: "/img/forest", Recursive: true, Enabled: true},
		},
		Patterns: []string{"*.png", "*.jpg"},
	}

	if err := Save(fs, path, original); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load(fs, path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.Name != original.Name {
		t.Errorf("name = %q, want %q", loaded.Name, original.Name)
	}
	if len(loaded.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(loaded.Items))
	}
	if !loaded.Items[1].Recursive {
		t.Error("recursive flag lost in round trip")
	}
	if len(loaded.Patterns) != 2 {
		t.Errorf("patterns = %d, want 2", len(loaded.Patterns))
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := Load(fs, "/playlists/ghost.yaml")
	if !errors.Is(err, errors.ErrPlaylistNotFound) {
		t.Errorf("Load() error = %v, want ErrPlaylistNotFound", err)
	}
}

func TestLoadCorruptedFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/playlists/bad.yaml"
	if err := afero.WriteFile(fs, path, []byte("items: [unclosed"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	_, err := Load(fs, path)
	if !errors.Is(err, errors.ErrPlaylistCorrupted) {
		t.Errorf("Load() error = %v, want ErrPlaylistCorrupted", err)
	}
}

func TestLoadDefaultsNameFromFilename(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/playlists/sunsets.yaml"
	if err := afero.WriteFile(fs, path, []byte("items: []\n"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	pl, err := Load(fs, path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if pl.Name != "sunsets" {
		t.Errorf("name = %q, want %q", pl.Name, "sunsets")
	}
}

func TestLoadDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := "/playlists"

	good := &Playlist{Name: "good", Items: []Item{{Kind: KindFile, Path: "/img/a.png", Enabled: true}}}
	if err := Save(fs, filepath.Join(dir, "good.yaml"), good); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := afero.WriteFile(fs, filepath.Join(dir, "bad.yaml"), []byte(": not yaml :"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := afero.WriteFile(fs, filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	playlists, errs := LoadDir(fs, dir)
	if len(playlists) != 1 {
		t.Errorf("playlists = %d, want 1", len(playlists))
	}
	if _, ok := playlists["good"]; !ok {
		t.Error("playlist 'good' not loaded")
	}
	if len(errs) != 1 {
		t.Errorf("errors = %d, want 1", len(errs))
	}
}

func TestScan(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := []string{
		"/img/a.png",
		"/img/b.jpg",
		"/img/notes.txt",
		"/img/nested/c.png",
		"/other/d.png",
	}
	for _, f := range files {
		if err := afero.WriteFile(fs, f, []byte("x"), 0644); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
	}

	tests := []struct {
		name string
		pl   Playlist
		want []string
	}{
		{
			name: "flat directory",
			pl: Playlist{
				Name:  "flat",
				Items: []Item{{Kind: KindDirectory, Path: "/img", Enabled: true}},
			},
			want: []string{"/img/a.png", "/img/b.jpg", "/img/notes.txt"},
		},
		{
			name: "recursive with patterns",
			pl: Playlist{
				Name:     "pngs",
				Items:    []Item{{Kind: KindDirectory, Path: "/img", Recursive: true, Enabled: true}},
				Patterns: []string{"*.png"},
			},
			want: []string{"/img/a.png", "/img/nested/c.png"},
		},
		{
			name: "disabled items skipped",
			pl: Playlist{
				Name: "partial",
				Items: []Item{
					{Kind: KindDirectory, Path: "/img", Enabled: false},
					{Kind: KindFile, Path: "/other/d.png", Enabled: true},
				},
			},
			want: []string{"/other/d.png"},
		},
		{
			name: "file filtered by pattern",
			pl: Playlist{
				Name:     "filtered",
				Items:    []Item{{Kind: KindFile, Path: "/img/notes.txt", Enabled: true}},
				Patterns: []string{"*.png"},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.pl.Scan(fs)
			if err != nil {
				t.Fatalf("Scan() failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Scan() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Scan()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
