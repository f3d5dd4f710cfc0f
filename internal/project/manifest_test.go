package project

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFromSubdirectory(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, ManifestName), `
[package]
name = "demo"

[analysis]
jobs = 3
disk_cache = true
colour = "always"

[paths]
include = ["src"]
exclude = ["src/gen"]
`)
	write(t, filepath.Join(root, "src", "b.cs"), "class B { }")
	write(t, filepath.Join(root, "src", "a.cs"), "class A { }")
	write(t, filepath.Join(root, "src", "notes.txt"), "")
	write(t, filepath.Join(root, "src", "gen", "g.cs"), "class G { }")
	write(t, filepath.Join(root, "src", ".hidden", "h.cs"), "class H { }")

	m, err := Load(filepath.Join(root, "src", "gen"))
	if err != nil {
		t.Fatal(err)
	}
	if m.Config.Package.Name != "demo" || m.Config.Analysis.Jobs != 3 || !m.Config.Analysis.DiskCache {
		t.Fatalf("config %+v", m.Config)
	}
	if !slices.Equal(m.Unknown, []string{"analysis.colour"}) {
		t.Fatalf("unknown keys %v", m.Unknown)
	}
	files, err := m.Sources()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(root, "src", "a.cs"), filepath.Join(root, "src", "b.cs")}
	if !slices.Equal(files, want) {
		t.Fatalf("sources %v, want %v", files, want)
	}
}

func TestMissingManifest(t *testing.T) {
	if _, err := Load(t.TempDir()); !errors.Is(err, ErrNoManifest) {
		// A semcore.toml above the temp dir would make this test meaningless.
		t.Skipf("err = %v", err)
	}
}

func TestInvalidManifests(t *testing.T) {
	cases := map[string]string{
		"no name":  "[analysis]\njobs = 1\n",
		"negative": "[package]\nname = \"x\"\n[analysis]\njobs = -1\n",
		"syntax":   "[package\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			write(t, path, content)
			if _, err := Decode(path); err == nil {
				t.Fatal("decoded an invalid manifest")
			}
		})
	}
}

func TestCombineDependsOnParts(t *testing.T) {
	var d Digest
	if Combine(d, []byte("v1")) == Combine(d, []byte("v2")) || Combine(d) != Combine(d) {
		t.Fatal("Combine is not a function of its parts")
	}
}
