package driver

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"semcore/internal/diag"
	"semcore/internal/source"
	"semcore/internal/trace"
)

const (
	declSrc = `class Shape { public static int Area(int w, int h) => w * h; }`
	useSrc  = `class Use { int A => Shape.Area(2, "3"); int B => Missing; }`
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func codes(ds []diag.Diagnostic) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Code.ID())
	}
	return out
}

func TestAnalyzeDirAcrossFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{"shape.cs": declSrc, "use.cs": useSrc, "readme.md": "#"})
	var mu sync.Mutex
	seen := map[Status]int{}
	res, err := AnalyzeDir(context.Background(), dir, Options{Jobs: 2, Observer: func(ev Event) {
		mu.Lock()
		seen[ev.Status]++
		mu.Unlock()
	}})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Results) != 2 {
		t.Fatalf("analysed %d files", len(res.Results))
	}
	if got := codes(res.Results[0].Diagnostics); len(got) != 0 {
		t.Fatalf("shape.cs: %v", got)
	}
	want := []string{diag.SemaArgumentMismatch.ID(), diag.SemaNameNotFound.ID()}
	if got := codes(res.Results[1].Diagnostics); !slices.Equal(got, want) {
		t.Fatalf("use.cs: %v, want %v", got, want)
	}
	if !res.HasErrors() {
		t.Fatal("HasErrors missed use.cs")
	}
	if seen[StatusQueued] != 2 || seen[StatusError] != 1 || seen[StatusDone] != 1 {
		t.Fatalf("events %v", seen)
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	dir := writeTree(t, map[string]string{"shape.cs": declSrc, "use.cs": useSrc})
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	paths := []string{filepath.Join(dir, "shape.cs"), filepath.Join(dir, "use.cs")}
	ring := trace.NewRingTracer(256, trace.LevelDetail)
	opts := Options{Cache: cache, Tracer: ring}

	first, err := Analyze(context.Background(), paths, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Analyze(context.Background(), paths, opts)
	if err != nil {
		t.Fatal(err)
	}
	for i := range paths {
		a, b := first.Results[i], second.Results[i]
		if a.Cached || !b.Cached {
			t.Fatalf("%s: cached %v then %v", paths[i], a.Cached, b.Cached)
		}
		if len(a.Diagnostics) != len(b.Diagnostics) {
			t.Fatalf("%s: %v then %v", paths[i], codes(a.Diagnostics), codes(b.Diagnostics))
		}
		for j := range a.Diagnostics {
			x, y := a.Diagnostics[j], b.Diagnostics[j]
			if x.Code != y.Code || x.Message != y.Message || x.Primary != y.Primary || len(x.Notes) != len(y.Notes) {
				t.Fatalf("diagnostic %d differs: %+v vs %+v", j, x, y)
			}
		}
	}
	var hits int
	for _, ev := range ring.Snapshot() {
		if ev.Name == "cache-hit" {
			hits++
		}
	}
	if hits != 2 {
		t.Fatalf("traced %d cache hits", hits)
	}

	// Editing the declaring file invalidates the user's entry too.
	if err := os.WriteFile(paths[0], []byte(`class Shape { public static int Area(int w, string h) => w; }`), 0o600); err != nil {
		t.Fatal(err)
	}
	third, err := Analyze(context.Background(), paths, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Results[1].Cached {
		t.Fatal("use.cs served from a stale entry")
	}
	if got := codes(third.Results[1].Diagnostics); !slices.Equal(got, []string{diag.SemaNameNotFound.ID()}) {
		t.Fatalf("after edit: %v", got)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := cache.Get(fileKey(third.Results[1].File, snapshotDigest([]*source.File{third.Results[0].File, third.Results[1].File}), opts)); ok {
		t.Fatal("entry survived DropAll")
	}
}

func TestLoadReportsMissingFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{"shape.cs": declSrc})
	res, err := Analyze(context.Background(), []string{filepath.Join(dir, "shape.cs"), filepath.Join(dir, "gone.cs")}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := codes(res.Load.Items()); !slices.Equal(got, []string{diag.IOLoadFileError.ID()}) {
		t.Fatalf("load diagnostics %v", got)
	}
	if len(res.Results) != 1 {
		t.Fatalf("analysed %d files", len(res.Results))
	}

	if _, err := Analyze(context.Background(), []string{filepath.Join(dir, "gone.cs")}, Options{}); err == nil {
		t.Fatal("analysing only missing files succeeded")
	}
}

func TestCancelledAnalysis(t *testing.T) {
	dir := writeTree(t, map[string]string{"use.cs": useSrc})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := AnalyzeDir(ctx, dir, Options{}); err == nil {
		t.Fatal("cancelled analysis succeeded")
	}
}

func TestTokenize(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.cs": "class A { }"})
	fs, files, err := Load([]string{filepath.Join(dir, "a.cs")}, diag.NewBag(0), nil)
	if err != nil || fs.Len() != 1 {
		t.Fatal(err)
	}
	res := Tokenize(files[0], 0)
	if len(res.Tokens) != 5 || res.Bag.Len() != 0 {
		t.Fatalf("tokens %v", res.Tokens)
	}
}
