package cache

import (
    "context"
    "fmt"
    "os"
    "path/filepath"
    "testing"
    "time"
)

func TestReportCache_SaveGet(t *testing.T) {
    tmp := t.TempDir()
    c := &ReportCache{Dir: tmp}
    key := KeyFrom([]byte("npc.a=Hello there."), "min_words=15")
    data := []byte(`{"outcome":"scored"}`)
    if err := c.Save(context.Background(), key, data); err != nil {
        t.Fatalf("save: %v", err)
    }
    got, ok, err := c.Get(context.Background(), key)
    if err != nil || !ok {
        t.Fatalf("get: %v ok=%v", err, ok)
    }
    if string(got) != string(data) {
        t.Fatalf("mismatch")
    }
    if _, ok, _ := c.Get(context.Background(), KeyFrom([]byte("npc.a=Hello there."), "min_words=20")); ok {
        t.Fatalf("different settings must miss")
    }
}

func TestReportCache_NotConfigured(t *testing.T) {
    var c *ReportCache
    if _, _, err := c.Get(context.Background(), "k"); err == nil {
        t.Fatalf("expected error for nil cache")
    }
}

func TestReportCache_StrictPerms(t *testing.T) {
    t.Parallel()
    dir := filepath.Join(t.TempDir(), "reports")
    c := &ReportCache{Dir: dir, StrictPerms: true}
    key := KeyFrom([]byte("x"), "")
    if err := c.Save(context.Background(), key, []byte(`{}`)); err != nil {
        t.Fatalf("save: %v", err)
    }
    info, err := os.Stat(dir)
    if err != nil {
        t.Fatalf("stat dir: %v", err)
    }
    if got := info.Mode() & 0o777; got != 0o700 {
        t.Fatalf("dir mode = %o, want 0700", got)
    }
    finfo, err := os.Stat(filepath.Join(dir, key+".json"))
    if err != nil {
        t.Fatalf("stat file: %v", err)
    }
    if got := finfo.Mode() & 0o777; got != 0o600 {
        t.Fatalf("file mode = %o, want 0600", got)
    }
}

func TestEnforceLimits_EvictsLeastRecentlyUsed(t *testing.T) {
    tmp := t.TempDir()
    c := &ReportCache{Dir: tmp}
    keys := []string{KeyFrom([]byte("1"), ""), KeyFrom([]byte("2"), ""), KeyFrom([]byte("3"), "")}
    base := time.Now().Add(-time.Hour)
    for i, k := range keys {
        if err := c.Save(context.Background(), k, []byte(fmt.Sprintf("%d", i))); err != nil {
            t.Fatalf("save %d: %v", i, err)
        }
        mt := base.Add(time.Duration(i) * time.Minute)
        _ = os.Chtimes(filepath.Join(tmp, k+".json"), mt, mt)
    }
    if _, ok, _ := c.Get(context.Background(), keys[0]); !ok {
        t.Fatal("expected hit")
    }
    removed, err := EnforceLimits(tmp, 0, 2)
    if err != nil {
        t.Fatalf("enforce: %v", err)
    }
    if removed != 1 {
        t.Fatalf("expected 1 removed, got %d", removed)
    }
    if _, err := os.Stat(filepath.Join(tmp, keys[1]+".json")); !os.IsNotExist(err) {
        t.Fatalf("expected least recently used entry evicted")
    }
}

func TestPurgeByAge(t *testing.T) {
    tmp := t.TempDir()
    old := filepath.Join(tmp, "old.json")
    fresh := filepath.Join(tmp, "fresh.json")
    for _, p := range []string{old, fresh} {
        if err := os.WriteFile(p, []byte("{}"), 0o644); err != nil {
            t.Fatal(err)
        }
    }
    past := time.Now().Add(-48 * time.Hour)
    _ = os.Chtimes(old, past, past)
    n, err := PurgeByAge(tmp, 24*time.Hour)
    if err != nil || n != 1 {
        t.Fatalf("purge: n=%d err=%v", n, err)
    }
    if _, err := os.Stat(fresh); err != nil {
        t.Fatalf("fresh entry removed: %v", err)
    }
}

func TestClearDir(t *testing.T) {
    tmp := filepath.Join(t.TempDir(), "c")
    if err := os.MkdirAll(tmp, 0o755); err != nil {
        t.Fatal(err)
    }
    _ = os.WriteFile(filepath.Join(tmp, "a.json"), []byte("{}"), 0o644)
    if err := ClearDir(tmp); err != nil {
        t.Fatal(err)
    }
    entries, _ := os.ReadDir(tmp)
    if len(entries) != 0 {
        t.Fatalf("expected empty dir, got %d entries", len(entries))
    }
    if err := ClearDir("  "); err == nil {
        t.Fatalf("expected error for blank dir")
    }
}
