package persist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	if _, err := Open("/nonexistent/dir/persist.db"); err == nil {
		t.Error("expected error for invalid path, got nil")
	}
}

func TestPutGet_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put("persist.sys.locale", "en-US"); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	value, found, err := s.Get("persist.sys.locale")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !found {
		t.Fatal("Get() reported absent after Put()")
	}
	if value != "en-US" {
		t.Errorf("Get() = %q, want %q", value, "en-US")
	}
}

func TestPut_Overwrites(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put("persist.sys.tz", "UTC"); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := s.Put("persist.sys.tz", "America/Toronto"); err != nil {
		t.Fatalf("second Put() failed: %v", err)
	}

	value, _, err := s.Get("persist.sys.tz")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if value != "America/Toronto" {
		t.Errorf("Get() = %q after overwrite", value)
	}
}

func TestGet_MissingIsNotAnError(t *testing.T) {
	s := openTestStore(t)

	value, found, err := s.Get("persist.sys.none")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if found || value != "" {
		t.Errorf("Get() = %q, %v; want \"\", false", value, found)
	}
}

func TestGet_EmptyValueIsFound(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put("persist.sys.empty", ""); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	value, found, err := s.Get("persist.sys.empty")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !found || value != "" {
		t.Errorf("Get() = %q, %v; want \"\", true", value, found)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put("persist.sys.gone", "v"); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	removed, err := s.Delete("persist.sys.gone")
	if err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if !removed {
		t.Error("Delete() should report an entry was removed")
	}

	removed, err = s.Delete("persist.sys.gone")
	if err != nil {
		t.Fatalf("second Delete() failed: %v", err)
	}
	if removed {
		t.Error("Delete() on a missing name should report false")
	}
}

func TestForeach_OrderedByName(t *testing.T) {
	s := openTestStore(t)

	pairs := map[string]string{
		"persist.sys.timezone": "UTC",
		"persist.radio.mode":   "lte",
		"persist.sys.locale":   "en-US",
	}
	for name, value := range pairs {
		if err := s.Put(name, value); err != nil {
			t.Fatalf("Put(%s) failed: %v", name, err)
		}
	}

	var names []string
	err := s.Foreach(func(name, value string) {
		names = append(names, name)
		if pairs[name] != value {
			t.Errorf("Foreach delivered %s=%q, want %q", name, value, pairs[name])
		}
	})
	if err != nil {
		t.Fatalf("Foreach() failed: %v", err)
	}

	want := []string{"persist.radio.mode", "persist.sys.locale", "persist.sys.timezone"}
	if len(names) != len(want) {
		t.Fatalf("Foreach visited %d entries, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestClose_NilDB(t *testing.T) {
	s := &Store{db: nil}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on nil db should not error: %v", err)
	}
}

func TestReopen_KeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := s1.Put("persist.sys.locale", "en-US"); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	value, found, err := s2.Get("persist.sys.locale")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !found || value != "en-US" {
		t.Errorf("Get() = %q, %v after reopen", value, found)
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "persist.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
