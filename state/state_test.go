package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStateOperations(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("STAFFDESK_HOME", tmpDir)

	t.Run("Load empty state", func(t *testing.T) {
		state, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if state == nil {
			t.Fatal("Load() returned nil state")
		}
		if len(state) != 0 {
			t.Errorf("Load() returned non-empty state: %v", state)
		}
	})

	t.Run("Set and Get string value", func(t *testing.T) {
		key := "test.key"
		value := "test-value"

		if err := Set(key, value); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := GetString(key)
		if err != nil {
			t.Fatalf("GetString() error = %v", err)
		}
		if got != value {
			t.Errorf("GetString() = %v, want %v", got, value)
		}
	})

	t.Run("Get with generic Get function", func(t *testing.T) {
		key := "test.another"
		value := "another-value"

		if err := Set(key, value); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, ok, err := Get(key)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if !ok {
			t.Fatal("Get() reported key missing")
		}
		if got != value {
			t.Errorf("Get() = %v, want %v", got, value)
		}
	})

	t.Run("Delete removes key", func(t *testing.T) {
		key := "test.delete"
		if err := Set(key, "x"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if err := Delete(key); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		_, ok, err := Get(key)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if ok {
			t.Error("Delete() did not remove key")
		}
	})

	t.Run("State file is user-private", func(t *testing.T) {
		if err := Set("perm.check", "v"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		info, err := os.Stat(filepath.Join(tmpDir, "state.yml"))
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("state file mode = %v, want 0600", info.Mode().Perm())
		}
	})
}

func TestCredentialsRoundTrip(t *testing.T) {
	t.Setenv("STAFFDESK_HOME", t.TempDir())

	creds := Credentials{User: "alice", Token: "tok1", Role: "admin"}
	if err := SaveCredentials(creds); err != nil {
		t.Fatalf("SaveCredentials() error = %v", err)
	}

	got, err := LoadCredentials()
	if err != nil {
		t.Fatalf("LoadCredentials() error = %v", err)
	}
	if got != creds {
		t.Errorf("LoadCredentials() = %+v, want %+v", got, creds)
	}

	if err := ClearCredentials(); err != nil {
		t.Fatalf("ClearCredentials() error = %v", err)
	}

	got, err = LoadCredentials()
	if err != nil {
		t.Fatalf("LoadCredentials() after clear error = %v", err)
	}
	if got != (Credentials{}) {
		t.Errorf("LoadCredentials() after clear = %+v, want zero", got)
	}
}

func TestLoadCredentialsMissingFile(t *testing.T) {
	t.Setenv("STAFFDESK_HOME", t.TempDir())

	got, err := LoadCredentials()
	if err != nil {
		t.Fatalf("LoadCredentials() error = %v", err)
	}
	if got != (Credentials{}) {
		t.Errorf("LoadCredentials() = %+v, want zero", got)
	}
}
