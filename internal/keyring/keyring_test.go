package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

const testConnStr = "postgres://studylit@localhost:5432/studylit?sslmode=disable"

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("  " + testConnStr + "\n"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != testConnStr {
		t.Errorf("GetConnectionString() = %q, want %q", got, testConnStr)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	for _, v := range []string{"", "   "} {
		if err := SetConnectionString(v); err == nil {
			t.Errorf("SetConnectionString(%q) should return an error", v)
		}
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString(testConnStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestResolveConnectionString(t *testing.T) {
	gokeyring.MockInit()
	_ = DeleteConnectionString()

	if _, _, err := ResolveConnectionString(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound with nothing configured, got %v", err)
	}

	if err := SetConnectionString(testConnStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	tests := []struct {
		name       string
		env        string
		want       string
		wantSource Source
	}{
		{"keyring fallback", "", testConnStr, SourceKeyring},
		{"blank env falls back", "  ", testConnStr, SourceKeyring},
		{"env wins", "host=db dbname=studylit", "host=db dbname=studylit", SourceEnv},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, source, err := ResolveConnectionString(tt.env)
			if err != nil {
				t.Fatalf("ResolveConnectionString() failed: %v", err)
			}
			if got != tt.want || source != tt.wantSource {
				t.Errorf("got (%q, %s), want (%q, %s)", got, source, tt.want, tt.wantSource)
			}
		})
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("IsAvailable() = false, want true in mock mode")
	}
}
