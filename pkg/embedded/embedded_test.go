package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

// resetForTest 重置包状态
func resetForTest(t *testing.T) {
	t.Helper()
	initialized = false
	dataFS = nil
	t.Cleanup(func() {
		initialized = false
		dataFS = nil
	})
}

func TestIsInitialized(t *testing.T) {
	resetForTest(t)

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(fstest.MapFS{})
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	Init(nil)
	if IsInitialized() {
		t.Error("Init(nil) should leave the package uninitialized")
	}
}

func TestReadFileNotInitialized(t *testing.T) {
	resetForTest(t)

	_, err := ReadFile("data/scene.yaml")
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
	if _, err := FS(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("FS() should fail before Init(), got %v", err)
	}
}

func TestReadFile(t *testing.T) {
	resetForTest(t)
	Init(fstest.MapFS{
		"data/scene.yaml": &fstest.MapFile{Data: []byte("emitter: {}")},
	})

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"plain", "data/scene.yaml", false},
		{"dot prefix", "./data/scene.yaml", false},
		{"missing", "data/missing.yaml", true},
		{"bad prefix", "assets/scene.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && string(data) != "emitter: {}" {
				t.Errorf("unexpected content %q", data)
			}
		})
	}
}

func TestExists(t *testing.T) {
	resetForTest(t)
	if Exists("data/scene.yaml") {
		t.Error("Exists should be false before Init()")
	}

	Init(fstest.MapFS{"data/scene.yaml": &fstest.MapFile{}})
	if !Exists("data/scene.yaml") {
		t.Error("Expected file to exist")
	}
	if Exists("data/nope.yaml") || Exists("scene.yaml") {
		t.Error("Unexpected match")
	}
}
