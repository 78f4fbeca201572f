package ignore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crudgen/crudgen/ir"
	"github.com/google/go-cmp/cmp"
)

func writeIgnoreFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), IgnoreFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write ignore file: %v", err)
	}
	return path
}

func TestLoadIgnoreFileFromPath(t *testing.T) {
	path := writeIgnoreFile(t, `
[tables]
patterns = ["tmp_*", "!tmp_keep"]

[schemas]
patterns = ["staging"]
`)

	config, err := LoadIgnoreFileFromPath(path)
	if err != nil {
		t.Fatalf("LoadIgnoreFileFromPath failed: %v", err)
	}

	want := &ir.IgnoreConfig{
		Tables:  []string{"tmp_*", "!tmp_keep"},
		Schemas: []string{"staging"},
	}
	if diff := cmp.Diff(want, config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if !config.ShouldIgnoreTable("tmp_import") || config.ShouldIgnoreTable("tmp_keep") {
		t.Error("loaded patterns do not behave as expected")
	}
}

func TestLoadIgnoreFileFromPath_Missing(t *testing.T) {
	config, err := LoadIgnoreFileFromPath(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("missing file should not be an error, got %v", err)
	}
	if config != nil {
		t.Errorf("expected nil config for missing file, got %+v", config)
	}
}

func TestLoadIgnoreFileFromPath_UnknownKey(t *testing.T) {
	path := writeIgnoreFile(t, "[views]\npatterns = [\"v_*\"]\n")

	_, err := LoadIgnoreFileFromPath(path)
	if err == nil || !strings.Contains(err.Error(), "views") {
		t.Errorf("expected unknown key error mentioning views, got %v", err)
	}
}

func TestLoadIgnoreFileFromPath_Malformed(t *testing.T) {
	path := writeIgnoreFile(t, "[tables\npatterns = 1")

	if _, err := LoadIgnoreFileFromPath(path); err == nil {
		t.Error("expected parse error for malformed TOML")
	}
}

func TestMustExist(t *testing.T) {
	if _, err := MustExist(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected error for missing explicit ignore file")
	}

	path := writeIgnoreFile(t, "[tables]\npatterns = [\"a\"]\n")
	config, err := MustExist(path)
	if err != nil {
		t.Fatalf("MustExist failed: %v", err)
	}
	if !config.ShouldIgnoreTable("a") {
		t.Error("expected table a to be ignored")
	}
}
