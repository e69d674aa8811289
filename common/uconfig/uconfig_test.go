/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package uconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestApplyPrecedence(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	data := "PORT=4000\nGEMINI_MODEL=from-file\n# comment\nDEBUG=true\n"
	if err := os.WriteFile(envFile, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	c, err := New(
		WithLookup(mapLookup(map[string]string{"PORT": "5000"})),
		WithFind([]string{filepath.Join(dir, "missing.env"), envFile}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(c.Files()) != 1 {
		t.Fatalf("Files() = %v, want one file", c.Files())
	}

	set := c.NewSet("server")
	set.SetConstraint("PORT", 1, 65535, 3000)
	set.SetConstraint("GEMINI_MODEL", 0, 0, "default-model")
	set.SetConstraint("DEBUG", 0, 0, false)
	set.SetConstraint("UNSET", 0, 0, "fallback")
	c.Apply()

	if got := set.Get("PORT").Int(); got != 5000 {
		t.Errorf("PORT = %d, want 5000 (process env wins)", got)
	}
	if got := set.Get("GEMINI_MODEL").String(); got != "from-file" {
		t.Errorf("GEMINI_MODEL = %q, want from-file", got)
	}
	if !set.Get("DEBUG").Bool() {
		t.Errorf("DEBUG = false, want true")
	}
	if got := set.Get("UNSET").String(); got != "fallback" {
		t.Errorf("UNSET = %q, want fallback", got)
	}
}

func TestConstraintFallsBackToDefault(t *testing.T) {
	c, err := New(WithLookup(mapLookup(map[string]string{"PORT": "70000"})))
	if err != nil {
		t.Fatal(err)
	}
	set := c.NewSet("server")
	set.SetConstraint("PORT", 1, 65535, 3000)
	c.Apply()

	if got := set.Get("PORT").Int(); got != 3000 {
		t.Errorf("PORT = %d, want default 3000", got)
	}
}

func TestWithEnvFileMissing(t *testing.T) {
	_, err := New(WithEnvFile(filepath.Join(t.TempDir(), "nope.env")))
	if err == nil {
		t.Fatal("expected error for missing env file")
	}
}
