package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	args = append([]string{"-env-file", filepath.Join(t.TempDir(), "missing.env")}, args...)
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_WritesDocument(t *testing.T) {
	dir := t.TempDir()
	code, stdout, stderr := runCLI(t,
		"-output", dir,
		"-format", "text",
		"-name", "John Doe",
		"-email", "john@doe.com",
		"-phone", "1234567890",
		"-description", `Line one\nLine two`,
	)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}

	path := filepath.Join(dir, "user-details.txt")
	if !strings.Contains(stdout, "Saved "+path) {
		t.Fatalf("unexpected stdout %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, "user-details.pdf")); !os.IsNotExist(err) {
		t.Fatalf("text output must not be saved with a .pdf extension")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, want := range []string{"Name: John Doe", "Phone: 1234567890", "Line one", "Line two"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("expected %q in %q", want, data)
		}
	}
}

func TestRun_PinnedPhoneLabel(t *testing.T) {
	dir := t.TempDir()
	code, _, stderr := runCLI(t,
		"-output", dir,
		"-format", "text",
		"-phone-label", "Phone Number",
		"-name", "John Doe",
		"-email", "john@doe.com",
		"-phone", "1234567890",
	)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	data, err := os.ReadFile(filepath.Join(dir, "user-details.txt"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "Phone Number: 1234567890") {
		t.Fatalf("expected pinned label in %q", data)
	}
}

func TestRun_ReportsEveryInvalidField(t *testing.T) {
	dir := t.TempDir()
	code, _, stderr := runCLI(t, "-output", dir, "-email", "bad", "-phone", "123")
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	want := "name: Name is required\nemail: Invalid email format\nphone: Phone number must be at least 10 digits\n"
	if stderr != want {
		t.Fatalf("stderr = %q, want %q", stderr, want)
	}
	if _, err := os.Stat(filepath.Join(dir, "user-details.pdf")); !os.IsNotExist(err) {
		t.Fatalf("no document should be written on validation failure")
	}
}

func TestRun_UnknownFormat(t *testing.T) {
	code, _, stderr := runCLI(t, "-format", "docx", "-name", "x")
	if code != 1 || !strings.Contains(stderr, `renderer "docx" not found`) {
		t.Fatalf("unexpected result %d %q", code, stderr)
	}
}

func TestUnescapeNewlines(t *testing.T) {
	if got := unescapeNewlines(`a\nb\\c\`); got != "a\nb\\\\c\\" {
		t.Fatalf("unexpected %q", got)
	}
}
