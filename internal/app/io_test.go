package app

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestReadCipherTextReadsFirstLineOnly(t *testing.T) {
	path := writeTempFile(t, "encrypted_msg.txt", "ABCDEFGHIJKLMNOP\nignored second line\n")
	got, err := readCipherText(path)
	if err != nil {
		t.Fatalf("readCipherText: %v", err)
	}
	if got != "ABCDEFGHIJKLMNOP" {
		t.Fatalf("got %q", got)
	}
}

func TestReadExpectedClearTextStripsAndUppercases(t *testing.T) {
	path := writeTempFile(t, "decrypted_msg.txt", "Attack at dawn!\n")
	got, err := readExpectedClearText(path)
	if err != nil {
		t.Fatalf("readExpectedClearText: %v", err)
	}
	if got != "ATTACKATDAWN" {
		t.Fatalf("got %q, want ATTACKATDAWN", got)
	}
}

func TestReadFirstLineRejectsEmptyFile(t *testing.T) {
	path := writeTempFile(t, "empty.txt", "")
	if _, err := readFirstLine(path); err == nil {
		t.Fatal("readFirstLine on empty file: got nil error, want one")
	}
}

func TestReadFirstLineRejectsMissingFile(t *testing.T) {
	if _, err := readFirstLine(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("readFirstLine on missing file: got nil error, want one")
	}
}
