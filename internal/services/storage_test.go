package services

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func newTestStorage(t *testing.T) (StorageService, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "outputs")
	s := NewStorageService(dir)
	if err := s.EnsureOutputDir(); err != nil {
		t.Fatalf("EnsureOutputDir: %v", err)
	}
	return s, dir
}

func TestReportNameIsPerEvaluation(t *testing.T) {
	s, _ := newTestStorage(t)
	a, b := uuid.New(), uuid.New()

	nameA := s.ReportName(a)
	if nameA != "candidate_answer_"+a.String()+".pdf" {
		t.Fatalf("unexpected report name %s", nameA)
	}
	if nameA == s.ReportName(b) {
		t.Fatalf("two evaluations share the report name %s", nameA)
	}
}

func TestResolveFile(t *testing.T) {
	s, dir := newTestStorage(t)
	name := s.ReportName(uuid.New())
	if err := os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.3"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	path, err := s.ResolveFile(name)
	if err != nil {
		t.Fatalf("ResolveFile: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("resolved outside the output directory: %s", path)
	}
}

func TestResolveFileRejectsTraversal(t *testing.T) {
	s, dir := newTestStorage(t)
	secret := filepath.Join(filepath.Dir(dir), "secret.pdf")
	if err := os.WriteFile(secret, []byte("secret"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	for _, name := range []string{
		"../secret.pdf",
		"..",
		"..%2Fsecret.pdf",
		"references/../../secret.pdf",
		`..\secret.pdf`,
		"/etc/passwd",
		"go.mod",
		".env",
		"...pdf",
		"",
	} {
		_, err := s.ResolveFile(name)
		if !errors.Is(err, ErrInvalidFilename) {
			t.Errorf("ResolveFile(%q) = %v, want ErrInvalidFilename", name, err)
		}
	}
}

func TestResolveFileMissing(t *testing.T) {
	s, _ := newTestStorage(t)
	if _, err := s.ResolveFile("candidate_answer_missing.pdf"); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestResolveFileRejectsDirectories(t *testing.T) {
	s, dir := newTestStorage(t)
	if err := os.Mkdir(filepath.Join(dir, "folder.pdf"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := s.ResolveFile("folder.pdf"); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound for a directory, got %v", err)
	}
}

func TestReferencesAreNotServed(t *testing.T) {
	s, dir := newTestStorage(t)
	ref := filepath.Join(dir, "references", "reference_x.pdf")
	if err := os.WriteFile(ref, []byte("%PDF"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := s.ResolveFile("references/reference_x.pdf"); err == nil {
		t.Fatalf("reference uploads must not be reachable")
	}
	if !strings.HasPrefix(ref, dir) {
		t.Fatalf("reference path %s not under %s", ref, dir)
	}
}
