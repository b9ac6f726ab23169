package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidFilename = errors.New("invalid file name")
	ErrFileNotFound    = errors.New("file not found")
)

var reportNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*(\.[A-Za-z0-9_-]+)*\.pdf$`)

type StorageService interface {
	EnsureOutputDir() error
	ReportName(evalID uuid.UUID) string
	// ResolveFile maps a client supplied name to a readable file inside the
	// output directory.
	ResolveFile(filename string) (string, error)
	GetFilePath(filename string) string
	// SaveReference stores an uploaded reference answer PDF outside the
	// publicly served directory and returns its path.
	SaveReference(file *multipart.FileHeader) (string, error)
}

type storageService struct {
	outputPath string
}

func NewStorageService(outputPath string) StorageService {
	if abs, err := filepath.Abs(outputPath); err == nil {
		outputPath = abs
	}
	return &storageService{
		outputPath: outputPath,
	}
}

func (s *storageService) EnsureOutputDir() error {
	if err := os.MkdirAll(s.outputPath, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.MkdirAll(s.referencePath(), 0755); err != nil {
		return fmt.Errorf("failed to create reference directory: %w", err)
	}

	return nil
}

func (s *storageService) referencePath() string {
	return filepath.Join(s.outputPath, "references")
}

func (s *storageService) ReportName(evalID uuid.UUID) string {
	return fmt.Sprintf("candidate_answer_%s.pdf", evalID.String())
}

func (s *storageService) ResolveFile(filename string) (string, error) {
	if filename == "" ||
		strings.ContainsAny(filename, `/\`) ||
		strings.Contains(filename, "..") ||
		!reportNamePattern.MatchString(filename) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}

	path := s.GetFilePath(filename)
	rel, err := filepath.Rel(s.outputPath, path)
	if err != nil || rel != filename {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}

	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, filename)
		}
		return "", fmt.Errorf("failed to stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, filename)
	}

	return path, nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.outputPath, filename)
}

func (s *storageService) SaveReference(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return "", fmt.Errorf("%w: extension %q, only .pdf is accepted", ErrInvalidFilename, ext)
	}

	filePath := filepath.Join(s.referencePath(), fmt.Sprintf("reference_%s%s", uuid.New().String(), ext))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return filePath, nil
}
