package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage persists uploaded resume files.
type Storage interface {
	// Save stores the file and returns the reference kept on the Application.
	Save(file *multipart.FileHeader) (string, error)
	Delete(path string) error
}

type Config struct {
	BasePath     string
	MaxSize      int64
	AllowedTypes []string
}

// LocalStorage writes files under a base directory on disk.
type LocalStorage struct {
	cfg Config
}

func NewLocalStorage(cfg Config) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.BasePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStorage{cfg: cfg}, nil
}

func (s *LocalStorage) Save(file *multipart.FileHeader) (string, error) {
	if file.Size > s.cfg.MaxSize {
		return "", fmt.Errorf("file exceeds maximum size of %d bytes", s.cfg.MaxSize)
	}
	if !s.allowed(contentTypeOf(file)) {
		return "", fmt.Errorf("file type %q is not allowed", contentTypeOf(file))
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	target := filepath.Join(s.cfg.BasePath, name)

	dst, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("write file: %w", err)
	}

	return name, nil
}

func (s *LocalStorage) Delete(path string) error {
	if path == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.cfg.BasePath, filepath.Base(path)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *LocalStorage) allowed(contentType string) bool {
	for _, t := range s.cfg.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

// extTypes covers clients that upload without a specific part content
// type. The extension decides in that case.
var extTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

func contentTypeOf(file *multipart.FileHeader) string {
	ct := file.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		if mapped, ok := extTypes[strings.ToLower(filepath.Ext(file.Filename))]; ok {
			return mapped
		}
	}
	return ct
}
