// Package upload stores files sent to the upload endpoint on local disk.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabinete-digital/gabinete-api/internal/config"
	"github.com/gabinete-digital/gabinete-api/internal/platform/logger"
	"github.com/gabinete-digital/gabinete-api/internal/sanitize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// sniffLen is how much of the content is read for type detection.
const sniffLen = 3072

var (
	// ErrTypeNotAllowed is returned when the detected MIME type is not allowed.
	ErrTypeNotAllowed = errors.New("file type not allowed")
	// ErrTooLarge is returned when the content exceeds the size limit.
	ErrTooLarge = errors.New("file exceeds the size limit")
	// ErrExists is returned instead of overwriting a stored file.
	ErrExists = errors.New("file already exists in the directory")
	// ErrNotFound is returned by Delete for a missing file.
	ErrNotFound = errors.New("file not found")
)

// Result describes a stored file.
type Result struct {
	Name       string // generated file name
	Path       string // location on disk
	PublicPath string // path served to clients
	MIME       string
	Size       int64
}

// Uploader writes files into one directory.
type Uploader struct {
	dir          string
	publicPrefix string
	maxBytes     int64
	maxSizeMB    int64
	allowed      []string
	newName      func() string
}

// New returns an Uploader for cfg.
func New(cfg config.UploadConfig) *Uploader {
	allowed := cfg.AllowedTypes
	if len(allowed) == 0 {
		allowed = config.DefaultAllowedUploadTypes
	}
	return &Uploader{
		dir:          cfg.Dir,
		publicPrefix: strings.TrimSuffix(cfg.PublicPrefix, "/"),
		maxBytes:     cfg.MaxSizeMB * 1024 * 1024,
		maxSizeMB:    cfg.MaxSizeMB,
		allowed:      allowed,
		newName:      func() string { return "file_" + uuid.NewString() },
	}
}

// MaxBytes is the largest accepted file.
func (u *Uploader) MaxBytes() int64 {
	return u.maxBytes
}

// Save detects the content type of r, checks it and its size, and writes it
// under a generated name. originalName only contributes the extension.
func (u *Uploader) Save(ctx context.Context, r io.Reader, originalName string) (*Result, error) {
	log := logger.FromContext(ctx)

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	if !u.typeAllowed(detected) {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotAllowed, detected.String())
	}

	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create the destination directory: %w", err)
	}

	name := u.newName() + extension(originalName, detected)
	dest := filepath.Join(u.dir, name)

	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, ErrExists
		}
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	content := io.MultiReader(bytes.NewReader(head), r)
	written, err := io.Copy(f, io.LimitReader(content, u.maxBytes+1))
	closeErr := f.Close()
	if err == nil && written > u.maxBytes {
		err = fmt.Errorf("%w of %d MB", ErrTooLarge, u.maxSizeMB)
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		if rmErr := os.Remove(dest); rmErr != nil {
			log.Warn("failed to remove partial upload", slog.String("file", name), slog.String("error", rmErr.Error()))
		}
		return nil, err
	}

	mime, _, _ := strings.Cut(detected.String(), ";")
	log.Info("file uploaded", slog.String("file", name), slog.String("mime", mime), slog.Int64("size", written))

	return &Result{
		Name:       name,
		Path:       dest,
		PublicPath: u.publicPrefix + "/" + name,
		MIME:       mime,
		Size:       written,
	}, nil
}

// Delete removes a stored file given its public path or bare name.
func (u *Uploader) Delete(ctx context.Context, publicPath string) error {
	name := sanitize.Filename(path.Base(strings.TrimPrefix(publicPath, u.publicPrefix)))
	if name == "" || name == "." || name == ".." {
		return ErrNotFound
	}

	if err := os.Remove(filepath.Join(u.dir, name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete the file: %w", err)
	}

	logger.FromContext(ctx).Info("file deleted", slog.String("file", name))
	return nil
}

func (u *Uploader) typeAllowed(detected *mimetype.MIME) bool {
	for m := detected; m != nil; m = m.Parent() {
		for _, allowed := range u.allowed {
			if m.Is(allowed) {
				return true
			}
		}
	}
	return false
}

// extension keeps the client's extension only when it names the detected
// type or one of its parents; otherwise the detected extension is used.
func extension(originalName string, detected *mimetype.MIME) string {
	ext := strings.ToLower(filepath.Ext(sanitize.Filename(originalName)))
	for m := detected; m != nil && ext != ""; m = m.Parent() {
		if m.Extension() == ext {
			return ext
		}
	}
	return detected.Extension()
}
