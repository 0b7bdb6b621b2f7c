package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
)

// FileName is the document name for an export taken at now.
func FileName(kind Kind, now time.Time) string {
	return fmt.Sprintf("ExpenseTracker_%s.%s", now.Format(time.DateOnly), kind.Extension())
}

// WriteFile formats expenses and stores them in dir under FileName. The
// document is written to a temporary file first and renamed into place, so
// a failed export never leaves a partial file behind. It returns the final
// path.
func WriteFile(dir string, expenses []models.Expense, kind Kind, loc *time.Location, now time.Time) (string, error) {
	content, err := Format(expenses, kind, loc)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperrors.Wrap(apperrors.ErrExportFailed, fmt.Errorf("create export dir: %w", err))
	}

	path := filepath.Join(dir, FileName(kind, now.In(locOrLocal(loc))))
	if err := writeAtomic(path, content); err != nil {
		return "", apperrors.Wrap(apperrors.ErrExportFailed, err)
	}
	return path, nil
}

func writeAtomic(path string, content []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename export file: %w", err)
	}
	return nil
}

func locOrLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
