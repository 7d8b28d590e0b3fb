package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Festongithub/onesoko-storefront/internal/domain"
)

// FileRepository keeps one JSON snapshot per owner under a state
// directory. Writes are atomic (temp file + rename) so a crash mid-write
// never leaves a half-written snapshot behind.
type FileRepository struct {
	dir string
}

func NewFileRepository(dir string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileRepository{dir: dir}, nil
}

func (r *FileRepository) Load(_ context.Context, ownerID string) (domain.Cart, error) {
	data, err := os.ReadFile(r.path(ownerID))
	if os.IsNotExist(err) {
		return domain.Cart{}, ErrCartNotFound
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("read snapshot: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("parse snapshot: %w", err)
	}
	return cart, nil
}

func (r *FileRepository) Save(_ context.Context, cart domain.Cart) error {
	data, err := json.MarshalIndent(cart, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	path := r.path(cart.OwnerID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (r *FileRepository) Delete(_ context.Context, ownerID string) error {
	err := os.Remove(r.path(ownerID))
	if os.IsNotExist(err) {
		return ErrCartNotFound
	}
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

var fileNameSanitizer = strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")

func (r *FileRepository) path(ownerID string) string {
	return filepath.Join(r.dir, "cart-"+fileNameSanitizer.Replace(ownerID)+".json")
}
