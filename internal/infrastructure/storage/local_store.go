// Package storage implementa el puerto DocumentStore: PDFs organizados en
// carpetas de período bajo una raíz. Dos backends: filesystem local (afero)
// y Azure Blob Storage.
package storage

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/spf13/afero"

	apppayrun "github.com/jhoicas/Avisos-pago-api/internal/application/payrun"
)

var _ apppayrun.DocumentStore = (*LocalStore)(nil)

// LocalStore almacenamiento en filesystem local bajo una carpeta raíz.
type LocalStore struct {
	fs afero.Fs
}

// NewLocalStore construye el store sobre el filesystem real, enjaulado en root.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear raíz %s: %w", root, err)
	}
	return &LocalStore{fs: afero.NewBasePathFs(afero.NewOsFs(), root)}, nil
}

// NewLocalStoreWithFs construye el store sobre un afero.Fs arbitrario
// (en tests, afero.NewMemMapFs).
func NewLocalStoreWithFs(fs afero.Fs) *LocalStore {
	return &LocalStore{fs: fs}
}

// Write guarda el documento, creando la carpeta del período si no existe.
func (s *LocalStore) Write(_ context.Context, folder, name string, data []byte) error {
	if err := s.fs.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("storage: crear carpeta %s: %w", folder, err)
	}
	p := path.Join(folder, name)
	if err := afero.WriteFile(s.fs, p, data, 0o644); err != nil {
		return fmt.Errorf("storage: escribir %s: %w", p, err)
	}
	return nil
}

// Exists indica si el documento existe con ese nombre exacto.
func (s *LocalStore) Exists(_ context.Context, folder, name string) (bool, error) {
	ok, err := afero.Exists(s.fs, path.Join(folder, name))
	if err != nil {
		return false, fmt.Errorf("storage: verificar %s/%s: %w", folder, name, err)
	}
	return ok, nil
}

// Read devuelve los bytes del documento.
func (s *LocalStore) Read(_ context.Context, folder, name string) ([]byte, error) {
	p := path.Join(folder, name)
	data, err := afero.ReadFile(s.fs, p)
	if err != nil {
		return nil, fmt.Errorf("storage: leer %s: %w", p, err)
	}
	return data, nil
}
