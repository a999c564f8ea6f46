// Package filestore persiste las colecciones de la tienda como arreglos JSON en archivos planos.
//
// Cada colección es un archivo (productos.json, usuarios.json, ventas.json) dentro del
// directorio de datos. Un archivo ausente es una colección vacía. Las escrituras son
// atómicas (archivo temporal + rename) y se serializan con un único lock por Store.
package filestore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Nombres de las colecciones (archivo = nombre + ".json").
const (
	CollectionProductos = "productos"
	CollectionUsuarios  = "usuarios"
	CollectionVentas    = "ventas"

	sequencesFile = "secuencias"
)

// Querier es el acceso a las colecciones: lo implementan *Store (toma el lock en cada
// operación) y *Tx (el lock ya lo tiene el TxRunner).
type Querier interface {
	view(fn func(dir string) error) error
	update(fn func(dir string) error) error
}

// Store agrupa las colecciones de un directorio de datos.
type Store struct {
	dir string
	mu  sync.RWMutex
	log zerolog.Logger
}

// NewStore crea el directorio de datos si no existe.
func NewStore(dir string, log zerolog.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("filestore: directorio de datos vacío")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: crear %s: %w", dir, err)
	}
	return &Store{dir: dir, log: log}, nil
}

// Dir devuelve el directorio de datos.
func (s *Store) Dir() string { return s.dir }

// Path devuelve la ruta del archivo de una colección.
func (s *Store) Path(name string) string { return collectionPath(s.dir, name) }

func (s *Store) view(fn func(dir string) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.dir)
}

func (s *Store) update(fn func(dir string) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.dir); err != nil {
		return err
	}
	s.log.Debug().Str("dir", s.dir).Msg("filestore: escritura confirmada")
	return nil
}

// Tx es el acceso dentro de TxRunner.Run. No debe usarse después de que Run retorne.
type Tx struct {
	dir string
}

func (t *Tx) view(fn func(dir string) error) error   { return fn(t.dir) }
func (t *Tx) update(fn func(dir string) error) error { return fn(t.dir) }

// Load lee una colección completa. Un archivo ausente o vacío devuelve una colección vacía.
func Load[T any](s *Store, name string) ([]T, error) {
	var out []T
	err := s.view(func(dir string) error {
		var err error
		out, err = readCollection[T](dir, name)
		return err
	})
	return out, err
}

// Save reemplaza una colección completa de forma atómica.
func Save[T any](s *Store, name string, records []T) error {
	return s.update(func(dir string) error {
		return writeCollection(dir, name, records)
	})
}

func collectionPath(dir, name string) string {
	return filepath.Join(dir, name+".json")
}

func readCollection[T any](dir, name string) ([]T, error) {
	data, err := os.ReadFile(collectionPath(dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("leer %s.json: %w", name, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decodificar %s.json: %w", name, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func writeCollection[T any](dir, name string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("codificar %s.json: %w", name, err)
	}
	return writeAtomic(collectionPath(dir, name), data)
}

// writeAtomic escribe en un temporal del mismo directorio y lo renombra sobre el destino.
func writeAtomic(path string, data []byte) error {
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("crear temporal para %s: %w", filepath.Base(path), err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("escribir %s: %w", filepath.Base(path), err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cerrar %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renombrar %s: %w", filepath.Base(path), err)
	}
	return nil
}
