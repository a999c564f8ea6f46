package filestore

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre usuarios.json.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create asigna el siguiente ID y agrega el usuario al final de la colección.
func (r *UserRepo) Create(user *entity.User) error {
	err := r.q.update(func(dir string) error {
		raws, err := readCollection[json.RawMessage](dir, CollectionUsuarios)
		if err != nil {
			return err
		}
		highest, err := maxID(CollectionUsuarios, raws)
		if err != nil {
			return err
		}
		id, err := nextID(dir, CollectionUsuarios, highest)
		if err != nil {
			return err
		}
		user.ID = id
		raw, err := json.Marshal(userRecordFrom(user))
		if err != nil {
			return err
		}
		return writeCollection(dir, CollectionUsuarios, append(raws, raw))
	})
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id int) (*entity.User, error) {
	return r.find(func(u userRecord) bool { return u.ID == id })
}

// FindByEmail busca por email sin distinguir mayúsculas.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, nil
	}
	return r.find(func(u userRecord) bool { return strings.EqualFold(strings.TrimSpace(u.Email), email) })
}

func (r *UserRepo) find(match func(userRecord) bool) (*entity.User, error) {
	var found *entity.User
	err := r.q.view(func(dir string) error {
		recs, err := readCollection[userRecord](dir, CollectionUsuarios)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			if match(rec) {
				found = rec.toEntity()
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return found, nil
}

// Update reescribe el registro del usuario conservando los campos desconocidos del archivo.
func (r *UserRepo) Update(user *entity.User) error {
	err := r.q.update(func(dir string) error {
		raws, err := readCollection[json.RawMessage](dir, CollectionUsuarios)
		if err != nil {
			return err
		}
		idx, err := indexOfID(CollectionUsuarios, raws, user.ID)
		if err != nil {
			return err
		}
		if idx < 0 {
			return domain.ErrUserNotFound
		}
		var drop []string
		if user.PasswordHash == "" {
			drop = append(drop, "passwordHash")
		}
		if user.Contrasena == "" {
			drop = append(drop, "contrasena")
		}
		merged, err := mergeRecord(raws[idx], userRecordFrom(user), drop...)
		if err != nil {
			return fmt.Errorf("%s.json: registro %d: %w", CollectionUsuarios, idx, err)
		}
		raws[idx] = merged
		return writeCollection(dir, CollectionUsuarios, raws)
	})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// List devuelve los usuarios en el orden del archivo.
func (r *UserRepo) List() ([]*entity.User, error) {
	var list []*entity.User
	err := r.q.view(func(dir string) error {
		recs, err := readCollection[userRecord](dir, CollectionUsuarios)
		if err != nil {
			return err
		}
		list = make([]*entity.User, 0, len(recs))
		for _, rec := range recs {
			list = append(list, rec.toEntity())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return list, nil
}

// Delete elimina un usuario por ID. Devuelve ErrUserNotFound si no existe.
func (r *UserRepo) Delete(id int) error {
	err := r.q.update(func(dir string) error {
		raws, err := readCollection[json.RawMessage](dir, CollectionUsuarios)
		if err != nil {
			return err
		}
		idx, err := indexOfID(CollectionUsuarios, raws, id)
		if err != nil {
			return err
		}
		if idx < 0 {
			return domain.ErrUserNotFound
		}
		kept := append(raws[:idx:idx], raws[idx+1:]...)
		return writeCollection(dir, CollectionUsuarios, kept)
	})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
