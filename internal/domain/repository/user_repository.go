package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// GetByID y FindByEmail devuelven (nil, nil) cuando no existe.
type UserRepository interface {
	// Create asigna el siguiente ID de la secuencia y persiste.
	Create(user *entity.User) error
	GetByID(id int) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	List() ([]*entity.User, error)
	Delete(id int) error
}
