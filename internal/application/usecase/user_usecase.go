package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes límite de bcrypt; lo que excede no entra en el hash.
const maxPasswordBytes = 72

// UserUseCase aplica reglas de negocio para cuentas de clientes.
type UserUseCase struct {
	repo     repository.UserRepository
	txRunner TxRunner
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia y el runner de transacciones.
func NewUserUseCase(repo repository.UserRepository, txRunner TxRunner) *UserUseCase {
	return &UserUseCase{repo: repo, txRunner: txRunner}
}

// Create crea una cuenta activa: hashea password con bcrypt y asigna el siguiente ID.
// ErrInvalidInput si falta algún campo; ErrEmailAlreadyExists si el email ya está en uso.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	apellido := strings.TrimSpace(in.Apellido)
	email := strings.TrimSpace(in.Email)
	password := in.Credential()
	if nombre == "" || apellido == "" || email == "" || strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: nombre, apellido, email y password son requeridos", domain.ErrInvalidInput)
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Nombre:       nombre,
		Apellido:     apellido,
		Email:        email,
		PasswordHash: hash,
		Activo:       true,
	}
	err = uc.txRunner.Run(ctx, func(_ repository.ProductRepository, users repository.UserRepository, _ repository.SaleRepository) error {
		existing, err := users.FindByEmail(email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		return users.Create(user)
	})
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID. Devuelve (nil, nil) si no existe.
func (uc *UserUseCase) GetByID(id int) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return ToUserResponse(user), nil
}

// FindByEmail devuelve la entidad completa (con credencial) para el login.
func (uc *UserUseCase) FindByEmail(email string) (*entity.User, error) {
	return uc.repo.FindByEmail(email)
}

// List lista todas las cuentas sin credenciales.
func (uc *UserUseCase) List() ([]dto.UserResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUserResponse(u))
	}
	return items, nil
}

// Update aplica una actualización parcial. El ID no cambia nunca.
// ErrUserNotFound si no existe; ErrEmailAlreadyExists si el nuevo email es de otra cuenta.
func (uc *UserUseCase) Update(ctx context.Context, id int, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	for _, f := range []*string{in.Nombre, in.Apellido, in.Email, in.Password} {
		if f != nil && strings.TrimSpace(*f) == "" {
			return nil, fmt.Errorf("%w: los campos enviados no pueden estar vacíos", domain.ErrInvalidInput)
		}
	}
	var newHash string
	if in.Password != nil {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		newHash = hash
	}

	var updated *entity.User
	err := uc.txRunner.Run(ctx, func(_ repository.ProductRepository, users repository.UserRepository, _ repository.SaleRepository) error {
		user, err := users.GetByID(id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		if in.Email != nil {
			email := strings.TrimSpace(*in.Email)
			other, err := users.FindByEmail(email)
			if err != nil {
				return err
			}
			if other != nil && other.ID != user.ID {
				return domain.ErrEmailAlreadyExists
			}
			user.Email = email
		}
		if in.Nombre != nil {
			user.Nombre = strings.TrimSpace(*in.Nombre)
		}
		if in.Apellido != nil {
			user.Apellido = strings.TrimSpace(*in.Apellido)
		}
		if in.Activo != nil {
			user.Activo = *in.Activo
		}
		if newHash != "" {
			user.SetPasswordHash(newHash)
		}
		if err := users.Update(user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToUserResponse(updated), nil
}

// Delete elimina una cuenta solo si ninguna venta la referencia.
// La verificación y el borrado ocurren bajo el mismo lock que la creación de ventas.
func (uc *UserUseCase) Delete(ctx context.Context, id int) error {
	return uc.txRunner.Run(ctx, func(_ repository.ProductRepository, users repository.UserRepository, sales repository.SaleRepository) error {
		hasSales, err := sales.ExistsByUser(id)
		if err != nil {
			return err
		}
		if hasSales {
			return domain.ErrUserHasSales
		}
		user, err := users.GetByID(id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		return users.Delete(id)
	})
}

// hashPassword genera el hash bcrypt. ErrInvalidInput si la contraseña supera los 72 bytes.
func hashPassword(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", fmt.Errorf("%w: password demasiado larga (máximo %d bytes)", domain.ErrInvalidInput, maxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ToUserResponse quita las credenciales de la entidad.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:       u.ID,
		Nombre:   u.Nombre,
		Apellido: u.Apellido,
		Email:    u.Email,
		Activo:   u.Activo,
	}
}
