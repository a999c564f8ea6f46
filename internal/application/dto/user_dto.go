package dto

// CreateUserRequest entrada para crear una cuenta (password en texto, se hashea en el use case).
// Se acepta "contrasena" como alias de "password" por compatibilidad con el front-end anterior.
type CreateUserRequest struct {
	Nombre     string `json:"nombre"`
	Apellido   string `json:"apellido"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Contrasena string `json:"contrasena,omitempty"`
}

// Credential devuelve la contraseña enviada, sea cual sea el nombre del campo.
func (r CreateUserRequest) Credential() string {
	if r.Password != "" {
		return r.Password
	}
	return r.Contrasena
}

// UpdateUserRequest actualización parcial; los campos nil no se tocan. El id del cuerpo se ignora.
type UpdateUserRequest struct {
	Nombre   *string `json:"nombre"`
	Apellido *string `json:"apellido"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Activo   *bool   `json:"activo"`
}

// UserResponse salida de un usuario (sin credenciales).
type UserResponse struct {
	ID       int    `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Email    string `json:"email"`
	Activo   bool   `json:"activo"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT y el usuario sin credenciales.
type LoginResponse struct {
	Mensaje string       `json:"mensaje"`
	Token   string       `json:"token"`
	Usuario UserResponse `json:"usuario"`
}
