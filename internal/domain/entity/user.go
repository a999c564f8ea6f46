package entity

// User representa una cuenta de cliente de la tienda.
// Convive el formato nuevo (PasswordHash, bcrypt) con el legado (Contrasena, texto plano o bcrypt).
type User struct {
	ID           int
	Nombre       string
	Apellido     string
	Email        string
	PasswordHash string
	Contrasena   string // legado; se descarta al cambiar la contraseña
	Activo       bool
}

// Credential devuelve la credencial almacenada como variante etiquetada.
// Retorna nil si la cuenta no tiene ninguna credencial.
func (u *User) Credential() Credential {
	switch {
	case u.PasswordHash != "":
		return HashedCredential{Digest: u.PasswordHash}
	case u.Contrasena != "":
		return LegacyCredential{Text: u.Contrasena}
	default:
		return nil
	}
}

// SetPasswordHash reemplaza cualquier credencial previa por un hash bcrypt.
func (u *User) SetPasswordHash(hash string) {
	u.PasswordHash = hash
	u.Contrasena = ""
}
