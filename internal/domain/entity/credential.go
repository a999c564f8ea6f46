package entity

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Credential es la credencial persistida de una cuenta.
type Credential interface {
	Verify(candidate string) bool
}

// HashedCredential es un digest bcrypt (campo passwordHash).
type HashedCredential struct {
	Digest string
}

// Verify compara candidate contra el digest bcrypt.
func (c HashedCredential) Verify(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.Digest), []byte(candidate)) == nil
}

// LegacyCredential es el campo contrasena heredado: puede ser un hash bcrypt o texto plano.
type LegacyCredential struct {
	Text string
}

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// Verify usa bcrypt si el texto parece un hash, si no compara en tiempo constante.
func (c LegacyCredential) Verify(candidate string) bool {
	for _, p := range bcryptPrefixes {
		if strings.HasPrefix(c.Text, p) {
			return HashedCredential{Digest: c.Text}.Verify(candidate)
		}
	}
	return subtle.ConstantTimeCompare([]byte(c.Text), []byte(candidate)) == 1
}
