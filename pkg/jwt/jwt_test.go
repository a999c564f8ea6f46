package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/tienda-api/pkg/jwt"
)

const secret = "secreto-de-prueba"

func TestGenerateYParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, 12, "ana@x.com", "tienda-api", 5)
	require.NoError(t, err)

	id, email, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, 12, id)
	assert.Equal(t, "ana@x.com", email)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, 1, "a@x.com", "tienda-api", -1)
	require.NoError(t, err)
	_, _, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate("otro", 1, "a@x.com", "tienda-api", 5)
	require.NoError(t, err)
	_, _, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestParse_SinID(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, 0, "a@x.com", "tienda-api", 5)
	require.NoError(t, err)
	_, _, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", 1, "a@x.com", "x", 5)
	assert.Error(t, err)
	_, _, err = pkgjwt.Parse("", "x.y.z")
	assert.Error(t, err)
}
