package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Avisos-pago-api/internal/application/auth"
	"github.com/jhoicas/Avisos-pago-api/internal/application/dto"
	"github.com/jhoicas/Avisos-pago-api/internal/domain"
)

func newAuthUC(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura"), bcrypt.MinCost)
	require.NoError(t, err)
	return auth.NewAuthUseCase(auth.OperatorConfig{
		Email:        "operador@empresa.example",
		PasswordHash: string(hash),
	}, auth.JWTConfig{
		Secret:     "secret-de-test",
		ExpMinutes: 60,
		Issuer:     "avisos-pago-test",
	})
}

func TestLogin_CredencialValida(t *testing.T) {
	out, err := newAuthUC(t).Login(dto.LoginRequest{
		Email:    "operador@empresa.example",
		Password: "clave-segura",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "operador@empresa.example", out.Email)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	_, err := newAuthUC(t).Login(dto.LoginRequest{
		Email:    "operador@empresa.example",
		Password: "otra-clave",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailDesconocido(t *testing.T) {
	_, err := newAuthUC(t).Login(dto.LoginRequest{
		Email:    "intruso@empresa.example",
		Password: "clave-segura",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"email y password incorrectos deben ser indistinguibles")
}

func TestLogin_CredencialNoConfigurada(t *testing.T) {
	uc := auth.NewAuthUseCase(auth.OperatorConfig{}, auth.JWTConfig{Secret: "s", ExpMinutes: 60})
	_, err := uc.Login(dto.LoginRequest{Email: "a@b.c", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
