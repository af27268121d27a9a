package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Avisos-pago-api/internal/application/dto"
	"github.com/jhoicas/Avisos-pago-api/internal/domain"
	"github.com/jhoicas/Avisos-pago-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// OperatorConfig credencial única de operador, mantenida en configuración.
// El sistema no tiene tabla de usuarios: lo opera el equipo de cuentas por
// pagar con una sola identidad, y el hash bcrypt vive en el entorno.
type OperatorConfig struct {
	Email        string
	PasswordHash string // bcrypt
}

// AuthUseCase login del operador contra la credencial de configuración.
type AuthUseCase struct {
	operator OperatorConfig
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(operator OperatorConfig, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{operator: operator, jwtCfg: jwtCfg}
}

// Login verifica email/password contra la credencial configurada y emite un JWT.
// Devuelve domain.ErrUnauthorized ante cualquier discrepancia, sin distinguir
// email inexistente de password incorrecto.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if uc.operator.Email == "" || uc.operator.PasswordHash == "" {
		return nil, domain.ErrUnauthorized // credencial no configurada
	}
	if in.Email != uc.operator.Email {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.operator.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.operator.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Email: uc.operator.Email}, nil
}
