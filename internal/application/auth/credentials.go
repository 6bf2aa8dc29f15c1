package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/salmichou-pos/pkg/obfuscate"
)

// Esquemas de contraseña para usuarios nuevos o contraseñas cambiadas (PASSWORD_SCHEME).
const (
	SchemePlain  = "plain"
	SchemeBcrypt = "bcrypt"
)

// HashPassword prepara la contraseña según el esquema. Con "plain" se guarda tal cual y el
// gateway la ofusca en reposo; con "bcrypt" se guarda el hash.
func HashPassword(scheme, plain string) (string, error) {
	if scheme != SchemeBcrypt {
		return plain, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compara la contraseña almacenada con la candidata. Una contraseña almacenada
// vacía nunca coincide.
func VerifyPassword(stored, candidate string) bool {
	if stored == "" {
		return false
	}
	if obfuscate.IsBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
	}
	plain := obfuscate.Reveal(stored)
	return subtle.ConstantTimeCompare([]byte(plain), []byte(candidate)) == 1
}
