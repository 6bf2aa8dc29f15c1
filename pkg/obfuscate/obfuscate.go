// Package obfuscate implementa la ofuscación reversible que se aplica al campo password
// de los usuarios antes de persistirlos.
//
// NO ES CIFRADO. La clave es fija y se deriva de una constante del código fuente: cualquiera
// con acceso al documento y al código puede revelar las contraseñas. Existe únicamente para
// mantener compatibilidad con los documentos ya guardados por la aplicación de escritorio.
// Para credenciales nuevas usar PASSWORD_SCHEME=bcrypt (ver internal/application/auth).
package obfuscate

import (
	"encoding/base64"
	"strings"

	"github.com/rs/zerolog/log"
)

// Prefix marca un valor que ya pasó por Obfuscate.
const Prefix = "enc:"

const (
	salt   = "salmichou-layette-2024-secure"
	keyLen = 16
)

// key se calcula una sola vez por proceso.
var key = deriveKey(salt)

// deriveKey desplaza cada byte del salt en +1, codifica en base64 y trunca a 16 caracteres.
func deriveKey(s string) []byte {
	shifted := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		shifted[i] = s[i] + 1
	}
	enc := base64.StdEncoding.EncodeToString(shifted)
	return []byte(enc[:keyLen])
}

func xor(in []byte) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[i] = b ^ key[i%len(key)]
	}
	return out
}

// Obfuscate devuelve Prefix + base64(plain XOR key). Una cadena vacía se devuelve tal cual.
func Obfuscate(plain string) string {
	if plain == "" {
		return plain
	}
	return Prefix + base64.StdEncoding.EncodeToString(xor([]byte(plain)))
}

// ObfuscateIfPlain ofusca solo si el valor aún no lleva la marca.
func ObfuscateIfPlain(value string) string {
	if IsObfuscated(value) {
		return value
	}
	return Obfuscate(value)
}

// Reveal invierte Obfuscate. Valores sin la marca se devuelven sin cambios; si el base64 está
// corrupto se registra y se devuelve la entrada original.
func Reveal(token string) string {
	if !IsObfuscated(token) {
		return token
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(token, Prefix))
	if err != nil {
		log.Warn().Err(err).Msg("obfuscate: valor marcado con base64 inválido, se conserva tal cual")
		return token
	}
	return string(xor(raw))
}

// IsObfuscated solo comprueba la marca.
func IsObfuscated(value string) bool {
	return strings.HasPrefix(value, Prefix)
}

// IsBcryptHash reconoce un hash bcrypt ($2a$, $2b$, $2y$ y 60 caracteres). Los hashes no se
// ofuscan ni se revelan: se guardan tal cual.
func IsBcryptHash(value string) bool {
	if len(value) != 60 {
		return false
	}
	return strings.HasPrefix(value, "$2a$") || strings.HasPrefix(value, "$2b$") || strings.HasPrefix(value, "$2y$")
}
