// Package persistence implementa el DocumentGateway sobre un KeyValueStore (documento JSON)
// y las transformaciones de credenciales que aplica cualquier gateway en la frontera.
package persistence

import (
	"github.com/jhoicas/salmichou-pos/internal/domain/entity"
	"github.com/jhoicas/salmichou-pos/pkg/obfuscate"
)

// ObfuscateUsers devuelve una copia con cada password ofuscado. Los valores ya marcados y
// los hashes bcrypt se conservan.
func ObfuscateUsers(users []entity.User) []entity.User {
	out := make([]entity.User, len(users))
	for i, u := range users {
		if u.Password != "" && !obfuscate.IsBcryptHash(u.Password) {
			u.Password = obfuscate.ObfuscateIfPlain(u.Password)
		}
		out[i] = u
	}
	return out
}

// RevealUsers deshace ObfuscateUsers in situ.
func RevealUsers(users []entity.User) {
	for i := range users {
		users[i].Password = obfuscate.Reveal(users[i].Password)
	}
}
