package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// La taxonomía sigue cuatro familias: parseo, validación, autorización y almacenamiento.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// ErrParse JSON almacenado o importado mal formado.
	ErrParse = errors.New("documento JSON inválido")
	// ErrValidation faltan colecciones o campos obligatorios; no se aplica nada.
	ErrValidation = errors.New("validación fallida")
	// ErrSelfModification un usuario intentó borrarse o desactivarse a sí mismo.
	ErrSelfModification = errors.New("no puede eliminar ni desactivar su propia cuenta")
	// ErrStorage fallo de escritura/lectura del medio de persistencia.
	ErrStorage = errors.New("error de almacenamiento")
	// ErrStoreClosed el store de dominio no fue abierto o ya se cerró.
	ErrStoreClosed = errors.New("store no inicializado")
)
