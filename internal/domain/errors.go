package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrConflict      = errors.New("conflicto con el estado actual")
	ErrUnknownStatus = errors.New("estado desconocido")
	ErrInvalidPeriod = errors.New("período inválido")
	ErrRunInProgress = errors.New("ya hay una corrida en ejecución")
)
