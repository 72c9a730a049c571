package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	// ErrForeignKey lo devuelven los repositorios ante una violación de FK (23503).
	ErrForeignKey = errors.New("el registro está referenciado por otros registros")
	// ErrCustomerHasInvoices: el cliente tiene facturas u otros registros vinculados;
	// el llamador puede reintentar con borrado en cascada.
	ErrCustomerHasInvoices = errors.New("el cliente tiene registros vinculados")
	ErrStorageDisabled     = errors.New("almacenamiento de archivos no configurado")
)
