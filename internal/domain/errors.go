package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Nota: una búsqueda fuera del tenant del actor retorna ErrNotFound, nunca
// un error distinto — el aislamiento multi-tenant exige que "no es tuyo"
// sea indistinguible de "no existe".
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrOverpayment          = errors.New("el monto excede la deuda restante")
	ErrAlreadyPaid          = errors.New("la cuota ya fue pagada")
	ErrPersonnelUnavailable = errors.New("personal inexistente o inactivo")
	ErrInvalidTransition    = errors.New("transición de estado no permitida")
	ErrSubscriptionRequired = errors.New("suscripción vencida o cancelada")
)
