package domain

import "errors"

// ErrorKind groups domain errors by how the caller should react to them
type ErrorKind string

const (
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindConflict          ErrorKind = "CONFLICT"
	KindOwnershipMismatch ErrorKind = "OWNERSHIP_MISMATCH"
	KindNotAuthorized     ErrorKind = "NOT_AUTHORIZED"
	KindInvalidInput      ErrorKind = "INVALID_INPUT"
	KindTransient         ErrorKind = "TRANSIENT"
)

// Error is a typed booking error with a stable reason string.
// Sentinels below are compared with errors.Is, wrapping with %w keeps them matchable.
type Error struct {
	Kind    ErrorKind
	Reason  string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, reason, message string) *Error {
	return &Error{Kind: kind, Reason: reason, Message: message}
}

var (
	// ErrSlotNotFound возвращается, когда слот для бронирования не найден
	ErrSlotNotFound = newError(KindNotFound, "SLOT_NOT_FOUND", "availability slot not found")

	// ErrNewSlotNotFound возвращается, когда слот для переноса не найден
	ErrNewSlotNotFound = newError(KindNotFound, "NEW_SLOT_NOT_FOUND", "new availability slot not found")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = newError(KindNotFound, "BOOKING_NOT_FOUND", "booking not found")

	// ErrSlotAlreadyBooked возвращается, когда слот уже занят
	ErrSlotAlreadyBooked = newError(KindConflict, "SLOT_ALREADY_BOOKED", "availability slot already booked")

	// ErrNewSlotAlreadyBooked возвращается, когда слот для переноса уже занят
	ErrNewSlotAlreadyBooked = newError(KindConflict, "NEW_SLOT_ALREADY_BOOKED", "new availability slot already booked")

	// ErrBookingNotMutable возвращается, когда статус бронирования не допускает изменений
	ErrBookingNotMutable = newError(KindConflict, "BOOKING_NOT_MUTABLE", "booking status does not allow this operation")

	// ErrSlotOwnershipMismatch возвращается, когда слот принадлежит другому терапевту
	ErrSlotOwnershipMismatch = newError(KindOwnershipMismatch, "SLOT_OWNERSHIP_MISMATCH", "availability does not belong to therapist")

	// ErrSlotTherapistMismatch возвращается, когда новый слот принадлежит другому терапевту
	ErrSlotTherapistMismatch = newError(KindOwnershipMismatch, "SLOT_THERAPIST_MISMATCH", "new slot must belong to the same therapist")

	// ErrNotAuthorized возвращается, когда у пользователя нет прав на операцию
	ErrNotAuthorized = newError(KindNotAuthorized, "NOT_AUTHORIZED", "not authorized to modify this booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = newError(KindInvalidInput, "INVALID_INPUT", "invalid input data")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = newError(KindTransient, "INTERNAL", "internal error")
)

// KindOf returns the kind of the first domain error in the chain.
// Errors outside the taxonomy are reported as transient.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindTransient
}

// ReasonOf returns the stable reason string of the first domain error in the chain
func ReasonOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Reason
	}
	return ErrInternal.Reason
}
