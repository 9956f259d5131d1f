package booking

// Error: отказ, который клиент может исправить сам. Такие ошибки не логируются
// как неожиданные и маппятся транспортом на коды ответа.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrAdminUnavailable      = &Error{Code: "admin_unavailable", Message: "admin is not available on this date"}
	ErrOutsideOperatingHours = &Error{Code: "outside_operating_hours", Message: "time is outside operating hours"}
	ErrMisalignedSlot        = &Error{Code: "misaligned_slot", Message: "time is not aligned to a 20 minute slot"}
	ErrInPast                = &Error{Code: "in_past", Message: "cannot book a slot in the past"}
	ErrSlotAlreadyBooked     = &Error{Code: "slot_already_booked", Message: "slot is already booked"}
	ErrBookingNotFound       = &Error{Code: "booking_not_found", Message: "booking not found"}
	ErrNotOwner              = &Error{Code: "not_owner", Message: "booking belongs to another user"}

	ErrInvalidPrincipal = &Error{Code: "invalid_principal", Message: "invalid user principal"}
	ErrInvalidRange     = &Error{Code: "invalid_range", Message: "invalid date range"}
)
