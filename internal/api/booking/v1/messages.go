package bookingv1

// Даты: "2006-01-02", моменты времени: RFC3339 либо локальное время
// сервиса без зоны ("2006-01-02T15:04").

type Booking struct {
	ID              string `json:"id"`
	BookingDateTime string `json:"bookingDateTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	Notes           string `json:"notes,omitempty"`
	Username        string `json:"username,omitempty"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

type Availability struct {
	ID            string `json:"id"`
	AvailableDate string `json:"availableDate"`
	IsAvailable   bool   `json:"isAvailable"`
	Notes         string `json:"notes,omitempty"`
}

type BookingEvent struct {
	ID        string `json:"id"`
	EventType string `json:"eventType"`
	UserID    string `json:"userId,omitempty"`
	Details   string `json:"details,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// Пользовательские вызовы несут принципала: его заполняет доверенный шлюз.

type CreateBookingRequest struct {
	UserID          string `json:"userId" validate:"required,max=64"`
	Username        string `json:"username" validate:"max=255"`
	Role            string `json:"role,omitempty"`
	BookingDateTime string `json:"bookingDateTime" validate:"required"`
	Notes           string `json:"notes" validate:"max=1000"`
}

type CreateBookingResponse struct {
	Booking *Booking `json:"booking"`
}

type CancelBookingRequest struct {
	BookingID string `json:"bookingId" validate:"required"`
	UserID    string `json:"userId" validate:"required,max=64"`
}

type CancelBookingResponse struct {
	Booking *Booking `json:"booking"`
}

type ListMyBookingsRequest struct {
	UserID   string `json:"userId" validate:"required,max=64"`
	Page     int    `json:"page" validate:"gte=0"`
	PageSize int    `json:"pageSize" validate:"gte=0"`
}

type ListMyBookingsResponse struct {
	Bookings []*Booking `json:"bookings"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
	Total    int        `json:"total"`
	HasNext  bool       `json:"hasNext"`
}

type ListAvailableSlotsRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type ListAvailableSlotsResponse struct {
	Date  string  `json:"date"`
	Slots []*Slot `json:"slots"`
}

type SetAvailabilityRequest struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	IsAvailable bool   `json:"isAvailable"`
	Notes       string `json:"notes" validate:"max=1000"`
}

type SetAvailabilityResponse struct {
	Availability *Availability `json:"availability"`
}

type ListAvailabilityRequest struct {
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

type ListAvailabilityResponse struct {
	Records []*Availability `json:"records"`
}

type ListBookingsForDateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type ListBookingsForDateResponse struct {
	Bookings []*Booking `json:"bookings"`
}

type ListBookingEventsRequest struct {
	BookingID string `json:"bookingId" validate:"required"`
}

type ListBookingEventsResponse struct {
	Events []*BookingEvent `json:"events"`
}
