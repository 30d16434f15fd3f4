package booking

// TimeSlot is one bookable slot as returned by the booking API. Slots are
// never generated or cached on this side; the API is the only source.
type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Booking is a confirmed booking record. Owned and mutated by the booking
// API; this service only reads it or requests deletion.
type Booking struct {
	ID           string `json:"id"`
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`

	BarberID   string `json:"barber_id,omitempty"`
	BarberName string `json:"barber_name,omitempty"`

	Date     string `json:"date"`      // YYYY-MM-DD
	TimeSlot string `json:"time_slot"` // HH:MM

	ServiceID       string `json:"service_id,omitempty"`
	ServiceName     string `json:"service_name,omitempty"`
	ServicePrice    int    `json:"service_price,omitempty"`
	ServiceDuration int    `json:"service_duration,omitempty"`

	Duration      int           `json:"duration,omitempty"` // minutes
	Status        string        `json:"status,omitempty"`
	PaymentStatus PaymentStatus `json:"payment_status,omitempty"`
	CreatedAt     string        `json:"created_at,omitempty"`
}

// Draft is a booking composed by the step flow, ready for submission.
type Draft struct {
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`

	BarberID   string `json:"barber_id,omitempty"`
	BarberName string `json:"barber_name,omitempty"`

	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`

	ServiceID       string `json:"service_id,omitempty"`
	ServiceName     string `json:"service_name,omitempty"`
	ServicePrice    int    `json:"service_price,omitempty"`
	ServiceDuration int    `json:"service_duration,omitempty"`
}
