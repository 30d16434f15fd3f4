package catalog

import "github.com/westcutz/booking-web/internal/httperr"

// Service is an offerable service. The catalog is fixed at process start;
// prices are whole NOK.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int    `json:"price"`
	DurationMin int    `json:"duration_min"`
	Description string `json:"description"`
}

type Barber struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DefaultBarberID is assumed for bookings created before barber selection
// existed, matching the dashboard's fallback.
const DefaultBarberID = "marius"

var services = []Service{
	{
		ID:          "classic-cut",
		Name:        "Classic Cut",
		Price:       350,
		DurationMin: 45,
		Description: "Traditional precision haircut",
	},
	{
		ID:          "fade-style",
		Name:        "Fade & Style",
		Price:       450,
		DurationMin: 45,
		Description: "Modern fade with styling",
	},
	{
		ID:          "beard-trim",
		Name:        "Beard Trim",
		Price:       200,
		DurationMin: 20,
		Description: "Clean lines and shaping",
	},
}

var barbers = []Barber{
	{ID: "marius", Name: "Marius"},
	{ID: "sivert", Name: "Sivert"},
}

func Services() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

func Barbers() []Barber {
	out := make([]Barber, len(barbers))
	copy(out, barbers)
	return out
}

func ServiceByID(id string) (Service, error) {
	for _, s := range services {
		if s.ID == id {
			return s, nil
		}
	}
	return Service{}, httperr.ErrBusiness("service_not_found")
}

func BarberByID(id string) (Barber, error) {
	for _, b := range barbers {
		if b.ID == id {
			return b, nil
		}
	}
	return Barber{}, httperr.ErrBusiness("barber_not_found")
}

// IsBarber reports whether id names a real barber ("all" is a dashboard
// filter value, not a barber).
func IsBarber(id string) bool {
	_, err := BarberByID(id)
	return err == nil
}
