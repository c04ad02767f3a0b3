package courierserver

import (
	clientdomain "github.com/udea/couriersync/internal/domains/clients/domain"
	dashboardapp "github.com/udea/couriersync/internal/domains/dashboard/application"
	vehicledomain "github.com/udea/couriersync/internal/domains/vehicles/domain"
)

// LoginRequest carries sign-in credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

type Client struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

func (m Client) toDomain() *clientdomain.Client {
	return &clientdomain.Client{
		Name:    m.Name,
		Email:   m.Email,
		Phone:   m.Phone,
		Address: m.Address,
	}
}

func clientFromDomain(c *clientdomain.Client) Client {
	return Client{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address}
}

func clientsFromDomain(list []*clientdomain.Client) []Client {
	out := make([]Client, 0, len(list))
	for _, c := range list {
		out = append(out, clientFromDomain(c))
	}
	return out
}

type Vehicle struct {
	ID              int64   `json:"id"`
	Plate           string  `json:"plate"`
	Model           string  `json:"model,omitempty"`
	MaximumCapacity float64 `json:"maximumCapacity"`
	Available       *bool   `json:"available,omitempty"`
}

// toDomain maps the payload; a vehicle is available unless the caller says otherwise.
func (m Vehicle) toDomain() *vehicledomain.Vehicle {
	available := true
	if m.Available != nil {
		available = *m.Available
	}
	return &vehicledomain.Vehicle{
		Plate:           m.Plate,
		Model:           m.Model,
		MaximumCapacity: m.MaximumCapacity,
		Available:       available,
	}
}

func vehicleFromDomain(v *vehicledomain.Vehicle) Vehicle {
	available := v.Available
	return Vehicle{
		ID:              v.ID,
		Plate:           v.Plate,
		Model:           v.Model,
		MaximumCapacity: v.MaximumCapacity,
		Available:       &available,
	}
}

func vehiclesFromDomain(list []*vehicledomain.Vehicle) []Vehicle {
	out := make([]Vehicle, 0, len(list))
	for _, v := range list {
		out = append(out, vehicleFromDomain(v))
	}
	return out
}

// DashboardMetrics is keyed the way the administrator console reads it.
type DashboardMetrics struct {
	Shipments int64 `json:"shipments"`
	Clients   int64 `json:"clients"`
	Users     int64 `json:"users"`
}

func metricsFromDomain(m dashboardapp.Metrics) DashboardMetrics {
	return DashboardMetrics{Shipments: m.Shipments, Clients: m.Clients, Users: m.Users}
}
