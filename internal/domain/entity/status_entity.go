package entity

import "time"

// ServiceStatus is recomputed on every poll; no history is kept.
type ServiceStatus string

const (
	StatusUnknown ServiceStatus = "unknown"
	StatusHealthy ServiceStatus = "healthy"
	StatusDown    ServiceStatus = "down"
)

// Service names the two collaborators whose health is shown.
type Service string

const (
	UserService    Service = "user-service"
	ProductService Service = "product-service"
)

// Indicator is the state of one status badge.
type Indicator struct {
	Service   Service       `json:"service"`
	Status    ServiceStatus `json:"status"`
	CheckedAt time.Time     `json:"checked_at"`
}
