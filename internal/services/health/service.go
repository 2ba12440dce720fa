package health

import (
	"context"
	"time"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Status is the health payload.
type Status struct {
	OK             bool   `json:"ok"`
	CatalogVersion string `json:"catalogVersion"`
	Database       string `json:"database"`
}

// Service encapsulates health-related checks.
type Service struct {
	DB             Pinger
	CatalogVersion string
	Timeout        time.Duration
}

// NewService constructs a new health service. db may be nil when history is kept in memory.
func NewService(db Pinger, catalogVersion string) *Service {
	return &Service{DB: db, CatalogVersion: catalogVersion, Timeout: 2 * time.Second}
}

// Status reports whether the service can answer requests. A failing database
// marks the payload not OK; analysis itself does not depend on it.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{OK: true, CatalogVersion: s.CatalogVersion, Database: "disabled"}
	if s.DB == nil {
		return st
	}
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		st.OK = false
		st.Database = "down"
		return st
	}
	st.Database = "up"
	return st
}
