package health

import (
	"context"
	"errors"
	"testing"
)

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestStatus(t *testing.T) {
	tests := []struct {
		name   string
		db     Pinger
		ok     bool
		dbWant string
	}{
		{"memory", nil, true, "disabled"},
		{"db up", stubPinger{}, true, "up"},
		{"db down", stubPinger{err: errors.New("refused")}, false, "down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewService(tt.db, "za-2024.1").Status(context.Background())
			if got.OK != tt.ok || got.Database != tt.dbWant || got.CatalogVersion != "za-2024.1" {
				t.Fatalf("unexpected status %+v", got)
			}
		})
	}
}
