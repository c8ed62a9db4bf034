// Package admin guards privileged operations
package admin

import (
	"fmt"
	"strings"

	"github.com/osse101/stardust-engine/internal/domain"
)

// Gate checks callers against the single configured administrator
type Gate struct {
	admin string
}

// NewGate creates a gate for the given admin address. An empty address
// rejects every caller.
func NewGate(adminAddress string) *Gate {
	return &Gate{admin: strings.TrimSpace(adminAddress)}
}

// RequireAdmin fails closed unless caller is the administrator
func (g *Gate) RequireAdmin(caller string) error {
	if g == nil || g.admin == "" || caller != g.admin {
		return fmt.Errorf("%w: %s", domain.ErrNotAdmin, caller)
	}
	return nil
}

// Address returns the administrator address
func (g *Gate) Address() string {
	return g.admin
}
