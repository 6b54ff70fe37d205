package module

import (
	"minishop/internal/services/gate/domain"
	"minishop/internal/services/gate/service"
)

// Ports holds the ports exposed by the gate module
type Ports struct {
	Service service.Service

	// RowStore and Shop back readiness checks
	RowStore domain.Pinger
	Shop     domain.Pinger
}
