package shop

import "minishop/internal/services/gate/domain"

type ordersEnvelope struct {
	Orders []domain.Order `json:"orders"`
}

type productEnvelope struct {
	Product *domain.Product `json:"product"`
}
