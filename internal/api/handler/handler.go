package handler

import (
	"sync/atomic"

	"meetgogo/backend/internal/auth"
	"meetgogo/backend/internal/chathub"
	"meetgogo/backend/internal/storage"
)

// Handler wires the HTTP surface to the chat subsystem.
type Handler struct {
	Gateway  *chathub.Gateway
	Registry *chathub.Registry
	Storage  storage.Storage
	Auth     *auth.Service

	// HistoryLimit caps how many messages the history endpoint returns.
	HistoryLimit int

	// ready flips once wiring (migrations, redis ping) has completed; the
	// liveness probe reports it.
	ready atomic.Bool
}

func NewHandler(gateway *chathub.Gateway, registry *chathub.Registry, s storage.Storage, authSvc *auth.Service, historyLimit int) *Handler {
	return &Handler{
		Gateway:      gateway,
		Registry:     registry,
		Storage:      s,
		Auth:         authSvc,
		HistoryLimit: historyLimit,
	}
}

// SetReady marks the chat subsystem as initialized.
func (h *Handler) SetReady() {
	h.ready.Store(true)
}
