package ports

import "context"

// Forwarder reenvia o corpo bruto de um webhook para outro destino
type Forwarder interface {
	Forward(ctx context.Context, payload []byte) error
}
