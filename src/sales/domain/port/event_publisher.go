package port

import "context"

// EventPublisher define el contrato para publicar eventos de dominio
// Fire-and-forget: una falla de publicación no revierte la mutación ya commiteada
type EventPublisher interface {
	Publish(ctx context.Context, event any) error
}
