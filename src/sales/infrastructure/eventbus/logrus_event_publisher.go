package eventbus

import (
	"context"
	"encoding/json"
	"fmt"

	"sales/src/sales/domain/port"

	"github.com/sirupsen/logrus"
)

// LogrusEventPublisher implementa EventPublisher serializando cada evento
// como una línea JSON estructurada
// Es el sink por defecto del servicio: los consumidores externos leen el
// stream de logs; un broker real puede reemplazarlo detrás del mismo port
type LogrusEventPublisher struct {
	logger *logrus.Logger
}

// NewLogrusEventPublisher crea un nuevo publisher sobre el logger dado
func NewLogrusEventPublisher(logger *logrus.Logger) port.EventPublisher {
	return &LogrusEventPublisher{logger: logger}
}

// Publish serializa y emite el evento
func (p *LogrusEventPublisher) Publish(_ context.Context, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error serializing event %T: %w", event, err)
	}

	p.logger.WithFields(logrus.Fields{
		"event":   fmt.Sprintf("%T", event),
		"payload": json.RawMessage(payload),
	}).Info("event published")

	return nil
}
