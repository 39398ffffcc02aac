package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"candidate_application/models"
)

// NATSService announces stored submissions. A copy request is also sent to
// the copy subject so a mailer can deliver it to the applicant.
type NATSService struct {
	conn             *nats.Conn
	submittedSubject string
	copySubject      string
}

func NewNATSService(url, submittedSubject, copySubject string, logger zerolog.Logger) (*NATSService, error) {
	conn, err := nats.Connect(url, nats.Name("candidate-application"))
	if err != nil {
		return nil, err
	}
	logger.Info().Str("url", url).Msg("Connected to NATS")
	return &NATSService{
		conn:             conn,
		submittedSubject: submittedSubject,
		copySubject:      copySubject,
	}, nil
}

func (n *NATSService) GetConnection() *nats.Conn {
	return n.conn
}

func (n *NATSService) Publish(_ context.Context, event models.SubmissionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal submission event: %w", err)
	}
	if err := n.conn.Publish(n.submittedSubject, data); err != nil {
		return fmt.Errorf("publish %s: %w", n.submittedSubject, err)
	}
	if event.Application.CopyRequested() && n.copySubject != "" {
		if err := n.conn.Publish(n.copySubject, data); err != nil {
			return fmt.Errorf("publish %s: %w", n.copySubject, err)
		}
	}
	return n.conn.Flush()
}

func (n *NATSService) Close() {
	if n.conn != nil {
		n.conn.Close()
	}
}
