package consumer

import (
	"context"
	"encoding/json"

	"go-hrms/internal/bootstrap"
	"go-hrms/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is implemented by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeLifecycleAudit records every employee and leave lifecycle event in the
// audit trail. Undecodable messages are committed and skipped.
func ConsumeLifecycleAudit(
	ctx context.Context,
	reader MessageReader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.lifecycle_audit")
	log.Info("lifecycle audit consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("lifecycle audit consumer stopped")
				return
			}
			log.Error("fetch lifecycle message failed", zap.Error(err))
			continue
		}

		entry, err := toAuditLog(msg)
		if err != nil {
			log.Error("decode lifecycle event failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		audit.Log(ctx, entry)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit lifecycle message failed", zap.Error(err))
			continue
		}
	}
}

func toAuditLog(msg kafkago.Message) (bootstrap.AuditLog, error) {
	var env events.Envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		return bootstrap.AuditLog{}, err
	}

	meta := map[string]any{
		"topic":           msg.Topic,
		"organization_id": env.OrganizationID,
		"request_id":      env.RequestID,
	}

	switch env.EventType {
	case events.EmployeeCreatedType:
		var e events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			return bootstrap.AuditLog{}, err
		}
		meta["employee_id"] = e.EmployeeID
		meta["employee_code"] = e.EmployeeCode
		return bootstrap.AuditLog{Action: "EMPLOYEE_CREATED", Message: "Employee created", Meta: meta}, nil

	case events.LeaveRequestDecidedType, events.LeaveRequestCanceledType:
		var e events.LeaveRequestDecidedEvent
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			return bootstrap.AuditLog{}, err
		}
		meta["leave_request_id"] = e.LeaveRequestID
		meta["employee_id"] = e.EmployeeID
		meta["status"] = e.Status
		meta["actor_id"] = e.ActorID
		return bootstrap.AuditLog{Action: "LEAVE_" + e.Status, Message: "Leave request " + e.Status, Meta: meta}, nil

	default:
		meta["event_type"] = env.EventType
		return bootstrap.AuditLog{Action: "UNKNOWN_EVENT", Message: "Unrecognised lifecycle event", Meta: meta}, nil
	}
}
