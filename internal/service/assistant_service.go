package service

import (
	"context"
	"time"

	"hr-assistant-be/internal/dto"
	"hr-assistant-be/internal/entity"
	"hr-assistant-be/internal/pkg/logger"
	"hr-assistant-be/internal/repository/unitofwork"
	"hr-assistant-be/pkg/agent"
	"hr-assistant-be/pkg/agent/access"
	"hr-assistant-be/pkg/events"

	"github.com/google/uuid"
)

// IAuditPublisher sends audit events to the event bus. Satisfied by the NATS
// publisher; publishing is best effort and must never fail a chat turn.
type IAuditPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IAssistantService interface {
	SendMessage(ctx context.Context, identity *entity.Identity, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetHistory(ctx context.Context, userId uuid.UUID) ([]*dto.GetHistoryResponse, error)
}

type assistantService struct {
	agent          *agent.Agent
	accessVerifier *access.Verifier
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher IAuditPublisher
	sysLogger      logger.ILogger
}

func NewAssistantService(
	agentCore *agent.Agent,
	accessVerifier *access.Verifier,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher IAuditPublisher,
	sysLogger logger.ILogger,
) IAssistantService {
	return &assistantService{
		agent:          agentCore,
		accessVerifier: accessVerifier,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		sysLogger:      sysLogger,
	}
}

func (s *assistantService) SendMessage(ctx context.Context, identity *entity.Identity, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	if err := s.accessVerifier.VerifyAndCount(ctx, identity.UserId); err != nil {
		return nil, err
	}

	start := time.Now()
	reply, err := s.agent.Handle(ctx, identity, request.Message)
	if err != nil {
		s.sysLogger.Error("assistant", "message handling failed", map[string]interface{}{
			"user_id": identity.UserId,
			"error":   err.Error(),
		})
		return nil, err
	}

	s.sysLogger.Info("assistant", "message handled", map[string]interface{}{
		"user_id":     identity.UserId,
		"role":        identity.Role,
		"duration_ms": time.Since(start).Milliseconds(),
		"citations":   len(reply.Citations),
	})

	if len(reply.Denied) > 0 {
		s.publishAudit(ctx, events.EventAccessDenied, map[string]interface{}{
			"user_id":      identity.UserId,
			"role":         identity.Role,
			"capabilities": reply.Denied,
		})
	}
	s.publishAudit(ctx, events.EventChatHandled, map[string]interface{}{
		"user_id":      identity.UserId,
		"role":         identity.Role,
		"capabilities": reply.CapabilitiesUsed,
	})

	response := &dto.SendMessageResponse{
		Reply: reply.Text,
	}
	for _, c := range reply.Citations {
		response.Citations = append(response.Citations, dto.CitationDTO{
			DocumentId: c.DocumentId,
			Title:      c.Title,
			ChunkIndex: c.ChunkIndex,
		})
	}
	for _, name := range reply.CapabilitiesUsed {
		response.CapabilitiesUsed = append(response.CapabilitiesUsed, string(name))
	}

	return response, nil
}

func (s *assistantService) publishAudit(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.NewAuditEvent(eventType, data)); err != nil {
		s.sysLogger.Warn("assistant", "audit publish failed", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

func (s *assistantService) GetHistory(ctx context.Context, userId uuid.UUID) ([]*dto.GetHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	turns, err := uow.ConversationRepository().FindAllByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	history := make([]*dto.GetHistoryResponse, 0, len(turns))
	for _, turn := range turns {
		history = append(history, &dto.GetHistoryResponse{
			Id:        turn.Id,
			Role:      turn.Role,
			Content:   turn.Content,
			Seq:       turn.Seq,
			CreatedAt: turn.CreatedAt,
		})
	}

	return history, nil
}
