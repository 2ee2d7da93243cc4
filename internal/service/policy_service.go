package service

import (
	"context"
	"encoding/json"

	"hr-assistant-be/internal/dto"
	"hr-assistant-be/internal/entity"
	"hr-assistant-be/internal/pkg/logger"
	"hr-assistant-be/pkg/events"
)

type IPolicyService interface {
	Ingest(ctx context.Context, identity *entity.Identity, request *dto.IngestPolicyRequest) (*dto.IngestPolicyResponse, error)
}

type policyService struct {
	publisherService IPublisherService
	eventPublisher   IAuditPublisher
	sysLogger        logger.ILogger
}

func NewPolicyService(
	publisherService IPublisherService,
	eventPublisher IAuditPublisher,
	sysLogger logger.ILogger,
) IPolicyService {
	return &policyService{
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		sysLogger:        sysLogger,
	}
}

// Ingest queues a policy document for chunking and embedding. The heavy work
// happens in the consumer; the endpoint returns as soon as the job is on the
// bus.
func (s *policyService) Ingest(ctx context.Context, identity *entity.Identity, request *dto.IngestPolicyRequest) (*dto.IngestPolicyResponse, error) {
	payload := dto.PublishEmbedPolicyMessage{
		DocumentId: request.DocumentId,
		Title:      request.Title,
		Content:    request.Content,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	if err := s.publisherService.Publish(ctx, payloadJson); err != nil {
		return nil, err
	}

	s.sysLogger.Info("policy", "policy document queued for embedding", map[string]interface{}{
		"document_id": request.DocumentId,
		"queued_by":   identity.UserId,
	})

	if s.eventPublisher != nil {
		evt := events.NewAuditEvent(events.EventPolicyIngested, map[string]interface{}{
			"document_id": request.DocumentId,
			"queued_by":   identity.UserId,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.sysLogger.Warn("policy", "audit publish failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &dto.IngestPolicyResponse{
		DocumentId: request.DocumentId,
		Queued:     true,
	}, nil
}
