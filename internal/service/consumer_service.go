package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"hr-assistant-be/internal/dto"
	"hr-assistant-be/internal/entity"
	"hr-assistant-be/internal/repository/unitofwork"
	"hr-assistant-be/pkg/embedding"
	"hr-assistant-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the ingestion topic: each message is one policy
// document to chunk, embed, and store.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedPolicyMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal ingestion message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing policy embedding for document %s", payload.DocumentId)

	content := fmt.Sprintf("Policy: %s\n\n%s", payload.Title, payload.Content)

	// ChunkSize 1500 chars with 200 overlap keeps chunks inside embedding
	// context limits
	chunks := utils.SplitText(content, 1500, 200)
	log.Printf("[INFO] Document %s split into %d chunks", payload.DocumentId, len(chunks))

	var newChunks []*entity.PolicyChunk
	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk, embedding.TaskTypeRetrievalDocument)
		if err != nil {
			log.Printf("[ERROR] Failed to embed chunk %d of document %s: %v", i, payload.DocumentId, err)
			msg.Nack()
			return
		}

		newChunks = append(newChunks, &entity.PolicyChunk{
			Id:         uuid.New(),
			DocumentId: payload.DocumentId,
			Title:      payload.Title,
			ChunkIndex: i,
			Content:    chunk,
			Embedding:  res.Embedding.Values,
			CreatedAt:  time.Now(),
		})
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	// Re-ingesting a document replaces its previous chunks
	if err := uow.PolicyEmbeddingRepository().DeleteByDocumentId(ctx, payload.DocumentId); err != nil {
		log.Printf("[ERROR] Failed to delete old chunks for %s: %v", payload.DocumentId, err)
		msg.Nack()
		return
	}

	if len(newChunks) > 0 {
		if err := uow.PolicyEmbeddingRepository().CreateBulk(ctx, newChunks); err != nil {
			log.Printf("[ERROR] Failed to store chunks for %s: %v", payload.DocumentId, err)
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[INFO] Stored %d chunks for document %s", len(newChunks), payload.DocumentId)
	msg.Ack()
}
