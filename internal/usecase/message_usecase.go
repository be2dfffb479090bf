package usecase

import (
	"context"
	"errors"
	"strings"

	"skillex/internal/domain/user"
	"skillex/internal/repository"

	"github.com/google/uuid"
)

const (
	maxMessageLength          = 4000
	defaultConversationLength = 50
	maxConversationLength     = 200
)

var ErrRecipientNotFound = errors.New("recipient not found")

type MessageUsecase interface {
	Send(ctx context.Context, senderID, recipientID uuid.UUID, body string) (repository.Message, error)
	Conversation(ctx context.Context, userID, otherID uuid.UUID, limit int) ([]repository.Message, error)
	MarkRead(ctx context.Context, userID, senderID uuid.UUID) (int64, error)
}

type Messages struct {
	messages repository.MessageRepository
	users    user.Repository
	notify   Notifier
}

func NewMessageUsecase(messages repository.MessageRepository, users user.Repository, notify Notifier) *Messages {
	return &Messages{messages: messages, users: users, notify: notify}
}

func (u *Messages) Send(ctx context.Context, senderID, recipientID uuid.UUID, body string) (repository.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" || len(body) > maxMessageLength {
		return repository.Message{}, ErrInvalidInput
	}
	if senderID == recipientID {
		return repository.Message{}, ErrInvalidInput
	}

	if _, err := u.users.GetUserByID(ctx, recipientID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return repository.Message{}, ErrRecipientNotFound
		}
		return repository.Message{}, ErrInternal
	}

	created, err := u.messages.Create(ctx, repository.Message{
		ID:          uuid.New(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
	})
	if err != nil {
		return repository.Message{}, ErrInternal
	}

	if u.notify != nil {
		u.notify.NotifyUser(recipientID.String(), EventMessageCreated, created)
	}
	return created, nil
}

func (u *Messages) Conversation(ctx context.Context, userID, otherID uuid.UUID, limit int) ([]repository.Message, error) {
	if limit <= 0 {
		limit = defaultConversationLength
	}
	if limit > maxConversationLength {
		limit = maxConversationLength
	}
	out, err := u.messages.ListConversation(ctx, userID, otherID, limit)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Messages) MarkRead(ctx context.Context, userID, senderID uuid.UUID) (int64, error) {
	n, err := u.messages.MarkRead(ctx, userID, senderID)
	if err != nil {
		return 0, ErrInternal
	}
	return n, nil
}
