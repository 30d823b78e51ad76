package messaging

import (
	messagingRepo "tourbook/database/repository/messaging"
	schoolRepo "tourbook/database/repository/school"
	"tourbook/models"
)

// MessagingService owns parent/school-admin conversations. It is
// independent of the booking engine apart from the optional bookingId
// context link on a conversation.
type MessagingService interface {
	StartConversation(parentID string, req models.StartConversationRequest) (*models.Conversation, error)
	ListConversations(userID, role string) ([]models.Conversation, error)
	ListMessages(userID, role, conversationID string) ([]models.Message, error)
	SendMessage(userID, role, conversationID, body string) (*models.Message, error)
}

// DefaultMessagingService is the production implementation.
type DefaultMessagingService struct {
	Repo       messagingRepo.MessagingRepository
	SchoolRepo schoolRepo.SchoolRepository
}
