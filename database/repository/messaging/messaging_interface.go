package messagingRepo

import "tourbook/models"

// MessagingRepository defines persistence operations for conversations
// and their messages.
type MessagingRepository interface {
	CreateConversation(conv *models.Conversation) error
	GetConversationByID(id string) (*models.Conversation, error)
	GetConversationByParties(parentID, schoolID string) (*models.Conversation, error)
	ListByParent(parentID string) ([]models.Conversation, error)
	ListBySchool(schoolID string) ([]models.Conversation, error)
	AppendMessage(msg *models.Message, unreadField string) error
	ListMessages(conversationID string) ([]models.Message, error)
	ResetUnread(conversationID, unreadField string) error
}
