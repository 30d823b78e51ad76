package messaging

import (
	"errors"

	messagingRepo "tourbook/database/repository/messaging"
	schoolRepo "tourbook/database/repository/school"
	"tourbook/models"
	"tourbook/utils"

	"github.com/google/uuid"
)

// StartConversation opens a thread between a parent and a school's
// admin. If the pair already has a conversation the existing one is
// returned; the unique index makes the reuse race-free.
func (svc *DefaultMessagingService) StartConversation(parentID string, req models.StartConversationRequest) (*models.Conversation, error) {
	school, err := svc.SchoolRepo.GetByID(req.SchoolID)
	if err != nil {
		if errors.Is(err, schoolRepo.ErrNotFound) {
			return nil, utils.NewNotFoundError("school not found")
		}
		return nil, utils.NewInternalError("failed to load school", err)
	}

	conv := &models.Conversation{
		ID:            uuid.New().String(),
		SchoolID:      school.ID,
		ParentID:      parentID,
		SchoolAdminID: school.AdminID,
		BookingID:     req.BookingID,
	}
	err = svc.Repo.CreateConversation(conv)
	if err == nil {
		return conv, nil
	}
	if errors.Is(err, messagingRepo.ErrConversationExists) {
		existing, err := svc.Repo.GetConversationByParties(parentID, school.ID)
		if err != nil {
			return nil, utils.NewInternalError("failed to load conversation", err)
		}
		return existing, nil
	}
	return nil, utils.NewInternalError("failed to start conversation", err)
}

// ListConversations returns the caller's threads, most recent first.
func (svc *DefaultMessagingService) ListConversations(userID, role string) ([]models.Conversation, error) {
	var (
		convs []models.Conversation
		err   error
	)
	switch role {
	case models.RoleParent:
		convs, err = svc.Repo.ListByParent(userID)
	case models.RoleSchoolAdmin:
		school, serr := svc.SchoolRepo.GetByAdminID(userID)
		if serr != nil {
			return nil, utils.NewNotFoundError("no school linked to this account")
		}
		convs, err = svc.Repo.ListBySchool(school.ID)
	default:
		return nil, utils.NewForbiddenError("messaging is not available for this role")
	}
	if err != nil {
		return nil, utils.NewInternalError("failed to list conversations", err)
	}
	return convs, nil
}

// ListMessages returns a conversation's messages and marks the thread
// read for the caller.
func (svc *DefaultMessagingService) ListMessages(userID, role, conversationID string) ([]models.Message, error) {
	conv, readField, err := svc.participantConversation(userID, role, conversationID)
	if err != nil {
		return nil, err
	}

	msgs, err := svc.Repo.ListMessages(conv.ID)
	if err != nil {
		return nil, utils.NewInternalError("failed to list messages", err)
	}
	if err := svc.Repo.ResetUnread(conv.ID, readField); err != nil {
		return nil, utils.NewInternalError("failed to mark conversation read", err)
	}
	return msgs, nil
}

// SendMessage appends a message and bumps the counterpart's unread
// counter.
func (svc *DefaultMessagingService) SendMessage(userID, role, conversationID, body string) (*models.Message, error) {
	if body == "" {
		return nil, utils.NewValidationError("message body cannot be empty")
	}

	conv, readField, err := svc.participantConversation(userID, role, conversationID)
	if err != nil {
		return nil, err
	}

	// The sender's own counter is readField; the recipient gets the other one.
	recipientField := messagingRepo.UnreadFieldParent
	if readField == messagingRepo.UnreadFieldParent {
		recipientField = messagingRepo.UnreadFieldAdmin
	}

	msg := &models.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		SenderID:       userID,
		Body:           body,
	}
	if err := svc.Repo.AppendMessage(msg, recipientField); err != nil {
		return nil, utils.NewInternalError("failed to send message", err)
	}
	return msg, nil
}

// participantConversation loads a conversation and verifies the caller
// is one of its two participants, returning the caller's unread field.
func (svc *DefaultMessagingService) participantConversation(userID, role, conversationID string) (*models.Conversation, string, error) {
	conv, err := svc.Repo.GetConversationByID(conversationID)
	if err != nil {
		if errors.Is(err, messagingRepo.ErrNotFound) {
			return nil, "", utils.NewNotFoundError("conversation not found")
		}
		return nil, "", utils.NewInternalError("failed to load conversation", err)
	}

	switch role {
	case models.RoleParent:
		if conv.ParentID != userID {
			return nil, "", utils.NewNotFoundError("conversation not found")
		}
		return conv, messagingRepo.UnreadFieldParent, nil
	case models.RoleSchoolAdmin:
		if conv.SchoolAdminID != userID {
			return nil, "", utils.NewNotFoundError("conversation not found")
		}
		return conv, messagingRepo.UnreadFieldAdmin, nil
	}
	return nil, "", utils.NewForbiddenError("messaging is not available for this role")
}
