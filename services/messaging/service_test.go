package messaging

import (
	"net/http"
	"testing"

	messagingRepo "tourbook/database/repository/messaging"
	schoolRepo "tourbook/database/repository/school"
	"tourbook/models"
	"tourbook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessagingRepo struct {
	convs    map[string]*models.Conversation
	messages map[string][]models.Message

	createErr error
	resets    []string
	bumps     []string
}

func newFakeMessagingRepo() *fakeMessagingRepo {
	return &fakeMessagingRepo{
		convs:    map[string]*models.Conversation{},
		messages: map[string][]models.Message{},
	}
}

func (f *fakeMessagingRepo) CreateConversation(conv *models.Conversation) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, c := range f.convs {
		if c.ParentID == conv.ParentID && c.SchoolID == conv.SchoolID {
			return messagingRepo.ErrConversationExists
		}
	}
	f.convs[conv.ID] = conv
	return nil
}

func (f *fakeMessagingRepo) GetConversationByID(id string) (*models.Conversation, error) {
	c, ok := f.convs[id]
	if !ok {
		return nil, messagingRepo.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeMessagingRepo) GetConversationByParties(parentID, schoolID string) (*models.Conversation, error) {
	for _, c := range f.convs {
		if c.ParentID == parentID && c.SchoolID == schoolID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, messagingRepo.ErrNotFound
}

func (f *fakeMessagingRepo) ListByParent(parentID string) ([]models.Conversation, error) {
	var out []models.Conversation
	for _, c := range f.convs {
		if c.ParentID == parentID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeMessagingRepo) ListBySchool(schoolID string) ([]models.Conversation, error) {
	var out []models.Conversation
	for _, c := range f.convs {
		if c.SchoolID == schoolID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeMessagingRepo) AppendMessage(msg *models.Message, unreadField string) error {
	f.messages[msg.ConversationID] = append(f.messages[msg.ConversationID], *msg)
	f.bumps = append(f.bumps, unreadField)
	return nil
}

func (f *fakeMessagingRepo) ListMessages(conversationID string) ([]models.Message, error) {
	return f.messages[conversationID], nil
}

func (f *fakeMessagingRepo) ResetUnread(conversationID, unreadField string) error {
	f.resets = append(f.resets, unreadField)
	return nil
}

type fakeSchoolRepo struct {
	school *models.School
}

func (f *fakeSchoolRepo) Create(s *models.School) error { return nil }
func (f *fakeSchoolRepo) Update(s *models.School) error { return nil }

func (f *fakeSchoolRepo) GetByID(id string) (*models.School, error) {
	if f.school != nil && f.school.ID == id {
		return f.school, nil
	}
	return nil, schoolRepo.ErrNotFound
}

func (f *fakeSchoolRepo) GetByAdminID(adminID string) (*models.School, error) {
	if f.school != nil && f.school.AdminID == adminID {
		return f.school, nil
	}
	return nil, schoolRepo.ErrNotFound
}

func (f *fakeSchoolRepo) GetAll() ([]models.School, error) { return nil, nil }
func (f *fakeSchoolRepo) ListVerified(filter schoolRepo.SchoolFilter) ([]models.School, error) {
	return nil, nil
}
func (f *fakeSchoolRepo) SetVerified(id string, verified bool) error { return nil }
func (f *fakeSchoolRepo) AddRating(schoolID string, r models.SchoolRating) error { return nil }
func (f *fakeSchoolRepo) CountByVerification() ([]models.StatusCount, error) { return nil, nil }

func newMessagingService() (*DefaultMessagingService, *fakeMessagingRepo) {
	repo := newFakeMessagingRepo()
	sr := &fakeSchoolRepo{school: &models.School{ID: "school-1", AdminID: "admin-1", Verified: true}}
	return &DefaultMessagingService{Repo: repo, SchoolRepo: sr}, repo
}

func TestStartConversation(t *testing.T) {
	svc, repo := newMessagingService()

	conv, err := svc.StartConversation("parent-1", models.StartConversationRequest{SchoolID: "school-1"})
	require.NoError(t, err)
	assert.Equal(t, "admin-1", conv.SchoolAdminID)
	assert.Contains(t, repo.convs, conv.ID)

	// Starting again returns the same thread.
	again, err := svc.StartConversation("parent-1", models.StartConversationRequest{SchoolID: "school-1"})
	require.NoError(t, err)
	assert.Equal(t, conv.ID, again.ID)
	assert.Len(t, repo.convs, 1)
}

func TestStartConversationUnknownSchool(t *testing.T) {
	svc, _ := newMessagingService()

	_, err := svc.StartConversation("parent-1", models.StartConversationRequest{SchoolID: "missing"})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, utils.HTTPStatus(err))
}

func TestSendMessageBumpsRecipientUnread(t *testing.T) {
	svc, repo := newMessagingService()
	conv, err := svc.StartConversation("parent-1", models.StartConversationRequest{SchoolID: "school-1"})
	require.NoError(t, err)

	// Parent sends: the admin's counter is bumped.
	_, err = svc.SendMessage("parent-1", models.RoleParent, conv.ID, "Hello!")
	require.NoError(t, err)
	require.Equal(t, []string{messagingRepo.UnreadFieldAdmin}, repo.bumps)

	// Admin replies: the parent's counter is bumped.
	_, err = svc.SendMessage("admin-1", models.RoleSchoolAdmin, conv.ID, "Hi there")
	require.NoError(t, err)
	assert.Equal(t, messagingRepo.UnreadFieldParent, repo.bumps[1])
}

func TestSendMessageValidation(t *testing.T) {
	svc, repo := newMessagingService()
	conv, err := svc.StartConversation("parent-1", models.StartConversationRequest{SchoolID: "school-1"})
	require.NoError(t, err)

	_, err = svc.SendMessage("parent-1", models.RoleParent, conv.ID, "")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, utils.HTTPStatus(err))

	// A stranger cannot post into the thread.
	_, err = svc.SendMessage("parent-2", models.RoleParent, conv.ID, "Hello?")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, utils.HTTPStatus(err))

	// System admins have no messaging surface.
	_, err = svc.SendMessage("root", models.RoleSystemAdmin, conv.ID, "Hello?")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, utils.HTTPStatus(err))

	assert.Empty(t, repo.messages[conv.ID])
}

func TestListMessagesMarksRead(t *testing.T) {
	svc, repo := newMessagingService()
	conv, err := svc.StartConversation("parent-1", models.StartConversationRequest{SchoolID: "school-1"})
	require.NoError(t, err)
	_, err = svc.SendMessage("parent-1", models.RoleParent, conv.ID, "Hello!")
	require.NoError(t, err)

	msgs, err := svc.ListMessages("admin-1", models.RoleSchoolAdmin, conv.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
	assert.Equal(t, []string{messagingRepo.UnreadFieldAdmin}, repo.resets)
}

func TestListConversationsByRole(t *testing.T) {
	svc, _ := newMessagingService()
	_, err := svc.StartConversation("parent-1", models.StartConversationRequest{SchoolID: "school-1"})
	require.NoError(t, err)

	parentConvs, err := svc.ListConversations("parent-1", models.RoleParent)
	require.NoError(t, err)
	assert.Len(t, parentConvs, 1)

	adminConvs, err := svc.ListConversations("admin-1", models.RoleSchoolAdmin)
	require.NoError(t, err)
	assert.Len(t, adminConvs, 1)

	_, err = svc.ListConversations("root", models.RoleSystemAdmin)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, utils.HTTPStatus(err))
}
