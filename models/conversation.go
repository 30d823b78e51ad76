package models

import "time"

// Conversation is a threaded exchange between one parent and one
// school's admin, scoped to a school. Unread counters are denormalized
// per participant.
type Conversation struct {
	ID            string       `bson:"id" json:"id"`
	SchoolID      string       `bson:"schoolId" json:"schoolId"`
	ParentID      string       `bson:"parentId" json:"parentId"`
	SchoolAdminID string       `bson:"schoolAdminId" json:"schoolAdminId"`
	BookingID     string       `bson:"bookingId,omitempty" json:"bookingId,omitempty"` // Optional booking context.
	LastMessage   *LastMessage `bson:"lastMessage,omitempty" json:"lastMessage,omitempty"`
	ParentUnread  int          `bson:"parentUnread" json:"parentUnread"`
	AdminUnread   int          `bson:"adminUnread" json:"adminUnread"`
	CreatedAt     time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// LastMessage is the denormalized preview of the newest message.
type LastMessage struct {
	Body     string    `bson:"body" json:"body"`
	SenderID string    `bson:"senderId" json:"senderId"`
	SentAt   time.Time `bson:"sentAt" json:"sentAt"`
}

// Message is a single message within a conversation.
type Message struct {
	ID             string    `bson:"id" json:"id"`
	ConversationID string    `bson:"conversationId" json:"conversationId"`
	SenderID       string    `bson:"senderId" json:"senderId"`
	Body           string    `bson:"body" json:"body"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}
