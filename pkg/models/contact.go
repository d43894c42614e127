package models

import "time"

// ContactRole is the author side of a contact-thread message.
type ContactRole string

const (
	ContactRoleMe   ContactRole = "me"
	ContactRoleThem ContactRole = "them"
)

// ContactMessage is one message inside a contact thread.
type ContactMessage struct {
	ID        string      `json:"id"`
	Role      ContactRole `json:"role"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"createdAt"`
}

// ContactThread is a lightweight DM-style thread anchored to a feed
// item. ItemTitle is a snapshot taken when the thread is created and is
// not kept in sync with the item afterwards.
type ContactThread struct {
	ThreadID  string           `json:"threadId"`
	ItemID    string           `json:"itemId"`
	ItemTitle string           `json:"itemTitle"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
	Messages  []ContactMessage `json:"messages"`
}

// LastMessage returns the newest message of the thread, or nil when the
// thread is empty. Used for list previews.
func (t *ContactThread) LastMessage() *ContactMessage {
	if t == nil || len(t.Messages) == 0 {
		return nil
	}
	return &t.Messages[len(t.Messages)-1]
}
