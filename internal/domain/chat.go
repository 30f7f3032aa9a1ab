package domain

import "time"

type ChatStatus string

const (
	ChatSent     ChatStatus = "Sent"
	ChatReceived ChatStatus = "Received"
	ChatRead     ChatStatus = "Read"
)

type ChatRoom struct {
	ID        int64     `json:"id"`
	CreatorID int64     `json:"creatorId"`
	ClientID  int64     `json:"clientId"`
	Creator   *User     `json:"creator,omitempty"`
	Client    *User     `json:"client,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Chat struct {
	ID                   int64      `json:"id"`
	Content              string     `json:"content"`
	SenderID             int64      `json:"senderId"`
	ChatRoomID           int64      `json:"chatRoomId"`
	ClientMessageStatus  ChatStatus `json:"clientMessageStatus"`
	CreatorMessageStatus ChatStatus `json:"creatorMessageStatus"`
	CreatedAt            time.Time  `json:"createdAt"`
}
