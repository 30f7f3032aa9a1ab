package usecase

import (
	"context"
	"errors"
	"time"

	"atelier-backend/internal/domain"

	"github.com/rs/zerolog"
)

type ChatRoomRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.ChatRoom, error)
	ListByMember(ctx context.Context, userID int64) ([]domain.ChatRoom, error)
	Save(ctx context.Context, r *domain.ChatRoom) error
}

type ChatRepo interface {
	ListByRoom(ctx context.Context, roomID int64, limit, offset int) ([]domain.Chat, error)
	Save(ctx context.Context, c *domain.Chat) error
}

type ChatService struct {
	ChatRooms ChatRoomRepo
	Chats     ChatRepo
	Users     UserRepo
	Log       zerolog.Logger
}

type CreateChatRoomInput struct {
	CreatorID int64 `json:"creatorId"`
	ClientID  int64 `json:"clientId"`
}

func (s *ChatService) CreateChatRoom(ctx context.Context, in CreateChatRoomInput) (int64, error) {
	creator, err := s.Users.GetByID(ctx, in.CreatorID)
	if errors.Is(err, ErrNoRows) {
		return 0, ErrNotFound("Creator not found")
	}
	if err != nil {
		s.Log.Error().Err(err).Msg("create chat room: creator lookup failed")
		return 0, ErrInternal("Could not create chat room")
	}
	if creator.Role != domain.RoleCreator {
		return 0, ErrBadRequest("Chatroom must have a creator")
	}

	client, err := s.Users.GetByID(ctx, in.ClientID)
	if errors.Is(err, ErrNoRows) {
		return 0, ErrNotFound("Client not found")
	}
	if err != nil {
		s.Log.Error().Err(err).Msg("create chat room: client lookup failed")
		return 0, ErrInternal("Could not create chat room")
	}
	if client.Role != domain.RoleClient {
		return 0, ErrBadRequest("Chatroom must have a client")
	}

	now := time.Now().UTC()
	room := &domain.ChatRoom{
		CreatorID: creator.ID,
		ClientID:  client.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.ChatRooms.Save(ctx, room); err != nil {
		s.Log.Error().Err(err).Msg("create chat room: save failed")
		return 0, ErrInternal("Could not create chat room")
	}
	return room.ID, nil
}

func (s *ChatService) GetChatRooms(ctx context.Context, user *domain.User) ([]domain.ChatRoom, error) {
	rooms, err := s.ChatRooms.ListByMember(ctx, user.ID)
	if err != nil {
		s.Log.Error().Err(err).Msg("get chat rooms: list failed")
		return nil, ErrInternal("Could not get chat rooms")
	}
	return rooms, nil
}

// memberRoom loads a room and checks the caller is one of its two parties.
func (s *ChatService) memberRoom(ctx context.Context, user *domain.User, roomID int64, generic string) (*domain.ChatRoom, error) {
	room, err := s.ChatRooms.GetByID(ctx, roomID)
	if errors.Is(err, ErrNoRows) {
		return nil, ErrNotFound("ChatRoom not found")
	}
	if err != nil {
		s.Log.Error().Err(err).Msg("chat room lookup failed")
		return nil, ErrInternal(generic)
	}
	if room.CreatorID != user.ID && room.ClientID != user.ID {
		return nil, ErrForbidden("Not authorized")
	}
	return room, nil
}

func (s *ChatService) GetChatRoom(ctx context.Context, user *domain.User, roomID int64) (*domain.ChatRoom, error) {
	return s.memberRoom(ctx, user, roomID, "Could not get chat room")
}

type CreateChatInput struct {
	ChatRoomID int64  `json:"chatRoomId"`
	Content    string `json:"content"`
}

func (s *ChatService) CreateChat(ctx context.Context, user *domain.User, in CreateChatInput) error {
	room, err := s.memberRoom(ctx, user, in.ChatRoomID, "Could not create chat")
	if err != nil {
		return err
	}

	isClient := user.Role == domain.RoleClient
	chat := &domain.Chat{
		Content:    in.Content,
		SenderID:   user.ID,
		ChatRoomID: room.ID,
		CreatedAt:  time.Now().UTC(),
	}
	// The recipient's side records Sent, the sender's own side Received.
	if isClient {
		chat.CreatorMessageStatus = domain.ChatSent
		chat.ClientMessageStatus = domain.ChatReceived
	} else {
		chat.ClientMessageStatus = domain.ChatSent
		chat.CreatorMessageStatus = domain.ChatReceived
	}
	if err := s.Chats.Save(ctx, chat); err != nil {
		s.Log.Error().Err(err).Msg("create chat: save failed")
		return ErrInternal("Could not create chat")
	}
	return nil
}

type LoadChatsInput struct {
	ChatRoomID int64 `json:"chatRoomId"`
	Page       int   `json:"page"`
}

func (s *ChatService) LoadChats(ctx context.Context, user *domain.User, in LoadChatsInput) ([]domain.Chat, error) {
	if _, err := s.memberRoom(ctx, user, in.ChatRoomID, "Could not load chats"); err != nil {
		return nil, err
	}
	chats, err := s.Chats.ListByRoom(ctx, in.ChatRoomID, PageItems, Offset(in.Page))
	if err != nil {
		s.Log.Error().Err(err).Msg("load chats: list failed")
		return nil, ErrInternal("Could not load chats")
	}
	return chats, nil
}
