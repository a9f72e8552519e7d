package service

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/RubenLpc/BucovinaStay-backend/internal/activity"
	"github.com/RubenLpc/BucovinaStay-backend/internal/lifecycle"
	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/repository"
)

const (
	defaultInboxLimit = 20
	maxInboxLimit     = 50
)

// SendMessageInput is the body of POST /host-messages. Signed-in senders are
// identified by their account; the guest fields are used only for anonymous ones.
type SendMessageInput struct {
	ListingID  uint   `json:"listing_id"`
	Message    string `json:"message"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	GuestPhone string `json:"guest_phone"`
}

// InboxQuery are the host inbox query parameters.
type InboxQuery struct {
	Status string
	Page   int
	Limit  int
}

// InboxPage is one page of a host's inbox.
type InboxPage struct {
	Items []models.HostMessage `json:"items"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

type MessageService struct {
	messages repository.MessageRepository
	listings repository.ListingRepository
	sink     activity.Sink
}

func NewMessageService(messages repository.MessageRepository, listings repository.ListingRepository, sink activity.Sink) *MessageService {
	if sink == nil {
		sink = activity.Discard{}
	}
	return &MessageService{messages: messages, listings: listings, sink: sink}
}

func truncateRunes(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}

func validPhone(p string) bool {
	for _, r := range p {
		switch {
		case r >= '0' && r <= '9', r == ' ', r == '+', r == '-', r == '(', r == ')', r == '.':
		default:
			return false
		}
	}
	return true
}

// senderFields resolves who the host will see as the sender.
func senderFields(sender *models.User, in SendMessageInput) (name, email, phone string, err error) {
	phone = strings.TrimSpace(in.GuestPhone)
	if utf8.RuneCountInString(phone) > models.MaxGuestPhoneLen || !validPhone(phone) {
		return "", "", "", models.NewValidationError("guest_phone is not a valid phone number")
	}
	if sender != nil {
		return truncateRunes(sender.Name, models.MaxGuestNameLen),
			truncateRunes(sender.Email, models.MaxGuestEmailLen), phone, nil
	}

	name = strings.Join(strings.Fields(in.GuestName), " ")
	if utf8.RuneCountInString(name) > models.MaxGuestNameLen {
		return "", "", "", models.NewValidationError("guest_name too long (max 80 characters)")
	}
	email = strings.TrimSpace(in.GuestEmail)
	if email == "" {
		return "", "", "", models.NewValidationError("guest_email is required")
	}
	if utf8.RuneCountInString(email) > models.MaxGuestEmailLen {
		return "", "", "", models.NewValidationError("guest_email too long (max 120 characters)")
	}
	if addr, perr := mail.ParseAddress(email); perr != nil || addr.Address != email {
		return "", "", "", models.NewValidationError("guest_email is not a valid address")
	}
	return name, email, phone, nil
}

// Send stores a message for the host of a live listing and records
// message_received on the host's activity feed. sender is nil for anonymous guests.
func (s *MessageService) Send(ctx context.Context, sender *models.User, in SendMessageInput) (*models.HostMessage, error) {
	if in.ListingID == 0 {
		return nil, models.NewValidationError("listing_id is required")
	}
	text := strings.TrimSpace(in.Message)
	n := utf8.RuneCountInString(text)
	if n < models.MinMessageLen {
		return nil, models.NewValidationError("message too short (min 10 characters)")
	}
	if n > models.MaxMessageLen {
		return nil, models.NewValidationError("message too long (max 1200 characters)")
	}
	name, email, phone, err := senderFields(sender, in)
	if err != nil {
		return nil, err
	}

	l, err := s.listings.GetByID(ctx, in.ListingID)
	if err != nil {
		return nil, err
	}
	if l.Status != models.StatusLive {
		return nil, models.NewNotFoundError("Listing", in.ListingID)
	}

	msg := &models.HostMessage{
		HostID:     l.HostID,
		ListingID:  l.ID,
		GuestName:  name,
		GuestEmail: email,
		GuestPhone: phone,
		Message:    text,
		Status:     models.MessageNew,
	}
	if sender != nil {
		if l.IsOwnedBy(sender.ID) {
			return nil, models.NewForbiddenError("hosts cannot message their own listing")
		}
		id := sender.ID
		msg.FromUserID = &id
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	listingID := l.ID
	s.sink.Record(ctx, activity.Event{
		HostID:        l.HostID,
		Type:          models.ActivityMessageReceived,
		Actor:         models.ActorGuest,
		ListingID:     &listingID,
		PropertyTitle: l.Title,
		Meta:          map[string]any{"message_id": msg.ID},
	})
	return msg, nil
}

// Inbox returns a page of hostID's messages, newest first.
func (s *MessageService) Inbox(ctx context.Context, hostID uint, q InboxQuery) (*InboxPage, error) {
	var status models.MessageStatus
	if st := strings.TrimSpace(q.Status); st != "" && st != "all" {
		status = models.MessageStatus(st)
		if !status.Valid() {
			return nil, models.NewValidationError("status must be all, new or read")
		}
	}
	limit := q.Limit
	switch {
	case limit <= 0:
		limit = defaultInboxLimit
	case limit > maxInboxLimit:
		limit = maxInboxLimit
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	items, total, err := s.messages.Inbox(ctx, repository.InboxFilter{
		HostID: hostID,
		Status: status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.HostMessage{}
	}
	return &InboxPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *MessageService) UnreadCount(ctx context.Context, hostID uint) (int64, error) {
	return s.messages.UnreadCount(ctx, hostID)
}

// SetStatus marks one message read or unread. Only the receiving host may change it.
func (s *MessageService) SetStatus(ctx context.Context, actor lifecycle.Actor, id uint, status models.MessageStatus) (*models.HostMessage, error) {
	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg.HostID != actor.UserID {
		return nil, models.NewForbiddenError("not your message")
	}
	if msg.Status == status {
		return msg, nil
	}
	if err := s.messages.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}
	msg.Status = status
	return msg, nil
}

// MarkAllRead marks every new message of hostID read and returns how many changed.
func (s *MessageService) MarkAllRead(ctx context.Context, hostID uint) (int64, error) {
	return s.messages.MarkAllRead(ctx, hostID)
}
