package chat

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/logger"
)

// Store holds conversations in memory. All methods are safe for concurrent
// use and return copies, never references into store state.
type Store struct {
	mu     sync.RWMutex
	convs  []*Conversation
	byID   map[string]*Conversation
	nextID int
	now    func() time.Time
	userID string
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for new messages.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithUserID sets the id recorded for the local user's reactions.
func WithUserID(id string) Option {
	return func(s *Store) { s.userID = id }
}

// NewStore creates a store seeded with convs. Conversations without an id
// get a fresh UUID.
func NewStore(convs []Conversation, opts ...Option) *Store {
	s := &Store{
		byID:   make(map[string]*Conversation),
		nextID: 1,
		now:    time.Now,
		userID: "me",
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, c := range convs {
		c = c.clone()
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		for i := range c.Messages {
			c.Messages[i].Reactions = normalizeReactions(c.Messages[i].Reactions)
			if c.Messages[i].ID >= s.nextID {
				s.nextID = c.Messages[i].ID + 1
			}
		}
		conv := &c
		s.convs = append(s.convs, conv)
		s.byID[c.ID] = conv
	}
	logger.WithComponent("store").Debug("store created", "conversations", len(s.convs), "next_id", s.nextID)
	return s
}

// UserID returns the local user's id.
func (s *Store) UserID() string {
	return s.userID
}

func (s *Store) conversation(id string) (*Conversation, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, perrors.ConversationNotFound(id)
	}
	return c, nil
}

func (c *Conversation) index(msgID int) int {
	for i := range c.Messages {
		if c.Messages[i].ID == msgID {
			return i
		}
	}
	return -1
}

func (s *Store) message(convID string, msgID int) (*Conversation, *Message, error) {
	c, err := s.conversation(convID)
	if err != nil {
		return nil, nil, err
	}
	i := c.index(msgID)
	if i < 0 {
		return nil, nil, perrors.MessageNotFound(convID, msgID)
	}
	return c, &c.Messages[i], nil
}

// Conversation returns a copy of the conversation.
func (s *Store) Conversation(id string) (Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, err := s.conversation(id)
	if err != nil {
		return Conversation{}, err
	}
	return c.clone(), nil
}

// Messages returns a copy of the conversation's messages in display order.
func (s *Store) Messages(convID string) ([]Message, error) {
	c, err := s.Conversation(convID)
	if err != nil {
		return nil, err
	}
	return c.Messages, nil
}

// Message returns a copy of one message.
func (s *Store) Message(convID string, msgID int) (Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, m, err := s.message(convID, msgID)
	if err != nil {
		return Message{}, err
	}
	return m.clone(), nil
}

// Send appends an outgoing message. The text is trimmed and must not be empty.
func (s *Store) Send(convID, text string, replyTo *ReplyRef) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, perrors.EmptyMessage()
	}
	return s.appendOutgoing(convID, text, replyTo, nil)
}

// SendAttachment appends an outgoing message carrying att. An empty
// attachment id is replaced by a fresh UUID.
func (s *Store) SendAttachment(convID string, att Attachment, caption string) (Message, error) {
	if !att.Kind.Valid() {
		return Message{}, perrors.E(perrors.Op("chat.SendAttachment"), perrors.KindInvalid, "unknown attachment kind "+string(att.Kind))
	}
	if att.ID == "" {
		att.ID = uuid.NewString()
	}
	return s.appendOutgoing(convID, strings.TrimSpace(caption), nil, &att)
}

func (s *Store) appendOutgoing(convID, text string, replyTo *ReplyRef, att *Attachment) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.conversation(convID)
	if err != nil {
		return Message{}, err
	}
	msg := Message{
		ID:         s.nextID,
		Text:       text,
		IsMe:       true,
		Timestamp:  s.now(),
		Status:     StatusSent,
		Attachment: att,
	}
	if replyTo != nil {
		ref := *replyTo
		msg.ReplyTo = &ref
	}
	s.nextID++
	c.Messages = append(c.Messages, msg)

	logger.WithConversation(convID).Info("message sent", "id", msg.ID, "reply", replyTo != nil, "attachment", att != nil)
	return msg.clone(), nil
}

// Receive appends an incoming message and bumps the unread counter.
// An empty sender defaults to the conversation name.
func (s *Store) Receive(convID, text, sender string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, perrors.EmptyMessage()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.conversation(convID)
	if err != nil {
		return Message{}, err
	}
	if sender == "" {
		sender = c.Name
	}
	msg := Message{
		ID:         s.nextID,
		Text:       text,
		Timestamp:  s.now(),
		SenderName: sender,
	}
	s.nextID++
	c.Messages = append(c.Messages, msg)
	c.Unread++

	logger.WithConversation(convID).Info("message received", "id", msg.ID, "unread", c.Unread)
	return msg.clone(), nil
}

// UpdateStatus moves an outgoing message's status forward. A status that
// isn't ahead of the current one is ignored. Returns whether it changed.
func (s *Store) UpdateStatus(convID string, msgID int, status Status) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, m, err := s.message(convID, msgID)
	if err != nil {
		return false, err
	}
	if status <= m.Status {
		return false, nil
	}
	m.Status = status
	logger.WithConversation(convID).Debug("status updated", "id", msgID, "status", status.String())
	return true, nil
}

// ToggleReaction adds userID's emoji reaction, or removes it if the user
// already chose that emoji. Returns true when the reaction was added.
func (s *Store) ToggleReaction(convID string, msgID int, emoji, userID string) (bool, error) {
	if err := ValidateEmoji(emoji); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, m, err := s.message(convID, msgID)
	if err != nil {
		return false, err
	}
	var added bool
	m.Reactions, added = toggleReaction(m.Reactions, emoji, userID)
	logger.WithConversation(convID).Debug("reaction toggled", "id", msgID, "emoji", emoji, "user", userID, "added", added)
	return added, nil
}

// AddReaction records userID's emoji reaction. Repeats are no-ops.
func (s *Store) AddReaction(convID string, msgID int, emoji, userID string) (bool, error) {
	if err := ValidateEmoji(emoji); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, m, err := s.message(convID, msgID)
	if err != nil {
		return false, err
	}
	var changed bool
	m.Reactions, changed = addReaction(m.Reactions, emoji, userID)
	return changed, nil
}

// RemoveReaction drops userID's emoji reaction. Removing an absent
// reaction is a no-op.
func (s *Store) RemoveReaction(convID string, msgID int, emoji, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, m, err := s.message(convID, msgID)
	if err != nil {
		return false, err
	}
	var changed bool
	m.Reactions, changed = removeReaction(m.Reactions, emoji, userID)
	return changed, nil
}

// Backfill merges older (or late) messages into the conversation, keeping
// the whole list in chronological order. Messages already present by id
// are skipped. Messages with id 0 are assigned a fresh id.
func (s *Store) Backfill(convID string, msgs []Message) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.conversation(convID)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, m := range msgs {
		if m.ID != 0 && c.index(m.ID) >= 0 {
			continue
		}
		m = m.clone()
		if m.ID == 0 {
			m.ID = s.nextID
		}
		if m.ID >= s.nextID {
			s.nextID = m.ID + 1
		}
		m.Reactions = normalizeReactions(m.Reactions)
		c.Messages = append(c.Messages, m)
		added++
	}

	sort.SliceStable(c.Messages, func(i, j int) bool {
		return c.Messages[i].Timestamp.Before(c.Messages[j].Timestamp)
	})

	logger.WithConversation(convID).Info("backfilled", "added", added, "total", len(c.Messages))
	return added, nil
}

// MarkRead clears the unread counter.
func (s *Store) MarkRead(convID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.conversation(convID)
	if err != nil {
		return err
	}
	c.Unread = 0
	return nil
}

// SetOnline updates the presence indicator.
func (s *Store) SetOnline(convID string, online bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.conversation(convID)
	if err != nil {
		return err
	}
	c.IsOnline = online
	return nil
}

// Summaries returns one row per conversation, most recent activity first.
// A non-empty filter keeps conversations whose name or last message
// contains it, case-insensitively.
func (s *Store) Summaries(filter string) []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filter = strings.ToLower(strings.TrimSpace(filter))
	out := make([]Summary, 0, len(s.convs))
	for _, c := range s.convs {
		sum := Summary{
			ID:          c.ID,
			Name:        c.Name,
			Avatar:      c.Avatar,
			UnreadCount: c.Unread,
			IsOnline:    c.IsOnline,
		}
		if last, ok := c.Last(); ok {
			sum.LastMessage = last.Preview()
			sum.LastIsMe = last.IsMe
			sum.Time = last.Timestamp
			sum.HasAttachment = last.Attachment != nil
		}
		if filter != "" &&
			!strings.Contains(strings.ToLower(sum.Name), filter) &&
			!strings.Contains(strings.ToLower(sum.LastMessage), filter) {
			continue
		}
		out = append(out, sum)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.After(out[j].Time)
	})
	return out
}

// TotalUnread sums unread counters across conversations.
func (s *Store) TotalUnread() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, c := range s.convs {
		n += c.Unread
	}
	return n
}
