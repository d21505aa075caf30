package chat

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/logger"
)

// SeedFile is the YAML layout of a seed file.
//
// A message's time is either an absolute RFC 3339 "timestamp", or a
// "day" offset from today (0 today, -1 yesterday) plus a "time" of day.
type SeedFile struct {
	Conversations []SeedConversation `yaml:"conversations"`
}

type SeedConversation struct {
	ID       string        `yaml:"id,omitempty"`
	Name     string        `yaml:"name"`
	Avatar   string        `yaml:"avatar,omitempty"`
	Online   bool          `yaml:"online,omitempty"`
	Unread   int           `yaml:"unread,omitempty"`
	Messages []SeedMessage `yaml:"messages"`
}

type SeedMessage struct {
	ID         int             `yaml:"id"`
	Text       string          `yaml:"text"`
	Me         bool            `yaml:"me,omitempty"`
	Sender     string          `yaml:"sender,omitempty"`
	Timestamp  string          `yaml:"timestamp,omitempty"`
	Day        int             `yaml:"day,omitempty"`
	Time       string          `yaml:"time,omitempty"`
	Status     string          `yaml:"status,omitempty"`
	ReplyTo    int             `yaml:"reply_to,omitempty"`
	Reactions  []SeedReaction  `yaml:"reactions,omitempty"`
	Attachment *SeedAttachment `yaml:"attachment,omitempty"`
}

type SeedReaction struct {
	Emoji string   `yaml:"emoji"`
	Users []string `yaml:"users"`
}

type SeedAttachment struct {
	Kind   string `yaml:"kind"`
	Name   string `yaml:"name,omitempty"`
	Size   int64  `yaml:"size,omitempty"`
	Detail string `yaml:"detail,omitempty"`
}

// LoadSeed reads a YAML seed file and resolves relative times against now.
func LoadSeed(path string, now time.Time) ([]Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, perrors.SeedLoadFailed(path, err)
	}
	var f SeedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, perrors.SeedLoadFailed(path, err)
	}
	convs, err := f.Resolve(now)
	if err != nil {
		return nil, err
	}
	logger.WithComponent("seed").Info("seed loaded", "path", path, "conversations", len(convs))
	return convs, nil
}

// WriteSeed writes f to path as YAML.
func WriteSeed(path string, f SeedFile) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return perrors.E(perrors.Op("chat.WriteSeed"), perrors.KindSeed, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return perrors.E(perrors.Op("chat.WriteSeed"), perrors.KindIO, "failed to write "+path, err)
	}
	return nil
}

// Resolve validates the seed and converts it into conversations.
func (f SeedFile) Resolve(now time.Time) ([]Conversation, error) {
	if len(f.Conversations) == 0 {
		return nil, perrors.SeedInvalid("seed has no conversations")
	}

	ids := make(map[string]bool)
	convs := make([]Conversation, 0, len(f.Conversations))
	for ci, sc := range f.Conversations {
		if strings.TrimSpace(sc.Name) == "" {
			return nil, perrors.SeedInvalid(fmt.Sprintf("conversation %d has no name", ci+1))
		}
		if sc.ID != "" {
			if ids[sc.ID] {
				return nil, perrors.SeedInvalid(fmt.Sprintf("duplicate conversation id %q", sc.ID))
			}
			ids[sc.ID] = true
		}
		conv := Conversation{
			ID:       sc.ID,
			Name:     sc.Name,
			Avatar:   sc.Avatar,
			IsOnline: sc.Online,
			Unread:   sc.Unread,
		}

		byID := make(map[int]Message)
		for _, sm := range sc.Messages {
			msg, err := sm.resolve(sc.Name, now, byID)
			if err != nil {
				return nil, perrors.SeedInvalid(fmt.Sprintf("%s: %v", sc.Name, err))
			}
			byID[msg.ID] = msg
			conv.Messages = append(conv.Messages, msg)
		}
		convs = append(convs, conv)
	}
	return convs, nil
}

func (sm SeedMessage) resolve(convName string, now time.Time, earlier map[int]Message) (Message, error) {
	if sm.ID <= 0 {
		return Message{}, fmt.Errorf("message ids must be positive, got %d", sm.ID)
	}
	if _, dup := earlier[sm.ID]; dup {
		return Message{}, fmt.Errorf("duplicate message id %d", sm.ID)
	}
	if strings.TrimSpace(sm.Text) == "" && sm.Attachment == nil {
		return Message{}, fmt.Errorf("message %d has neither text nor attachment", sm.ID)
	}

	ts, err := sm.timestamp(now)
	if err != nil {
		return Message{}, fmt.Errorf("message %d: %w", sm.ID, err)
	}
	status, err := ParseStatus(sm.Status)
	if err != nil {
		return Message{}, fmt.Errorf("message %d: %w", sm.ID, err)
	}

	msg := Message{
		ID:        sm.ID,
		Text:      sm.Text,
		IsMe:      sm.Me,
		Timestamp: ts,
		Status:    status,
	}
	if !sm.Me {
		msg.SenderName = sm.Sender
		if msg.SenderName == "" {
			msg.SenderName = convName
		}
	}

	if sm.ReplyTo != 0 {
		target, ok := earlier[sm.ReplyTo]
		if !ok {
			return Message{}, fmt.Errorf("message %d replies to unknown message %d", sm.ID, sm.ReplyTo)
		}
		ref := target.Ref()
		msg.ReplyTo = &ref
	}

	for _, r := range sm.Reactions {
		if err := ValidateEmoji(r.Emoji); err != nil {
			return Message{}, fmt.Errorf("message %d: %w", sm.ID, err)
		}
		msg.Reactions = append(msg.Reactions, Reaction{Emoji: r.Emoji, Users: r.Users})
	}
	msg.Reactions = normalizeReactions(msg.Reactions)

	if sa := sm.Attachment; sa != nil {
		kind := AttachmentKind(sa.Kind)
		if !kind.Valid() {
			return Message{}, fmt.Errorf("message %d: unknown attachment kind %q", sm.ID, sa.Kind)
		}
		msg.Attachment = &Attachment{Kind: kind, Name: sa.Name, Size: sa.Size, Detail: sa.Detail}
	}
	return msg, nil
}

func (sm SeedMessage) timestamp(now time.Time) (time.Time, error) {
	if sm.Timestamp != "" {
		return time.Parse(time.RFC3339, sm.Timestamp)
	}
	day := now.AddDate(0, 0, sm.Day)
	hour, minute := 0, 0
	if sm.Time != "" {
		t, err := time.Parse("15:04", sm.Time)
		if err != nil {
			return time.Time{}, fmt.Errorf("bad time %q, want HH:MM", sm.Time)
		}
		hour, minute = t.Hour(), t.Minute()
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location()), nil
}

// DefaultSeedFile is the built-in demo: a movie-night conversation with
// Anna over four days plus a few other chats for the list.
func DefaultSeedFile() SeedFile {
	return SeedFile{Conversations: []SeedConversation{
		{
			ID:     "anna",
			Name:   "Anna",
			Avatar: "👩",
			Online: true,
			Messages: []SeedMessage{
				{ID: 1, Text: "Hi! How are you?", Day: -3, Time: "10:30"},
				{ID: 2, Text: "Hey! Great, thanks! And you?", Me: true, Day: -3, Time: "10:31",
					Reactions: []SeedReaction{{Emoji: "❤️", Users: []string{"anna"}}}},
				{ID: 3, Text: "Good too! What are we doing tonight?", Day: -2, Time: "14:20"},
				{ID: 4, Text: "Maybe the cinema?", Me: true, Day: -2, Time: "14:25",
					Reactions: []SeedReaction{
						{Emoji: "👍", Users: []string{"anna", "me"}},
						{Emoji: "🎬", Users: []string{"anna"}},
					}},
				{ID: 5, Text: "Good idea! I'll check what's on", Day: -1, Time: "09:15"},
				{ID: 6, Text: "Great! What kind of films are you into?", Me: true, Day: -1, Time: "09:20"},
				{ID: 7, Text: "Maybe something with action, or a comedy?", Day: 0, Time: "08:30",
					Reactions: []SeedReaction{
						{Emoji: "😂", Users: []string{"me"}},
						{Emoji: "🎭", Users: []string{"anna"}},
					}},
				{ID: 8, Text: "Sounds great! I'll check the listings", Me: true, Day: 0, Time: "08:35"},
				{ID: 9, Text: "Perfect! What time shall we meet?", Day: 0, Time: "09:10", ReplyTo: 8},
				{ID: 10, Text: "Maybe 19:00? The show starts at 20:00", Me: true, Day: 0, Time: "09:15", ReplyTo: 9,
					Reactions: []SeedReaction{
						{Emoji: "👍", Users: []string{"anna"}},
						{Emoji: "⏰", Users: []string{"me"}},
					}},
			},
		},
		{
			ID:     "marek",
			Name:   "Marek",
			Avatar: "🧔",
			Unread: 2,
			Messages: []SeedMessage{
				{ID: 101, Text: "Did you push the fix?", Day: -1, Time: "17:02"},
				{ID: 102, Text: "Here are the build logs", Day: 0, Time: "07:48",
					Attachment: &SeedAttachment{Kind: "document", Name: "build.log", Size: 48213}},
			},
		},
		{
			ID:     "climbing",
			Name:   "Climbing crew",
			Avatar: "🧗",
			Online: true,
			Unread: 5,
			Messages: []SeedMessage{
				{ID: 201, Text: "Wall opens at 18:00 on Thursday", Sender: "Ola", Day: -2, Time: "12:00"},
				{ID: 202, Text: "I'm in", Me: true, Day: -2, Time: "12:05", Status: "read"},
				{ID: 203, Text: "Meet here", Sender: "Tomek", Day: 0, Time: "06:55",
					Attachment: &SeedAttachment{Kind: "location", Name: "Boulder Bar", Detail: "52.2297, 21.0122"}},
			},
		},
		{
			ID:     "mom",
			Name:   "Mom",
			Avatar: "👵",
			Messages: []SeedMessage{
				{ID: 301, Text: "Call me when you can ❤️", Day: -6, Time: "19:40"},
				{ID: 302, Text: "Will do!", Me: true, Day: -6, Time: "20:12", Status: "read"},
			},
		},
	}}
}

// DefaultSeed resolves the built-in demo against now.
func DefaultSeed(now time.Time) []Conversation {
	convs, err := DefaultSeedFile().Resolve(now)
	if err != nil {
		// The built-in seed is static data; failing here is a programming error.
		panic(fmt.Sprintf("default seed is invalid: %v", err))
	}
	return convs
}
