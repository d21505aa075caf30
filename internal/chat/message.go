// Package chat holds parley's in-memory conversations: messages, reactions,
// delivery statuses and the summaries shown in the conversation list.
package chat

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Status tracks delivery of an outgoing message. It only moves forward.
type Status int

const (
	StatusNone Status = iota
	StatusSent
	StatusDelivered
	StatusRead
)

func (s Status) String() string {
	switch s {
	case StatusSent:
		return "sent"
	case StatusDelivered:
		return "delivered"
	case StatusRead:
		return "read"
	default:
		return ""
	}
}

// ParseStatus converts a status name into a Status. The empty string is StatusNone.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "":
		return StatusNone, nil
	case "sent":
		return StatusSent, nil
	case "delivered":
		return StatusDelivered, nil
	case "read":
		return StatusRead, nil
	}
	return StatusNone, fmt.Errorf("unknown status %q", s)
}

// ReplyRef is a snapshot of the message being replied to. It is never
// updated after the reply is created.
type ReplyRef struct {
	ID         int
	Text       string
	SenderName string
	IsMe       bool
}

// Reaction is one emoji on a message with the set of users who chose it.
// Count always equals len(Users).
type Reaction struct {
	Emoji string
	Count int
	Users []string
}

// HasUser reports whether userID contributed this reaction.
func (r Reaction) HasUser(userID string) bool {
	for _, u := range r.Users {
		if u == userID {
			return true
		}
	}
	return false
}

// AttachmentKind is the type of content attached to a message.
type AttachmentKind string

const (
	AttachPhoto    AttachmentKind = "photo"
	AttachCamera   AttachmentKind = "camera"
	AttachLocation AttachmentKind = "location"
	AttachContact  AttachmentKind = "contact"
	AttachDocument AttachmentKind = "document"
	AttachPoll     AttachmentKind = "poll"
	AttachEvent    AttachmentKind = "event"
)

// AttachmentKinds lists every kind in attachment menu order.
var AttachmentKinds = []AttachmentKind{
	AttachPhoto, AttachCamera, AttachLocation, AttachContact,
	AttachDocument, AttachPoll, AttachEvent,
}

// Label is the human name of the kind, e.g. "Photo".
func (k AttachmentKind) Label() string {
	switch k {
	case AttachPhoto:
		return "Photo"
	case AttachCamera:
		return "Camera"
	case AttachLocation:
		return "Location"
	case AttachContact:
		return "Contact"
	case AttachDocument:
		return "Document"
	case AttachPoll:
		return "Poll"
	case AttachEvent:
		return "Event"
	}
	return string(k)
}

// Icon returns an emoji shown next to attachments of this kind.
func (k AttachmentKind) Icon() string {
	switch k {
	case AttachPhoto, AttachCamera:
		return "📷"
	case AttachLocation:
		return "📍"
	case AttachContact:
		return "👤"
	case AttachDocument:
		return "📄"
	case AttachPoll:
		return "📊"
	case AttachEvent:
		return "📅"
	}
	return "📎"
}

// Valid reports whether k is one of the known kinds.
func (k AttachmentKind) Valid() bool {
	for _, known := range AttachmentKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Attachment describes content sent alongside (or instead of) message text.
// Detail carries the kind-specific payload: coordinates, a poll question,
// an event title, a phone number.
type Attachment struct {
	ID     string
	Kind   AttachmentKind
	Name   string
	Size   int64
	Detail string
}

// Summary renders the attachment as a single line, e.g. "📄 report.pdf (1.2 MB)".
func (a Attachment) Summary() string {
	s := a.Kind.Icon() + " "
	if a.Name != "" {
		s += a.Name
	} else {
		s += a.Kind.Label()
	}
	if a.Size > 0 {
		s += " (" + humanize.Bytes(uint64(a.Size)) + ")"
	}
	return s
}

// SimulatedAttachment stands in for what a platform picker (camera roll,
// contacts, location services) would return for kind. label, when set,
// replaces the default name or detail.
func SimulatedAttachment(kind AttachmentKind, label string) Attachment {
	a := Attachment{Kind: kind}
	switch kind {
	case AttachPhoto:
		a.Name, a.Size = "IMG_2041.jpg", 2_310_144
	case AttachCamera:
		a.Name, a.Size = "camera.jpg", 1_842_176
	case AttachLocation:
		a.Name, a.Detail = "Current location", "52.2297° N, 21.0122° E"
	case AttachContact:
		a.Name, a.Detail = "Anna Kowalska", "+48 600 100 200"
	case AttachDocument:
		a.Name, a.Size = "notes.pdf", 48_213
	case AttachPoll:
		a.Name, a.Detail = "Poll", "Where should we eat?"
	case AttachEvent:
		a.Name, a.Detail = "Event", "Friday 19:00"
	}
	if label != "" {
		switch kind {
		case AttachPoll, AttachEvent:
			a.Detail = label
		default:
			a.Name = label
		}
	}
	return a
}

// Message is a single chat message. Only Status and Reactions change after
// the message is created.
type Message struct {
	ID         int
	Text       string
	IsMe       bool
	Timestamp  time.Time
	Status     Status
	SenderName string
	ReplyTo    *ReplyRef
	Reactions  []Reaction
	Attachment *Attachment
}

// Ref snapshots m for use as a reply target.
func (m Message) Ref() ReplyRef {
	text := m.Text
	if text == "" && m.Attachment != nil {
		text = m.Attachment.Summary()
	}
	return ReplyRef{ID: m.ID, Text: text, SenderName: m.SenderName, IsMe: m.IsMe}
}

// Preview is the one-line text used in lists and notifications.
func (m Message) Preview() string {
	if m.Attachment != nil {
		if m.Text == "" {
			return m.Attachment.Summary()
		}
		return m.Attachment.Kind.Icon() + " " + m.Text
	}
	return m.Text
}

// Reaction returns the reaction with the given emoji, if any.
func (m Message) Reaction(emoji string) (Reaction, bool) {
	for _, r := range m.Reactions {
		if r.Emoji == emoji {
			return r, true
		}
	}
	return Reaction{}, false
}

// clone returns a deep copy so callers can't mutate store state.
func (m Message) clone() Message {
	if m.ReplyTo != nil {
		ref := *m.ReplyTo
		m.ReplyTo = &ref
	}
	if m.Attachment != nil {
		att := *m.Attachment
		m.Attachment = &att
	}
	m.Reactions = cloneReactions(m.Reactions)
	return m
}

func cloneReactions(rs []Reaction) []Reaction {
	if rs == nil {
		return nil
	}
	out := make([]Reaction, len(rs))
	for i, r := range rs {
		out[i] = Reaction{Emoji: r.Emoji, Count: r.Count, Users: append([]string(nil), r.Users...)}
	}
	return out
}

// Conversation is one chat with its messages in display order.
type Conversation struct {
	ID       string
	Name     string
	Avatar   string
	IsOnline bool
	Unread   int
	Messages []Message
}

func (c Conversation) clone() Conversation {
	msgs := make([]Message, len(c.Messages))
	for i, m := range c.Messages {
		msgs[i] = m.clone()
	}
	c.Messages = msgs
	return c
}

// Last returns the most recent message, if any.
func (c Conversation) Last() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// Summary is one row of the conversation list.
type Summary struct {
	ID            string
	Name          string
	Avatar        string
	LastMessage   string
	LastIsMe      bool
	Time          time.Time
	UnreadCount   int
	IsOnline      bool
	HasAttachment bool
}
