// Package timeline turns a conversation's messages into display items,
// inserting a date separator before the first message of each calendar day.
//
// Group never sorts. Input order is display order; if the caller passes
// out-of-order timestamps, separators for a day can repeat. chat.Store keeps
// messages chronological so this never happens for store output.
package timeline

import (
	"strconv"
	"time"

	"github.com/zhubert/parley/internal/chat"
)

// UnknownDate keys the separator of a message with no usable timestamp.
const UnknownDate = "unknown"

// Kind tags an Item.
type Kind int

const (
	KindMessage Kind = iota
	KindSeparator
)

// Separator marks a change of calendar day.
type Separator struct {
	ID          string // "date-" + Date
	Date        string // YYYY-MM-DD, or UnknownDate
	DisplayDate string // "Today", "Yesterday", or e.g. "Thu 19 June"
}

// Item is either a message or a separator.
type Item struct {
	Message   *chat.Message
	Separator *Separator
}

// Kind reports which half of the union is set.
func (it Item) Kind() Kind {
	if it.Separator != nil {
		return KindSeparator
	}
	return KindMessage
}

// ID is a stable key for list diffing: the separator id or "msg-<id>".
func (it Item) ID() string {
	if it.Separator != nil {
		return it.Separator.ID
	}
	return "msg-" + strconv.Itoa(it.Message.ID)
}

// Group interleaves separators into messages in a single pass. now decides
// which day is "Today"; loc is the zone calendar days are computed in.
// The returned items point into a copy of messages.
func Group(messages []chat.Message, now time.Time, loc *time.Location) []Item {
	if len(messages) == 0 {
		return []Item{}
	}
	if loc == nil {
		loc = time.Local
	}

	msgs := make([]chat.Message, len(messages))
	copy(msgs, messages)

	today := DateKey(now, loc)
	yesterday := DateKey(now.In(loc).AddDate(0, 0, -1), loc)

	items := make([]Item, 0, len(msgs)+len(msgs)/4+1)
	last := ""
	for i := range msgs {
		key := DateKey(msgs[i].Timestamp, loc)
		// Unknown timestamps never match the previous key.
		if key != last || key == UnknownDate {
			items = append(items, Item{Separator: &Separator{
				ID:          "date-" + key,
				Date:        key,
				DisplayDate: displayDate(msgs[i].Timestamp, key, today, yesterday, loc),
			}})
			last = key
		}
		items = append(items, Item{Message: &msgs[i]})
	}
	return items
}

// DateKey formats t as YYYY-MM-DD in loc. The zero time maps to UnknownDate.
func DateKey(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return UnknownDate
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("2006-01-02")
}

func displayDate(t time.Time, key, today, yesterday string, loc *time.Location) string {
	switch key {
	case UnknownDate:
		return "Unknown date"
	case today:
		return "Today"
	case yesterday:
		return "Yesterday"
	}
	return t.In(loc).Format("Mon 2 January")
}

// Reverse returns items in reverse order, for renderers that lay out
// from the bottom up. The input is not modified.
func Reverse(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[len(items)-1-i] = it
	}
	return out
}

// MessageTime formats the bubble footer time, e.g. "09:15".
func MessageTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "--:--"
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("15:04")
}

// Messages filters items back down to the messages, in order.
func Messages(items []Item) []chat.Message {
	var out []chat.Message
	for _, it := range items {
		if it.Message != nil {
			out = append(out, *it.Message)
		}
	}
	return out
}
