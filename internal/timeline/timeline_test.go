package timeline

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/zhubert/parley/internal/chat"
)

var (
	warsaw = time.FixedZone("CEST", 2*60*60)
	now    = time.Date(2025, time.June, 19, 15, 0, 0, 0, warsaw) // a Thursday
)

func msgAt(id int, t time.Time) chat.Message {
	return chat.Message{ID: id, Text: "m", Timestamp: t}
}

func separators(items []Item) []Separator {
	var out []Separator
	for _, it := range items {
		if it.Kind() == KindSeparator {
			out = append(out, *it.Separator)
		}
	}
	return out
}

func TestGroup_Empty(t *testing.T) {
	if got := Group(nil, now, warsaw); len(got) != 0 {
		t.Errorf("Group(nil) = %v, want empty", got)
	}
	if got := Group([]chat.Message{}, now, warsaw); got == nil {
		t.Error("Group should return an empty slice, not nil")
	}
}

func TestGroup_FiveDaysYesterdayToday(t *testing.T) {
	msgs := []chat.Message{
		msgAt(1, now.AddDate(0, 0, -5)),
		msgAt(2, now.AddDate(0, 0, -1)),
		msgAt(3, now),
	}
	items := Group(msgs, now, warsaw)

	if len(items) != 6 {
		t.Fatalf("got %d items, want 6", len(items))
	}
	wantKinds := []Kind{KindSeparator, KindMessage, KindSeparator, KindMessage, KindSeparator, KindMessage}
	for i, k := range wantKinds {
		if items[i].Kind() != k {
			t.Errorf("item %d kind = %v, want %v", i, items[i].Kind(), k)
		}
	}

	want := []Separator{
		{ID: "date-2025-06-14", Date: "2025-06-14", DisplayDate: "Sat 14 June"},
		{ID: "date-2025-06-18", Date: "2025-06-18", DisplayDate: "Yesterday"},
		{ID: "date-2025-06-19", Date: "2025-06-19", DisplayDate: "Today"},
	}
	if got := separators(items); !reflect.DeepEqual(got, want) {
		t.Errorf("separators = %+v, want %+v", got, want)
	}
}

func TestGroup_SameDayNoSeparatorBetween(t *testing.T) {
	day := time.Date(2025, time.June, 10, 0, 0, 0, 0, warsaw)
	msgs := []chat.Message{
		msgAt(1, day.Add(30*time.Minute)),
		msgAt(2, day.Add(12*time.Hour)),
		msgAt(3, day.Add(23*time.Hour+59*time.Minute)),
	}
	items := Group(msgs, now, warsaw)
	if len(items) != 4 {
		t.Fatalf("got %d items, want 4", len(items))
	}
	if items[0].Kind() != KindSeparator {
		t.Error("first item should be a separator")
	}
	for _, it := range items[1:] {
		if it.Kind() != KindMessage {
			t.Error("no separator may appear between messages of the same day")
		}
	}
}

func TestGroup_UsesZoneForDayBoundary(t *testing.T) {
	// 23:30 UTC on the 17th is already the 18th in Warsaw.
	late := time.Date(2025, time.June, 17, 23, 30, 0, 0, time.UTC)
	early := time.Date(2025, time.June, 18, 6, 0, 0, 0, time.UTC)

	inWarsaw := Group([]chat.Message{msgAt(1, late), msgAt(2, early)}, now, warsaw)
	if n := len(separators(inWarsaw)); n != 1 {
		t.Errorf("Warsaw: %d separators, want 1", n)
	}
	inUTC := Group([]chat.Message{msgAt(1, late), msgAt(2, early)}, now, time.UTC)
	if n := len(separators(inUTC)); n != 2 {
		t.Errorf("UTC: %d separators, want 2", n)
	}
}

func TestGroup_UnknownTimestampGetsOwnSeparator(t *testing.T) {
	msgs := []chat.Message{
		msgAt(1, now),
		{ID: 2, Text: "no time"},
		{ID: 3, Text: "no time either"},
		msgAt(4, now),
	}
	items := Group(msgs, now, warsaw)
	seps := separators(items)
	if len(seps) != 4 {
		t.Fatalf("got %d separators, want 4: %+v", len(seps), seps)
	}
	if seps[1].Date != UnknownDate || seps[1].ID != "date-unknown" || seps[1].DisplayDate != "Unknown date" {
		t.Errorf("unknown separator = %+v", seps[1])
	}
}

func TestGroup_OutOfOrderRepeatsSeparators(t *testing.T) {
	msgs := []chat.Message{
		msgAt(1, now),
		msgAt(2, now.AddDate(0, 0, -1)),
		msgAt(3, now),
	}
	seps := separators(Group(msgs, now, warsaw))
	if len(seps) != 3 || seps[0].ID != seps[2].ID {
		t.Errorf("out-of-order input should repeat the day separator, got %+v", seps)
	}
}

// Randomized check of the counting, order-preservation and same-day properties.
func TestGroup_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(40)
		msgs := make([]chat.Message, n)
		ts := now.AddDate(0, 0, -20)
		for i := range msgs {
			ts = ts.Add(time.Duration(rng.Intn(18*60)) * time.Minute)
			msgs[i] = msgAt(i+1, ts)
		}

		items := Group(msgs, now, warsaw)

		transitions := 0
		last := ""
		for _, m := range msgs {
			if k := DateKey(m.Timestamp, warsaw); k != last {
				transitions++
				last = k
			}
		}
		if len(items) != n+transitions {
			t.Fatalf("trial %d: len = %d, want %d", trial, len(items), n+transitions)
		}
		if got := Messages(items); !reflect.DeepEqual(got, msgs) {
			t.Fatalf("trial %d: messages not preserved in order", trial)
		}
		for i := 1; i < len(items); i++ {
			if items[i].Kind() != KindSeparator {
				continue
			}
			prev, next := items[i-1], items[i+1]
			if prev.Kind() == KindMessage &&
				DateKey(prev.Message.Timestamp, warsaw) == DateKey(next.Message.Timestamp, warsaw) {
				t.Fatalf("trial %d: separator between two messages of the same day", trial)
			}
		}
	}
}

func TestGroup_DoesNotAliasInput(t *testing.T) {
	msgs := []chat.Message{msgAt(1, now)}
	items := Group(msgs, now, warsaw)
	items[1].Message.Text = "changed"
	if msgs[0].Text != "m" {
		t.Error("Group output must not alias the input slice")
	}
}

func TestReverse(t *testing.T) {
	items := Group([]chat.Message{msgAt(1, now.AddDate(0, 0, -1)), msgAt(2, now)}, now, warsaw)
	rev := Reverse(items)
	if len(rev) != len(items) {
		t.Fatalf("len = %d, want %d", len(rev), len(items))
	}
	for i := range items {
		if rev[i].ID() != items[len(items)-1-i].ID() {
			t.Errorf("rev[%d] = %s, want %s", i, rev[i].ID(), items[len(items)-1-i].ID())
		}
	}
	if items[0].Kind() != KindSeparator {
		t.Error("Reverse must not modify its input")
	}
}

func TestMessageTime(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		loc  *time.Location
		want string
	}{
		{"local zone", time.Date(2025, 6, 19, 9, 5, 0, 0, warsaw), warsaw, "09:05"},
		{"converted", time.Date(2025, 6, 19, 22, 15, 0, 0, time.UTC), warsaw, "00:15"},
		{"zero", time.Time{}, warsaw, "--:--"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MessageTime(tt.t, tt.loc); got != tt.want {
				t.Errorf("MessageTime = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestItemID(t *testing.T) {
	items := Group([]chat.Message{msgAt(42, now)}, now, warsaw)
	if items[0].ID() != "date-2025-06-19" || items[1].ID() != "msg-42" {
		t.Errorf("ids = %s, %s", items[0].ID(), items[1].ID())
	}
}
