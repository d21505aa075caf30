package chat

import (
	"sync"
	"testing"
	"time"

	perrors "github.com/zhubert/parley/internal/errors"
)

var testNow = time.Date(2025, time.June, 19, 12, 0, 0, 0, time.UTC)

// fixedClock returns a clock that advances one minute per call.
func fixedClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	t := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := t
		t = t.Add(time.Minute)
		return now
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(DefaultSeed(testNow), WithClock(fixedClock(testNow)))
}

func TestNewStore_NextIDAfterSeed(t *testing.T) {
	s := newTestStore(t)
	msg, err := s.Send("anna", "hello", nil)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if msg.ID <= 302 {
		t.Errorf("new id %d collides with seeded ids", msg.ID)
	}
}

func TestNewStore_AssignsMissingConversationIDs(t *testing.T) {
	s := NewStore([]Conversation{{Name: "No id"}})
	sums := s.Summaries("")
	if len(sums) != 1 || sums[0].ID == "" {
		t.Fatalf("expected generated id, got %+v", sums)
	}
	if _, err := s.Conversation(sums[0].ID); err != nil {
		t.Errorf("generated id not addressable: %v", err)
	}
}

func TestSend(t *testing.T) {
	s := newTestStore(t)

	msg, err := s.Send("anna", "  See you there  ", nil)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if msg.Text != "See you there" {
		t.Errorf("Text = %q, want trimmed", msg.Text)
	}
	if !msg.IsMe || msg.Status != StatusSent {
		t.Errorf("outgoing message: IsMe=%v Status=%v", msg.IsMe, msg.Status)
	}
	if !msg.Timestamp.Equal(testNow) {
		t.Errorf("Timestamp = %v, want injected clock %v", msg.Timestamp, testNow)
	}

	next, _ := s.Send("anna", "again", nil)
	if next.ID != msg.ID+1 {
		t.Errorf("ids should be monotonic: %d then %d", msg.ID, next.ID)
	}

	msgs, _ := s.Messages("anna")
	if last := msgs[len(msgs)-1]; last.ID != next.ID {
		t.Errorf("last message id = %d, want %d", last.ID, next.ID)
	}
}

func TestSend_Errors(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Send("anna", "   \n ", nil); !perrors.Is(err, perrors.KindInvalid) {
		t.Errorf("empty text: got %v, want KindInvalid", err)
	}
	if _, err := s.Send("nobody", "hi", nil); !perrors.Is(err, perrors.KindNotFound) {
		t.Errorf("unknown conversation: got %v, want KindNotFound", err)
	}
}

func TestSend_ReplySnapshot(t *testing.T) {
	s := newTestStore(t)

	target, err := s.Message("anna", 9)
	if err != nil {
		t.Fatal(err)
	}
	ref := target.Ref()
	msg, err := s.Send("anna", "19:00 works", &ref)
	if err != nil {
		t.Fatal(err)
	}
	ref.Text = "mutated"
	if msg.ReplyTo == nil || msg.ReplyTo.Text != target.Text {
		t.Errorf("reply should snapshot the target, got %+v", msg.ReplyTo)
	}
	if msg.ReplyTo.SenderName != "Anna" || msg.ReplyTo.IsMe {
		t.Errorf("reply ref = %+v", msg.ReplyTo)
	}
}

func TestSendAttachment(t *testing.T) {
	s := newTestStore(t)

	msg, err := s.SendAttachment("anna", Attachment{Kind: AttachDocument, Name: "tickets.pdf", Size: 2048}, "")
	if err != nil {
		t.Fatalf("SendAttachment returned error: %v", err)
	}
	if msg.Attachment == nil || msg.Attachment.ID == "" {
		t.Fatalf("attachment should get an id, got %+v", msg.Attachment)
	}
	if msg.Status != StatusSent {
		t.Errorf("Status = %v, want sent", msg.Status)
	}

	sums := s.Summaries("anna")
	if len(sums) != 1 || !sums[0].HasAttachment {
		t.Errorf("summary should flag the attachment: %+v", sums)
	}

	if _, err := s.SendAttachment("anna", Attachment{Kind: "hologram"}, ""); !perrors.Is(err, perrors.KindInvalid) {
		t.Errorf("unknown kind: got %v, want KindInvalid", err)
	}
}

func TestUpdateStatus_ForwardOnly(t *testing.T) {
	s := newTestStore(t)
	msg, _ := s.Send("anna", "hi", nil)

	steps := []struct {
		status  Status
		changed bool
		want    Status
	}{
		{StatusDelivered, true, StatusDelivered},
		{StatusSent, false, StatusDelivered},
		{StatusRead, true, StatusRead},
		{StatusDelivered, false, StatusRead},
		{StatusRead, false, StatusRead},
	}
	for _, st := range steps {
		changed, err := s.UpdateStatus("anna", msg.ID, st.status)
		if err != nil {
			t.Fatalf("UpdateStatus(%v) error: %v", st.status, err)
		}
		if changed != st.changed {
			t.Errorf("UpdateStatus(%v) changed = %v, want %v", st.status, changed, st.changed)
		}
		got, _ := s.Message("anna", msg.ID)
		if got.Status != st.want {
			t.Errorf("after %v status = %v, want %v", st.status, got.Status, st.want)
		}
	}

	if _, err := s.UpdateStatus("anna", 99999, StatusRead); !perrors.Is(err, perrors.KindNotFound) {
		t.Errorf("unknown message: got %v, want KindNotFound", err)
	}
}

func TestToggleReaction_SameUserTwiceDoesNotDoubleCount(t *testing.T) {
	s := newTestStore(t)

	// Message 8 has no reactions in the default seed.
	added, err := s.ToggleReaction("anna", 8, "🔥", "me")
	if err != nil || !added {
		t.Fatalf("first toggle: added=%v err=%v", added, err)
	}
	added, err = s.ToggleReaction("anna", 8, "🔥", "me")
	if err != nil || added {
		t.Fatalf("second toggle: added=%v err=%v", added, err)
	}
	msg, _ := s.Message("anna", 8)
	if _, ok := msg.Reaction("🔥"); ok {
		t.Errorf("reaction should be gone, got %+v", msg.Reactions)
	}
}

func TestToggleReaction_ExistingFromOtherUser(t *testing.T) {
	s := newTestStore(t)

	// Message 10 carries 👍 from anna.
	if _, err := s.ToggleReaction("anna", 10, "👍", "me"); err != nil {
		t.Fatal(err)
	}
	msg, _ := s.Message("anna", 10)
	r, ok := msg.Reaction("👍")
	if !ok || r.Count != 2 || !r.HasUser("anna") || !r.HasUser("me") {
		t.Errorf("reaction = %+v", r)
	}
	checkInvariant(t, msg.Reactions)
}

func TestToggleReaction_InvalidEmoji(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.ToggleReaction("anna", 8, "👍👍", "me"); !perrors.Is(err, perrors.KindInvalid) {
		t.Errorf("got %v, want KindInvalid", err)
	}
}

func TestAddRemoveReaction(t *testing.T) {
	s := newTestStore(t)

	changed, err := s.AddReaction("anna", 8, "❤️", "anna")
	if err != nil || !changed {
		t.Fatalf("AddReaction: changed=%v err=%v", changed, err)
	}
	changed, _ = s.AddReaction("anna", 8, "❤️", "anna")
	if changed {
		t.Error("repeat AddReaction should be a no-op")
	}
	changed, _ = s.RemoveReaction("anna", 8, "❤️", "me")
	if changed {
		t.Error("removing a reaction the user never made should be a no-op")
	}
	changed, _ = s.RemoveReaction("anna", 8, "❤️", "anna")
	if !changed {
		t.Error("RemoveReaction should remove")
	}
	msg, _ := s.Message("anna", 8)
	if len(msg.Reactions) != 0 {
		t.Errorf("reactions = %+v, want none", msg.Reactions)
	}
}

func TestReturnedMessagesAreCopies(t *testing.T) {
	s := newTestStore(t)
	msg, _ := s.Message("anna", 4)
	msg.Reactions[0].Users[0] = "intruder"
	msg.Reactions[0].Count = 99

	again, _ := s.Message("anna", 4)
	if again.Reactions[0].Users[0] == "intruder" || again.Reactions[0].Count == 99 {
		t.Error("mutating a returned message must not change the store")
	}
}

func TestReceive(t *testing.T) {
	s := newTestStore(t)

	msg, err := s.Receive("anna", "On my way!", "")
	if err != nil {
		t.Fatalf("Receive returned error: %v", err)
	}
	if msg.IsMe || msg.SenderName != "Anna" || msg.Status != StatusNone {
		t.Errorf("incoming message = %+v", msg)
	}
	c, _ := s.Conversation("anna")
	if c.Unread != 1 {
		t.Errorf("Unread = %d, want 1", c.Unread)
	}
	if err := s.MarkRead("anna"); err != nil {
		t.Fatal(err)
	}
	c, _ = s.Conversation("anna")
	if c.Unread != 0 {
		t.Errorf("Unread after MarkRead = %d, want 0", c.Unread)
	}
}

func TestBackfill_KeepsChronologicalOrder(t *testing.T) {
	s := newTestStore(t)

	older := []Message{
		{ID: 0, Text: "from last week", Timestamp: testNow.AddDate(0, 0, -7)},
		{ID: 5, Text: "duplicate id is skipped", Timestamp: testNow.AddDate(0, 0, -9)},
		{ID: 0, Text: "between days", Timestamp: time.Date(2025, time.June, 17, 20, 0, 0, 0, time.UTC)},
	}
	added, err := s.Backfill("anna", older)
	if err != nil {
		t.Fatalf("Backfill returned error: %v", err)
	}
	if added != 2 {
		t.Errorf("added = %d, want 2", added)
	}

	msgs, _ := s.Messages("anna")
	if msgs[0].Text != "from last week" {
		t.Errorf("first message = %q, want oldest backfilled", msgs[0].Text)
	}
	for i := 1; i < len(msgs); i++ {
		if msgs[i].Timestamp.Before(msgs[i-1].Timestamp) {
			t.Fatalf("messages out of order at %d: %v before %v", i, msgs[i].Timestamp, msgs[i-1].Timestamp)
		}
	}
	ids := map[int]bool{}
	for _, m := range msgs {
		if ids[m.ID] {
			t.Errorf("duplicate id %d after backfill", m.ID)
		}
		ids[m.ID] = true
	}
}

func TestSummaries(t *testing.T) {
	s := newTestStore(t)

	all := s.Summaries("")
	if len(all) != 4 {
		t.Fatalf("got %d summaries, want 4", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Time.After(all[i-1].Time) {
			t.Errorf("summaries not sorted by recency: %s after %s", all[i].Name, all[i-1].Name)
		}
	}
	if all[0].ID != "anna" {
		t.Errorf("most recent conversation = %s, want anna", all[0].ID)
	}

	tests := []struct {
		filter string
		want   int
	}{
		{"MAREK", 1},
		{"build", 1},
		{"zzz", 0},
		{"  ", 4},
	}
	for _, tt := range tests {
		if got := len(s.Summaries(tt.filter)); got != tt.want {
			t.Errorf("Summaries(%q) = %d rows, want %d", tt.filter, got, tt.want)
		}
	}

	if _, err := s.Receive("mom", "Dinner Sunday?", ""); err != nil {
		t.Fatal(err)
	}
	if top := s.Summaries("")[0]; top.ID != "mom" || top.UnreadCount != 1 {
		t.Errorf("new activity should move mom to the top, got %+v", top)
	}
}

func TestTotalUnread(t *testing.T) {
	s := newTestStore(t)
	if got := s.TotalUnread(); got != 7 {
		t.Errorf("TotalUnread = %d, want 7", got)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := newTestStore(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				msg, err := s.Send("anna", "ping", nil)
				if err != nil {
					t.Error(err)
					return
				}
				_, _ = s.UpdateStatus("anna", msg.ID, StatusDelivered)
				_, _ = s.ToggleReaction("anna", msg.ID, "👍", "me")
				_ = s.Summaries("")
			}
		}()
	}
	wg.Wait()

	msgs, _ := s.Messages("anna")
	if len(msgs) != 10+8*50 {
		t.Errorf("got %d messages, want %d", len(msgs), 10+8*50)
	}
}
