package chat

import (
	"github.com/rivo/uniseg"

	perrors "github.com/zhubert/parley/internal/errors"
)

// ValidateEmoji checks that emoji is exactly one grapheme cluster.
// Flags, skin tones and ZWJ sequences count as one.
func ValidateEmoji(emoji string) error {
	if uniseg.GraphemeClusterCount(emoji) != 1 {
		return perrors.InvalidEmoji(emoji)
	}
	return nil
}

// addReaction adds userID to the emoji's reaction. Adding twice is a no-op.
// Returns the new slice and whether anything changed.
func addReaction(rs []Reaction, emoji, userID string) ([]Reaction, bool) {
	for i := range rs {
		if rs[i].Emoji != emoji {
			continue
		}
		if rs[i].HasUser(userID) {
			return rs, false
		}
		rs[i].Users = append(rs[i].Users, userID)
		rs[i].Count = len(rs[i].Users)
		return rs, true
	}
	return append(rs, Reaction{Emoji: emoji, Count: 1, Users: []string{userID}}), true
}

// removeReaction drops userID from the emoji's reaction, deleting the
// reaction once nobody is left. Removing an absent reaction is a no-op.
func removeReaction(rs []Reaction, emoji, userID string) ([]Reaction, bool) {
	for i := range rs {
		if rs[i].Emoji != emoji {
			continue
		}
		users := rs[i].Users[:0:0]
		found := false
		for _, u := range rs[i].Users {
			if u == userID {
				found = true
				continue
			}
			users = append(users, u)
		}
		if !found {
			return rs, false
		}
		if len(users) == 0 {
			return append(rs[:i:i], rs[i+1:]...), true
		}
		rs[i].Users = users
		rs[i].Count = len(users)
		return rs, true
	}
	return rs, false
}

// toggleReaction removes the user's reaction if present, otherwise adds it.
func toggleReaction(rs []Reaction, emoji, userID string) ([]Reaction, bool) {
	for _, r := range rs {
		if r.Emoji == emoji && r.HasUser(userID) {
			rs, _ = removeReaction(rs, emoji, userID)
			return rs, false
		}
	}
	rs, _ = addReaction(rs, emoji, userID)
	return rs, true
}

// normalizeReactions dedupes users, fixes counts and drops empty reactions.
// Seeds go through this so the Count == len(Users) invariant always holds.
func normalizeReactions(rs []Reaction) []Reaction {
	var out []Reaction
	index := make(map[string]int)
	for _, r := range rs {
		i, ok := index[r.Emoji]
		if !ok {
			i = len(out)
			index[r.Emoji] = i
			out = append(out, Reaction{Emoji: r.Emoji})
		}
		for _, u := range r.Users {
			if !out[i].HasUser(u) {
				out[i].Users = append(out[i].Users, u)
			}
		}
	}
	kept := out[:0]
	for _, r := range out {
		r.Count = len(r.Users)
		if r.Count > 0 {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}
