package ui

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/timeline"
)

var (
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
)

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language, styleName string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}

// wrapText word-wraps text to width, hard-breaking words longer than width.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wrap.String(wordwrap.String(text, width), width)
}

// renderInline applies inline code and bold spans to one wrapped line.
func renderInline(line string, s Styles) string {
	line = inlineCodePattern.ReplaceAllStringFunc(line, func(match string) string {
		return s.InlineCode.Render(inlineCodePattern.FindStringSubmatch(match)[1])
	})
	return boldPattern.ReplaceAllStringFunc(line, func(match string) string {
		return lipgloss.NewStyle().Bold(true).Render(boldPattern.FindStringSubmatch(match)[1])
	})
}

// renderBody renders message text: wrapped prose with inline spans, and
// fenced code blocks highlighted and clipped to width.
func renderBody(text string, width int, s Styles) []string {
	var out []string
	var code strings.Builder
	inCode := false
	lang := ""

	flushCode := func() {
		for _, l := range strings.Split(highlightCode(code.String(), lang, s.Theme.CodeStyle), "\n") {
			out = append(out, ansi.Truncate(l, width, "…"))
		}
		code.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if inCode {
				flushCode()
				inCode = false
			} else {
				inCode = true
				lang = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "```"))
			}
			continue
		}
		if inCode {
			if code.Len() > 0 {
				code.WriteString("\n")
			}
			code.WriteString(line)
			continue
		}
		// Wrap before styling so the inline spans never split a wrap.
		for _, wl := range strings.Split(wrapText(line, width), "\n") {
			out = append(out, renderInline(wl, s))
		}
	}
	if inCode {
		flushCode()
	}
	return out
}

// StatusTicks is the delivery indicator for outgoing messages.
func StatusTicks(st chat.Status) string {
	switch st {
	case chat.StatusSent:
		return "✓"
	case chat.StatusDelivered, chat.StatusRead:
		return "✓✓"
	}
	return "◷"
}

// BubbleOptions controls how one message is drawn.
type BubbleOptions struct {
	// Width is the thread's usable width; bubbles take a share of it.
	Width    int
	Selected bool
	Loc      *time.Location
	// UserID marks the viewer's own reactions.
	UserID string
	// ShowSender prints the sender above incoming bubbles, for group chats.
	ShowSender bool
}

// BubbleLayout is a rendered message plus where its bubble box sits
// inside the block, in cells relative to the block's top-left corner.
type BubbleLayout struct {
	View   string
	Height int

	BoxX, BoxY          int
	BoxWidth, BoxHeight int
}

// MaxBubbleWidth is the text width a bubble may use in a thread of width.
func MaxBubbleWidth(width int) int {
	// Padding(0, 1) and the two-cell gutter.
	return max(width*BubbleWidthRatio/100-4, MinBubbleWidth)
}

// RenderBubble draws one message as a bubble aligned left (incoming) or
// right (outgoing), followed by its reaction chips.
func RenderBubble(m chat.Message, s Styles, opts BubbleOptions) BubbleLayout {
	width := opts.Width
	if width <= 0 {
		width = DefaultWrapWidth
	}
	textWidth := MaxBubbleWidth(width)

	var lines []string
	if opts.ShowSender && !m.IsMe && m.SenderName != "" {
		lines = append(lines, s.Sender.Render(truncate.StringWithTail(m.SenderName, uint(textWidth), "…")))
	}
	if m.ReplyTo != nil {
		lines = append(lines, strings.Split(renderReplyQuote(*m.ReplyTo, textWidth, s), "\n")...)
	}
	if m.Attachment != nil {
		lines = append(lines, renderAttachment(*m.Attachment, textWidth, s)...)
	}
	if m.Text != "" {
		lines = append(lines, renderBody(m.Text, textWidth, s)...)
	}
	lines = append(lines, renderMeta(m, opts.Loc, s))

	bubbleStyle := s.BubbleThem
	if m.IsMe {
		bubbleStyle = s.BubbleMe
	}
	// The meta line is right-aligned inside the box.
	inner := 0
	for _, l := range lines {
		inner = max(inner, ansi.StringWidth(l))
	}
	last := len(lines) - 1
	lines[last] = strings.Repeat(" ", inner-ansi.StringWidth(lines[last])) + lines[last]
	box := bubbleStyle.Render(strings.Join(lines, "\n"))
	boxWidth := lipgloss.Width(box)
	boxHeight := lipgloss.Height(box)

	gutter := "  "
	if opts.Selected {
		gutter = s.BubbleSelected.Render("▌ ")
	}

	var block []string
	boxX := 2
	for i, l := range strings.Split(box, "\n") {
		g := "  "
		if i == 0 {
			g = gutter
		}
		block = append(block, g+l)
	}
	if chips := renderReactions(m.Reactions, opts.UserID, s); chips != "" {
		block = append(block, "  "+chips)
	}

	if m.IsMe {
		for i, l := range block {
			block[i] = lipgloss.PlaceHorizontal(width, lipgloss.Right, l)
		}
		boxX = width - boxWidth
	}

	return BubbleLayout{
		View:      strings.Join(block, "\n"),
		Height:    len(block),
		BoxX:      boxX,
		BoxY:      0,
		BoxWidth:  boxWidth,
		BoxHeight: boxHeight,
	}
}

func renderReplyQuote(ref chat.ReplyRef, width int, s Styles) string {
	name := ref.SenderName
	if ref.IsMe {
		name = "You"
	}
	text := strings.Join(strings.Fields(ref.Text), " ")
	w := uint(max(width-2, 1))
	return s.ReplyQuote.Render(
		truncate.StringWithTail("↩ "+name, w, "…") + "\n" + truncate.StringWithTail(text, w, "…"),
	)
}

func renderAttachment(a chat.Attachment, width int, s Styles) []string {
	lines := []string{s.Attachment.Render(truncate.StringWithTail(a.Summary(), uint(width), "…"))}
	if a.Detail != "" {
		lines = append(lines, s.Meta.Render(truncate.StringWithTail(a.Detail, uint(width), "…")))
	}
	return lines
}

func renderMeta(m chat.Message, loc *time.Location, s Styles) string {
	meta := s.Meta.Render(timeline.MessageTime(m.Timestamp, loc))
	if m.IsMe {
		ticks := s.Meta.Render(StatusTicks(m.Status))
		if m.Status == chat.StatusRead {
			ticks = s.ReadTicks.Render(StatusTicks(m.Status))
		}
		meta += " " + ticks
	}
	return meta
}

// ReactionChipText is the plain text of one chip, e.g. "❤️ 2".
func ReactionChipText(r chat.Reaction) string {
	if r.Count <= 1 {
		return r.Emoji
	}
	return fmt.Sprintf("%s %d", r.Emoji, r.Count)
}

// ReactionsWidth is the cell width of the chip row, emoji measured with
// runewidth so wide glyphs line up.
func ReactionsWidth(rs []chat.Reaction) int {
	if len(rs) == 0 {
		return 0
	}
	w := 0
	for _, r := range rs {
		// Chip borders take one cell on each side.
		w += runewidth.StringWidth(ReactionChipText(r)) + 2
	}
	return w + len(rs) - 1
}

func renderReactions(rs []chat.Reaction, userID string, s Styles) string {
	if len(rs) == 0 {
		return ""
	}
	chips := make([]string, 0, len(rs))
	for _, r := range rs {
		style := s.ReactionChip
		if userID != "" && r.HasUser(userID) {
			style = s.ReactionChipOwn
		}
		chips = append(chips, style.Render(ReactionChipText(r)))
	}
	return strings.Join(chips, " ")
}

// RenderSeparator draws a centered date label across width.
func RenderSeparator(sep timeline.Separator, width int, s Styles) string {
	label := " " + sep.DisplayDate + " "
	side := max((width-runewidth.StringWidth(label))/2, 0)
	line := strings.Repeat("─", side) + label + strings.Repeat("─", side)
	return s.Separator.Width(width).Render(line)
}
