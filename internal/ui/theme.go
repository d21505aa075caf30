package ui

// Theme is a color palette. Components never look a theme up themselves;
// the app builds a Styles value from one and hands it down.
type Theme struct {
	Name string

	// Primary is the accent used for focus, headers and the selection cursor.
	Primary   string
	Secondary string

	Bg          string
	BgSelected  string // defaults to Primary if empty
	Text        string
	TextMuted   string
	TextInverse string

	// Bubble colors. Outgoing messages use the Me pair.
	BubbleMe       string
	BubbleMeText   string
	BubbleThem     string
	BubbleThemText string

	Online  string
	Unread  string
	Warning string
	Error   string
	Border  string

	Code   string
	CodeBg string
	// CodeStyle is the chroma style for fenced code blocks.
	CodeStyle string
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// ThemeName identifies a built-in theme.
type ThemeName string

const (
	ThemeDarkPurple     ThemeName = "dark-purple"
	ThemeNord           ThemeName = "nord"
	ThemeDracula        ThemeName = "dracula"
	ThemeGruvbox        ThemeName = "gruvbox"
	ThemeTokyoNight     ThemeName = "tokyo-night"
	ThemeCatppuccin     ThemeName = "catppuccin"
	ThemeScienceFiction ThemeName = "science-fiction"
	ThemeLight          ThemeName = "light"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeDarkPurple

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeDarkPurple: {
		Name: "Dark Purple", Primary: "#7C3AED", Secondary: "#06B6D4",
		Bg: "#1F2937", Text: "#F9FAFB", TextMuted: "#9CA3AF", TextInverse: "#1F2937",
		BubbleMe: "#6D28D9", BubbleMeText: "#F9FAFB", BubbleThem: "#374151", BubbleThemText: "#F9FAFB",
		Online: "#4ADE80", Unread: "#22D3EE", Warning: "#F59E0B", Error: "#EF4444", Border: "#374151",
		Code: "#67E8F9", CodeBg: "#1E1E2E", CodeStyle: "monokai",
	},
	ThemeNord: {
		Name: "Nord", Primary: "#88C0D0", Secondary: "#81A1C1",
		Bg: "#2E3440", Text: "#ECEFF4", TextMuted: "#D8DEE9", TextInverse: "#2E3440",
		BubbleMe: "#5E81AC", BubbleMeText: "#ECEFF4", BubbleThem: "#3B4252", BubbleThemText: "#ECEFF4",
		Online: "#A3BE8C", Unread: "#88C0D0", Warning: "#EBCB8B", Error: "#BF616A", Border: "#4C566A",
		Code: "#A3BE8C", CodeBg: "#242933", CodeStyle: "nord",
	},
	ThemeDracula: {
		Name: "Dracula", Primary: "#BD93F9", Secondary: "#8BE9FD",
		Bg: "#282A36", Text: "#F8F8F2", TextMuted: "#6272A4", TextInverse: "#282A36",
		BubbleMe: "#6272A4", BubbleMeText: "#F8F8F2", BubbleThem: "#44475A", BubbleThemText: "#F8F8F2",
		Online: "#50FA7B", Unread: "#FF79C6", Warning: "#FFB86C", Error: "#FF5555", Border: "#44475A",
		Code: "#50FA7B", CodeBg: "#21222C", CodeStyle: "dracula",
	},
	ThemeGruvbox: {
		Name: "Gruvbox", Primary: "#FE8019", Secondary: "#83A598",
		Bg: "#282828", Text: "#EBDBB2", TextMuted: "#A89984", TextInverse: "#282828",
		BubbleMe: "#076678", BubbleMeText: "#EBDBB2", BubbleThem: "#3C3836", BubbleThemText: "#EBDBB2",
		Online: "#B8BB26", Unread: "#FABD2F", Warning: "#FE8019", Error: "#FB4934", Border: "#504945",
		Code: "#B8BB26", CodeBg: "#1D2021", CodeStyle: "gruvbox",
	},
	ThemeTokyoNight: {
		Name: "Tokyo Night", Primary: "#7AA2F7", Secondary: "#BB9AF7",
		Bg: "#1A1B26", Text: "#C0CAF5", TextMuted: "#565F89", TextInverse: "#1A1B26",
		BubbleMe: "#3D59A1", BubbleMeText: "#C0CAF5", BubbleThem: "#24283B", BubbleThemText: "#C0CAF5",
		Online: "#9ECE6A", Unread: "#7DCFFF", Warning: "#E0AF68", Error: "#F7768E", Border: "#3B4261",
		Code: "#9ECE6A", CodeBg: "#16161E", CodeStyle: "tokyonight-night",
	},
	ThemeCatppuccin: {
		Name: "Catppuccin", Primary: "#CBA6F7", Secondary: "#89DCEB",
		Bg: "#1E1E2E", Text: "#CDD6F4", TextMuted: "#6C7086", TextInverse: "#1E1E2E",
		BubbleMe: "#8839EF", BubbleMeText: "#CDD6F4", BubbleThem: "#313244", BubbleThemText: "#CDD6F4",
		Online: "#A6E3A1", Unread: "#F5C2E7", Warning: "#FAB387", Error: "#F38BA8", Border: "#313244",
		Code: "#A6E3A1", CodeBg: "#181825", CodeStyle: "catppuccin-mocha",
	},
	ThemeScienceFiction: {
		Name: "Science Fiction", Primary: "#E50914", Secondary: "#8B0000",
		Bg: "#0A0A0A", BgSelected: "#2D0A0A", Text: "#E8E8E8", TextMuted: "#666666", TextInverse: "#0A0A0A",
		BubbleMe: "#8B0000", BubbleMeText: "#E8E8E8", BubbleThem: "#1A1A1A", BubbleThemText: "#E8E8E8",
		Online: "#00AA00", Unread: "#FF4444", Warning: "#FF6600", Error: "#FF0000", Border: "#330000",
		Code: "#FF6666", CodeBg: "#1A0000", CodeStyle: "monokai",
	},
	ThemeLight: {
		Name: "Light", Primary: "#6366F1", Secondary: "#0891B2",
		Bg: "#FFFFFF", BgSelected: "#E0E7FF", Text: "#1F2937", TextMuted: "#6B7280", TextInverse: "#FFFFFF",
		BubbleMe: "#6366F1", BubbleMeText: "#FFFFFF", BubbleThem: "#E5E7EB", BubbleThemText: "#1F2937",
		Online: "#16A34A", Unread: "#0891B2", Warning: "#D97706", Error: "#DC2626", Border: "#D1D5DB",
		Code: "#059669", CodeBg: "#F3F4F6", CodeStyle: "github",
	},
}

// ThemeNames returns a list of all available theme names in display order
func ThemeNames() []ThemeName {
	return []ThemeName{
		ThemeDarkPurple,
		ThemeNord,
		ThemeDracula,
		ThemeGruvbox,
		ThemeTokyoNight,
		ThemeCatppuccin,
		ThemeScienceFiction,
		ThemeLight,
	}
}

// GetTheme returns a theme by name, defaulting to DarkPurple if not found
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

// IsTheme reports whether name is a built-in theme.
func IsTheme(name string) bool {
	_, ok := BuiltinThemes[ThemeName(name)]
	return ok
}
