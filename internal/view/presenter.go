package view

import (
	"strings"

	"github.com/jamesprial/gameshelf/internal/games"
)

// Fixed screen text.
const (
	LoadingMessage = "Loading..."
	ErrorMessage   = "Error :("
	ListHeading    = "Games"
	FormHeading    = "Add a new game"
	TitleLabel     = "Title"
	PlatformLabel  = "Platform (comma separated)"
	SubmitLabel    = "Add Game"
	DeleteLabel    = "Delete"
	platformPrefix = "Platform: "
)

// ScreenKind selects which of the three screens is shown.
type ScreenKind int

const (
	ScreenLoading ScreenKind = iota
	ScreenError
	ScreenList
)

// Screen is the render tree for one controller state.
type Screen struct {
	Kind ScreenKind
	// Message is set for ScreenLoading and ScreenError.
	Message string
	Heading string
	Rows    []Row
	// Form is nil unless Kind is ScreenList.
	Form *Form
}

// Row is one game in the list. ID is what the delete affordance submits.
type Row struct {
	ID          string
	Title       string
	Platform    string
	DeleteLabel string
}

// Form is the add-game form carrying the current draft.
type Form struct {
	Heading       string
	TitleLabel    string
	PlatformLabel string
	SubmitLabel   string
	Draft         Draft
}

// Render maps s to a screen. It has no side effects. An idle controller
// renders as loading since no result exists yet.
func Render(s State) Screen {
	switch s.Status {
	case StatusError:
		return Screen{Kind: ScreenError, Message: ErrorMessage}
	case StatusReady:
	default:
		return Screen{Kind: ScreenLoading, Message: LoadingMessage}
	}

	rows := make([]Row, len(s.Games))
	for i, g := range s.Games {
		rows[i] = Row{
			ID:          g.ID,
			Title:       g.Title,
			Platform:    platformPrefix + games.JoinPlatforms(g.Platform),
			DeleteLabel: DeleteLabel,
		}
	}
	return Screen{
		Kind:    ScreenList,
		Heading: ListHeading,
		Rows:    rows,
		Form: &Form{
			Heading:       FormHeading,
			TitleLabel:    TitleLabel,
			PlatformLabel: PlatformLabel,
			SubmitLabel:   SubmitLabel,
			Draft:         s.Draft,
		},
	}
}

// Text renders a screen as plain text. The form is omitted when Form is nil.
func Text(sc Screen) string {
	var b strings.Builder
	switch sc.Kind {
	case ScreenLoading, ScreenError:
		b.WriteString(sc.Message)
		b.WriteByte('\n')
		return b.String()
	}

	b.WriteString(sc.Heading)
	b.WriteString("\n\n")
	for _, r := range sc.Rows {
		b.WriteString("  ")
		b.WriteString(r.Title)
		b.WriteString("\n    ")
		b.WriteString(r.Platform)
		b.WriteString("\n    [")
		b.WriteString(r.DeleteLabel)
		b.WriteString("] ")
		b.WriteString(r.ID)
		b.WriteByte('\n')
	}

	if f := sc.Form; f != nil {
		b.WriteByte('\n')
		b.WriteString(f.Heading)
		b.WriteByte('\n')
		b.WriteString(f.TitleLabel + ": " + f.Draft.Title + "\n")
		b.WriteString(f.PlatformLabel + ": " + f.Draft.PlatformRaw + "\n")
		b.WriteString("[" + f.SubmitLabel + "]\n")
	}
	return b.String()
}
