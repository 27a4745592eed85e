package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesprial/gameshelf/internal/games"
	"github.com/jamesprial/gameshelf/internal/view"
)

// fakeController records calls and serves a fixed state.
type fakeController struct {
	state   view.State
	drafts  []view.Draft
	submits int
	deletes []string
	err     error
}

func (f *fakeController) State() view.State { return f.state }

func (f *fakeController) SetDraft(title, platformRaw string) {
	d := view.Draft{Title: title, PlatformRaw: platformRaw}
	f.drafts = append(f.drafts, d)
	f.state.Seq++
	f.state.Draft = d
}

func (f *fakeController) SubmitDraft() error {
	f.submits++
	return f.err
}

func (f *fakeController) SubmitDelete(id string) error {
	f.deletes = append(f.deletes, id)
	return f.err
}

func readyState() view.State {
	return view.State{
		Seq:    2,
		Status: view.StatusReady,
		Games: []games.Game{
			{ID: "1", Title: "Celeste", Platform: []string{"PC", "Switch"}},
			{ID: "2", Title: "Hades", Platform: []string{"PC"}},
		},
	}
}

func newTestModel(state view.State) (Model, *fakeController) {
	ctrl := &fakeController{state: state}
	return NewModel(ctrl, NewUpdates(), NewStyles(DarkTheme())), ctrl
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// ---------------------------------------------------------------------------
// Screens
// ---------------------------------------------------------------------------

func Test_Model_View_Cases(t *testing.T) {
	tests := []struct {
		name    string
		state   view.State
		want    []string
		notWant []string
	}{
		{
			name:    "loading",
			state:   view.State{Seq: 1, Status: view.StatusLoading},
			want:    []string{AppTitle, "Loading..."},
			notWant: []string{"Games", "Add Game"},
		},
		{
			name:    "error",
			state:   view.State{Seq: 2, Status: view.StatusError},
			want:    []string{"Error :("},
			notWant: []string{"Loading...", "Add Game"},
		},
		{
			name:  "ready",
			state: readyState(),
			want: []string{
				"Games", "Celeste", "Platform: PC, Switch", "Hades", "[Delete]",
				"Add a new game", "Title", "Platform (comma separated)", "Add Game",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(tt.state)
			out := m.View()
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, nw := range tt.notWant {
				assert.NotContains(t, out, nw)
			}
		})
	}
}

func Test_Model_StateMsg_IgnoresOlderSnapshots(t *testing.T) {
	m, _ := newTestModel(readyState())

	next, cmd := m.Update(stateMsg(view.State{Seq: 1, Status: view.StatusLoading}))
	m = next.(Model)
	assert.NotNil(t, cmd, "model keeps listening")
	assert.Equal(t, view.ScreenList, m.screen.Kind)

	next, _ = m.Update(stateMsg(view.State{Seq: 3, Status: view.StatusError}))
	m = next.(Model)
	assert.Equal(t, view.ScreenError, m.screen.Kind)
}

// ---------------------------------------------------------------------------
// Keys
// ---------------------------------------------------------------------------

func Test_Model_DeleteSelectedRow(t *testing.T) {
	m, ctrl := newTestModel(readyState())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, runes("d"))
	assert.Equal(t, []string{"2"}, ctrl.deletes)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp}, runes("d"))
	assert.Equal(t, []string{"2", "1"}, ctrl.deletes)
}

func Test_Model_TypingUpdatesDraft(t *testing.T) {
	m, ctrl := newTestModel(readyState())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("Hi"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("A,,B"))

	require.NotEmpty(t, ctrl.drafts)
	assert.Equal(t, view.Draft{Title: "Hi", PlatformRaw: "A,,B"}, ctrl.drafts[len(ctrl.drafts)-1])
	assert.Equal(t, "A,,B", m.platform.Value())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, ctrl.submits)
}

func Test_Model_SubmitButton(t *testing.T) {
	m, ctrl := newTestModel(readyState())
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, focusSubmit, m.focus)
	assert.Equal(t, 1, ctrl.submits)
}

func Test_Model_SubmitErrorShowsNotice(t *testing.T) {
	m, ctrl := newTestModel(readyState())
	ctrl.err = view.ErrFailed
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(), view.ErrFailed.Error())
}

func Test_Model_ControllerDraftResetsInputs(t *testing.T) {
	m, _ := newTestModel(readyState())
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("Hades"))
	require.Equal(t, "Hades", m.title.Value())

	cleared := readyState()
	cleared.Seq = 100
	next, _ := m.Update(stateMsg(cleared))
	m = next.(Model)
	assert.Empty(t, m.title.Value())
}

func Test_Model_Quit_Cases(t *testing.T) {
	tests := []struct {
		name  string
		state view.State
		key   tea.KeyMsg
		quit  bool
	}{
		{name: "ctrl+c while loading", state: view.State{Status: view.StatusLoading}, key: tea.KeyMsg{Type: tea.KeyCtrlC}, quit: true},
		{name: "q on error screen", state: view.State{Status: view.StatusError}, key: runes("q"), quit: true},
		{name: "q on list", state: readyState(), key: runes("q"), quit: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(tt.state)
			_, cmd := m.Update(tt.key)
			require.NotNil(t, cmd)
			_, isQuit := cmd().(tea.QuitMsg)
			assert.Equal(t, tt.quit, isQuit)
		})
	}
}

func Test_Model_QTypedIntoTitle(t *testing.T) {
	m, ctrl := newTestModel(readyState())
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("q"))
	assert.Equal(t, "q", m.title.Value())
	assert.Equal(t, "q", ctrl.state.Draft.Title)
}

// ---------------------------------------------------------------------------
// Updates mailbox
// ---------------------------------------------------------------------------

func Test_Updates_LatestWins(t *testing.T) {
	u := NewUpdates()
	u.Push(view.State{Seq: 1})
	u.Push(view.State{Seq: 2})
	u.Push(view.State{Seq: 3})

	msg := u.wait()()
	assert.Equal(t, uint64(3), view.State(msg.(stateMsg)).Seq)
}

func Test_Updates_CloseReleasesWait(t *testing.T) {
	u := NewUpdates()
	got := make(chan tea.Msg, 1)
	go func() { got <- u.wait()() }()

	u.Close()
	u.Close()

	select {
	case msg := <-got:
		assert.Nil(t, msg)
	case <-time.After(time.Second):
		t.Fatal("wait did not return after Close")
	}
}

func Test_ThemeByName(t *testing.T) {
	assert.Equal(t, LightTheme(), ThemeByName("light"))
	assert.Equal(t, DarkTheme(), ThemeByName("dark"))
	assert.Equal(t, DarkTheme(), ThemeByName(""))
}

func Test_Model_EmptyList(t *testing.T) {
	state := readyState()
	state.Games = []games.Game{}
	m, ctrl := newTestModel(state)
	m = press(t, m, runes("d"))
	assert.Empty(t, ctrl.deletes)
	assert.True(t, strings.Contains(m.View(), "Add a new game"))
}
