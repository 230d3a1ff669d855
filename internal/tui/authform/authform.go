// ABOUTME: Login/register form as a bubbletea model built on huh
// ABOUTME: Emits submit messages for credentials or a social provider

package authform

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/wardrobeapp/wardrobe-cli/internal/tui/styles"
)

// Action selects what submitting the form does.
type Action string

const (
	ActionLogin    Action = "login"
	ActionRegister Action = "register"
	ActionWeChat   Action = "wechat"
	ActionQQ       Action = "qq"
)

// SubmitMsg is sent when credentials are submitted.
type SubmitMsg struct {
	Username string
	Password string
	Register bool
}

// SocialMsg is sent when a social provider is chosen instead.
type SocialMsg struct {
	Provider string
}

// CancelledMsg is sent when the user backs out of the form.
type CancelledMsg struct{}

// Form is the auth screen form.
type Form struct {
	form     *huh.Form
	action   Action
	username string
	password string
	width    int
}

// New creates a fresh auth form.
func New(st styles.Set) *Form {
	f := &Form{action: ActionLogin}
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Action]().
				Title("Action").
				Options(
					huh.NewOption("Log in", ActionLogin),
					huh.NewOption("Register", ActionRegister),
					huh.NewOption("Log in with WeChat", ActionWeChat),
					huh.NewOption("Log in with QQ", ActionQQ),
				).
				Value(&f.action),
			huh.NewInput().
				Title("Username").
				Placeholder("username").
				CharLimit(64).
				Value(&f.username),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				CharLimit(128).
				Value(&f.password),
		).Title("Sign in").
			Description("Social actions ignore the credential fields"),
	).WithTheme(formTheme(st))

	return f
}

// formTheme derives a huh theme from the active style set.
func formTheme(st styles.Set) *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = st.Title
	t.Group.Description = st.Subtitle

	t.Focused.Title = st.Key
	t.Focused.SelectSelector = st.Selected.SetString("> ")
	t.Focused.SelectedOption = st.Selected
	t.Focused.TextInput.Prompt = st.Key
	t.Focused.TextInput.Text = st.Value
	t.Focused.ErrorMessage = st.Error

	return t
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return f, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		return f, f.submit()
	}
	return f, cmd
}

func (f *Form) submit() tea.Cmd {
	switch f.action {
	case ActionWeChat:
		return func() tea.Msg { return SocialMsg{Provider: "wechat"} }
	case ActionQQ:
		return func() tea.Msg { return SocialMsg{Provider: "qq"} }
	default:
		username, password := f.username, f.password
		register := f.action == ActionRegister
		return func() tea.Msg {
			return SubmitMsg{Username: username, Password: password, Register: register}
		}
	}
}

// View implements tea.Model
func (f *Form) View() string {
	return f.form.View()
}
