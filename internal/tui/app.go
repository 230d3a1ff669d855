// ABOUTME: Root bubbletea model for the wardrobe TUI
// ABOUTME: Routes input per screen and dispatches controller calls as commands

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wardrobeapp/wardrobe-cli/internal/auth"
	"github.com/wardrobeapp/wardrobe-cli/internal/client"
	"github.com/wardrobeapp/wardrobe-cli/internal/closet"
	"github.com/wardrobeapp/wardrobe-cli/internal/outfit"
	"github.com/wardrobeapp/wardrobe-cli/internal/session"
	"github.com/wardrobeapp/wardrobe-cli/internal/tui/authform"
	"github.com/wardrobeapp/wardrobe-cli/internal/tui/debuglog"
	"github.com/wardrobeapp/wardrobe-cli/internal/tui/icons"
	"github.com/wardrobeapp/wardrobe-cli/internal/tui/styles"
	"github.com/wardrobeapp/wardrobe-cli/internal/tui/uploadform"
	"github.com/wardrobeapp/wardrobe-cli/internal/tui/views"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenAuth Screen = iota
	ScreenCloset
	ScreenUpload
	ScreenOutfit
)

const minTerminalWidth = 60

// providersLoadedMsg is sent when the provider status refresh finishes
type providersLoadedMsg struct{}

// sessionValidatedMsg is sent when boot-time token validation finishes
type sessionValidatedMsg struct {
	err error
}

// authResultMsg is sent when a login or register attempt finishes
type authResultMsg struct {
	err error
}

// socialLoginMsg is sent when a social-login start call finishes
type socialLoginMsg struct {
	url string
	err error
}

// itemsLoadedMsg is sent when a closet refresh finishes
type itemsLoadedMsg struct {
	err error
}

// uploadResultMsg is sent when an upload batch finishes
type uploadResultMsg struct {
	created int
	err     error
}

// deleteResultMsg is sent when a delete-plus-refresh finishes
type deleteResultMsg struct {
	err error
}

// outfitResultMsg is sent when a recommendation call finishes
type outfitResultMsg struct {
	rec *client.Recommendation
	err error
}

// App is the root model for the TUI. Controllers own the session and the
// closet; the app owns only presentation state and the message channels.
type App struct {
	auth   *auth.Controller
	closet *closet.Controller
	outfit *outfit.Controller
	store  *session.Store

	screen Screen
	width  int
	height int

	// busy disables mutation triggers while one is in flight, serializing
	// mutating calls on top of the refetch-after-write policy.
	busy bool

	themeName string
	st        styles.Set
	spin      spinner.Model

	authMessage   string
	closetMessage string
	uploadMessage string
	outfitMessage string

	rec      *client.Recommendation
	occasion string
	cursor   int

	authForm   *authform.Form
	uploadForm *uploadform.Form
}

// New creates the TUI application. The theme preference is read from the
// durable store; session state was already derived by the auth controller.
func New(authCtrl *auth.Controller, closetCtrl *closet.Controller, outfitCtrl *outfit.Controller, store *session.Store) *App {
	themeName := styles.DefaultTheme
	if saved, ok := store.Get(session.ThemeKey); ok {
		themeName = styles.Lookup(saved).Name
	}

	a := &App{
		auth:      authCtrl,
		closet:    closetCtrl,
		outfit:    outfitCtrl,
		store:     store,
		screen:    ScreenAuth,
		themeName: themeName,
		st:        styles.NewSet(styles.Lookup(themeName)),
		occasion:  "all",
	}
	a.authForm = authform.New(a.st)
	a.spin = spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(a.st.Key))
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loadProviders(), a.authForm.Init()}
	if a.auth.State() == auth.StatePendingValidation {
		cmds = append(cmds, a.validateSession())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.authForm != nil {
			a.authForm.Update(msg)
		}
		if a.uploadForm != nil {
			a.uploadForm.Update(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.screen {
		case ScreenAuth:
			return a.updateAuthForm(msg)
		case ScreenCloset:
			return a.updateCloset(msg)
		case ScreenUpload:
			return a.updateUploadForm(msg)
		case ScreenOutfit:
			return a.updateOutfit(msg)
		}

	case providersLoadedMsg:
		return a, nil

	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case sessionValidatedMsg:
		if msg.err != nil {
			debuglog.Error("validate", msg.err)
			a.enterAuth(auth.ExpiredMessage)
			return a, a.authForm.Init()
		}
		a.screen = ScreenCloset
		return a, a.refreshItems()

	case authform.SubmitMsg:
		if a.busy {
			return a, nil
		}
		a.busy = true
		a.authMessage = ""
		return a, tea.Batch(a.signIn(msg), a.spin.Tick)

	case authform.SocialMsg:
		if a.busy {
			return a, nil
		}
		a.busy = true
		return a, tea.Batch(a.startSocialLogin(msg.Provider), a.spin.Tick)

	case authform.CancelledMsg:
		return a, tea.Quit

	case authResultMsg:
		a.busy = false
		if msg.err != nil {
			a.enterAuth(msg.err.Error())
			return a, a.authForm.Init()
		}
		a.screen = ScreenCloset
		return a, a.refreshItems()

	case socialLoginMsg:
		a.busy = false
		if msg.err != nil {
			a.enterAuth(msg.err.Error())
			return a, a.authForm.Init()
		}
		a.enterAuth("Open this URL in your browser to continue:\n" + msg.url +
			"\nThen run: wardrobe login --from-redirect <redirect-url>")
		return a, a.authForm.Init()

	case itemsLoadedMsg:
		a.busy = false
		if msg.err != nil {
			debuglog.Error("refresh", msg.err)
			a.closetMessage = msg.err.Error()
			return a, nil
		}
		a.closetMessage = ""
		a.clampCursor()
		return a, nil

	case uploadform.SubmitMsg:
		if a.busy {
			return a, nil
		}
		a.busy = true
		a.uploadMessage = ""
		return a, tea.Batch(a.runUpload(msg), a.spin.Tick)

	case uploadform.CancelledMsg:
		a.screen = ScreenCloset
		a.uploadForm = nil
		return a, nil

	case uploadResultMsg:
		a.busy = false
		if msg.err != nil {
			debuglog.Error("upload", msg.err)
			a.uploadMessage = msg.err.Error()
			a.uploadForm = uploadform.New(a.st)
			return a, a.uploadForm.Init()
		}
		a.uploadForm = nil
		a.screen = ScreenCloset
		a.closetMessage = fmt.Sprintf("Uploaded %d item(s).", msg.created)
		a.clampCursor()
		return a, nil

	case deleteResultMsg:
		a.busy = false
		if msg.err != nil {
			debuglog.Error("delete", msg.err)
			a.closetMessage = msg.err.Error()
			return a, nil
		}
		a.closetMessage = ""
		a.clampCursor()
		return a, nil

	case outfitResultMsg:
		a.busy = false
		if msg.err != nil {
			debuglog.Error("recommend", msg.err)
			a.rec = nil
			a.outfitMessage = msg.err.Error()
			return a, nil
		}
		a.rec = msg.rec
		a.outfitMessage = ""
		return a, nil

	default:
		// Forward unknown messages to the active form (huh internals).
		if a.screen == ScreenAuth && a.authForm != nil {
			return a.updateAuthForm(msg)
		}
		if a.screen == ScreenUpload && a.uploadForm != nil {
			return a.updateUploadForm(msg)
		}
	}

	return a, nil
}

func (a *App) updateAuthForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.authForm == nil {
		return a, nil
	}
	model, cmd := a.authForm.Update(msg)
	a.authForm = model.(*authform.Form)
	return a, cmd
}

func (a *App) updateUploadForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.uploadForm == nil {
		return a, nil
	}
	model, cmd := a.uploadForm.Update(msg)
	a.uploadForm = model.(*uploadform.Form)
	return a, cmd
}

func (a *App) updateCloset(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.closet.Items())-1 {
			a.cursor++
		}
	case "r":
		return a, a.refreshItems()
	case "d":
		if a.busy {
			return a, nil
		}
		items := a.closet.Items()
		if a.cursor < len(items) {
			a.busy = true
			return a, tea.Batch(a.deleteItem(items[a.cursor].ID), a.spin.Tick)
		}
	case "u":
		if a.busy {
			return a, nil
		}
		a.screen = ScreenUpload
		a.uploadMessage = ""
		a.uploadForm = uploadform.New(a.st)
		return a, a.uploadForm.Init()
	case "o":
		a.screen = ScreenOutfit
		return a, nil
	case "t":
		a.cycleTheme()
	case "l":
		a.logout()
		return a, a.authForm.Init()
	}
	return a, nil
}

func (a *App) updateOutfit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	occasions := map[string]string{
		"1": "daily", "2": "work", "3": "date", "4": "sport", "5": "all",
	}

	switch key := msg.String(); key {
	case "q":
		return a, tea.Quit
	case "b":
		a.screen = ScreenCloset
		return a, nil
	case "t":
		a.cycleTheme()
	case "enter", "g":
		return a, a.recommend()
	default:
		if occasion, ok := occasions[key]; ok {
			a.occasion = occasion
			return a, a.recommend()
		}
	}
	return a, nil
}

// enterAuth switches to the auth screen with a fresh form and message.
func (a *App) enterAuth(message string) {
	a.screen = ScreenAuth
	a.authMessage = message
	a.authForm = authform.New(a.st)
}

// logout tears the whole client state down: session, closet, and any
// recommendation on display. Safe to invoke when already anonymous.
func (a *App) logout() {
	a.enterAuth(a.auth.Logout(true))
	a.closet.Clear()
	a.rec = nil
	a.cursor = 0
	a.closetMessage = ""
	a.outfitMessage = ""
}

func (a *App) cycleTheme() {
	a.themeName = styles.Next(a.themeName)
	a.st = styles.NewSet(styles.Lookup(a.themeName))
	a.spin.Style = a.st.Key
	if err := a.store.Set(session.ThemeKey, a.themeName); err != nil {
		debuglog.Error("theme", err)
	}
}

func (a *App) clampCursor() {
	if max := len(a.closet.Items()) - 1; a.cursor > max {
		a.cursor = max
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// Commands

func (a *App) loadProviders() tea.Cmd {
	return func() tea.Msg {
		a.auth.LoadProviderStatus(context.Background())
		return providersLoadedMsg{}
	}
}

func (a *App) validateSession() tea.Cmd {
	return func() tea.Msg {
		return sessionValidatedMsg{err: a.auth.Validate(context.Background())}
	}
}

func (a *App) signIn(msg authform.SubmitMsg) tea.Cmd {
	return func() tea.Msg {
		var err error
		if msg.Register {
			err = a.auth.Register(context.Background(), msg.Username, msg.Password)
		} else {
			err = a.auth.Login(context.Background(), msg.Username, msg.Password)
		}
		return authResultMsg{err: err}
	}
}

func (a *App) startSocialLogin(provider string) tea.Cmd {
	return func() tea.Msg {
		url, err := a.auth.StartSocialLogin(context.Background(), provider, "")
		return socialLoginMsg{url: url, err: err}
	}
}

func (a *App) refreshItems() tea.Cmd {
	return func() tea.Msg {
		return itemsLoadedMsg{err: a.closet.Refresh(context.Background())}
	}
}

func (a *App) deleteItem(id int) tea.Cmd {
	return func() tea.Msg {
		return deleteResultMsg{err: a.closet.Delete(context.Background(), id)}
	}
}

func (a *App) runUpload(msg uploadform.SubmitMsg) tea.Cmd {
	return func() tea.Msg {
		files, err := closet.ReadFiles(msg.Paths)
		if err != nil {
			return uploadResultMsg{err: err}
		}
		created, err := a.closet.Upload(context.Background(), closet.UploadRequest{
			Name:     msg.Name,
			Category: msg.Category,
			Occasion: msg.Occasion,
			Fit:      msg.Fit,
			Warmth:   msg.Warmth,
			Files:    files,
		})
		return uploadResultMsg{created: created, err: err}
	}
}

func (a *App) recommend() tea.Cmd {
	occasion := a.occasion
	return func() tea.Msg {
		rec, err := a.outfit.Recommend(context.Background(), occasion)
		return outfitResultMsg{rec: rec, err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenAuth:
		content = a.viewAuth()
	case ScreenCloset:
		content = views.Closet(a.st, a.closet.Items(), a.cursor, a.closetMessage)
	case ScreenUpload:
		content = a.viewUpload()
	case ScreenOutfit:
		content = views.Outfit(a.st, a.rec, a.outfitMessage)
	default:
		content = a.viewAuth()
	}

	if a.busy {
		content += "\n" + a.spin.View() + a.st.Help.Render(" working...")
	}

	return a.renderHeader() + "\n" + content + "\n" + a.renderFooter()
}

func (a *App) viewAuth() string {
	var b strings.Builder
	if a.authForm != nil {
		b.WriteString(a.authForm.View())
	}
	b.WriteString("\n")
	b.WriteString(views.SocialStatus(a.st, a.auth.Providers()))
	if a.authMessage != "" {
		b.WriteString("\n\n" + a.st.Error.Render(a.authMessage))
	}
	return b.String()
}

func (a *App) viewUpload() string {
	var b strings.Builder
	if a.uploadForm != nil {
		b.WriteString(a.uploadForm.View())
	}
	if a.uploadMessage != "" {
		b.WriteString("\n" + a.st.Error.Render(a.uploadMessage))
	}
	return b.String()
}

// renderHeader creates the header bar with app branding and identity
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(a.st.Theme.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(a.st.Theme.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(a.st.Theme.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("Wardrobe"))

	rightText := ""
	if user := a.auth.User(); user != nil {
		rightText = contextStyle.Render(icons.User.String()+" "+user.Username) + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftText) - lipgloss.Width(rightText)
	if fillWidth < 0 {
		fillWidth = 0
	}

	return borderStyle.Render("╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮")
}

// renderFooter creates the footer with per-screen keyboard shortcuts
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(a.st.Theme.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(a.st.Theme.Secondary)
	labelStyle := lipgloss.NewStyle().Foreground(a.st.Theme.Muted)

	var shortcuts []string
	switch a.screen {
	case ScreenAuth:
		shortcuts = []string{"↑↓ Navigate", "Enter Submit", "Esc Quit"}
	case ScreenCloset:
		shortcuts = []string{"↑↓ Select", "u Upload", "o Outfit", "d Delete", "r Refresh", "t Theme", "l Logout", "q Quit"}
	case ScreenUpload:
		shortcuts = []string{"↑↓ Navigate", "Enter Submit", "Esc Back"}
	case ScreenOutfit:
		shortcuts = []string{"1-5 Occasion", "Enter Generate", "b Back", "q Quit"}
	}

	var styled []string
	var plain []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styled = append(styled, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styled = append(styled, s)
		}
		plain = append(plain, s)
	}

	leftText := " " + strings.Join(styled, "  ")
	leftPlain := " " + strings.Join(plain, "  ")

	fillWidth := width - 4 - lipgloss.Width(leftPlain)
	if fillWidth < 0 {
		fillWidth = 0
	}

	return borderStyle.Render("╰─" + leftText + strings.Repeat("─", fillWidth) + "─╯")
}

// Run starts the TUI.
func Run(authCtrl *auth.Controller, closetCtrl *closet.Controller, outfitCtrl *outfit.Controller, store *session.Store) error {
	if err := debuglog.Init(session.DefaultConfigDir()); err == nil {
		defer debuglog.Close()
	}

	app := New(authCtrl, closetCtrl, outfitCtrl, store)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
