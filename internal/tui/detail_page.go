package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/oauthkit/oauthkit/internal/oauth/flow"
	"github.com/oauthkit/oauthkit/internal/tui/models"
)

// detailKeyMap holds key bindings for the detail page.
type detailKeyMap struct {
	regenerate key.Binding
	back       key.Binding
	quit       key.Binding
}

func newDetailKeyMap() *detailKeyMap {
	return &detailKeyMap{
		regenerate: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Regenerate URL"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
	}
}

// BackToListMsg returns the app to the provider list.
type BackToListMsg struct{}

// DetailPageModel shows one provider's endpoints and a sample flow.
type DetailPageModel struct {
	item      models.ProviderItem
	keys      *detailKeyMap
	sampleURL string
	width     int
}

// NewDetailPageModel builds the detail page for one provider.
func NewDetailPageModel(item models.ProviderItem) DetailPageModel {
	m := DetailPageModel{item: item, keys: newDetailKeyMap()}
	m.sampleURL = m.buildSampleURL()
	return m
}

// buildSampleURL arms a throwaway flow engine with placeholder
// credentials so the page shows a faithful authorization URL.
func (m DetailPageModel) buildSampleURL() string {
	client, err := flow.NewClient(flow.Config{
		Provider:     m.item.Descriptor,
		ClientID:     "your-client-id",
		ClientSecret: "your-client-secret",
		RedirectURI:  "http://localhost:8080/auth/callback",
		UsePKCE:      m.item.UsePKCE,
	}, nil)
	if err != nil {
		return ""
	}
	u, err := client.AuthorizationURL(flow.AuthOptions{})
	if err != nil {
		return ""
	}
	return u
}

// Init returns the initial command for the detail page.
func (m DetailPageModel) Init() tea.Cmd {
	return nil
}

// Update handles detail page keys.
func (m DetailPageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.back):
			return m, func() tea.Msg { return BackToListMsg{} }
		case key.Matches(msg, m.keys.regenerate):
			m.sampleURL = m.buildSampleURL()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// View renders the provider sheet.
func (m DetailPageModel) View() string {
	desc := m.item.Descriptor
	var b strings.Builder

	b.WriteString(titleStyle.Render(desc.DisplayName))
	b.WriteString("\n\n")

	b.WriteString(detailHeaderStyle.Render("Endpoints"))
	b.WriteString("\n")
	writeField(&b, "authorization", desc.AuthorizationEndpoint)
	writeField(&b, "token", desc.TokenEndpoint)
	if desc.SupportsRevocation() {
		writeField(&b, "revocation", desc.RevocationEndpoint)
	}
	if desc.SupportsUserInfo() {
		writeField(&b, "userinfo", desc.UserInfoEndpoint)
	}
	b.WriteString("\n")

	b.WriteString(detailHeaderStyle.Render("Default scopes"))
	b.WriteString("\n")
	if len(desc.DefaultScopes) == 0 {
		writeField(&b, "", "(none)")
	} else {
		writeField(&b, "", strings.Join(desc.DefaultScopes, " "))
	}
	b.WriteString("\n")

	b.WriteString(detailHeaderStyle.Render("Operations"))
	b.WriteString("\n")
	writeField(&b, "exchange", "yes")
	writeField(&b, "refresh", supported(desc.TokenEndpoint != ""))
	writeField(&b, "revoke", supported(desc.SupportsRevocation()))
	writeField(&b, "userinfo", supported(desc.SupportsUserInfo()))
	b.WriteString("\n")

	b.WriteString(detailHeaderStyle.Render("Sample authorization URL"))
	if m.item.UsePKCE {
		b.WriteString(statusMessageStyle("  (PKCE S256)"))
	}
	b.WriteString("\n")
	b.WriteString(urlStyle(wrap(m.sampleURL, m.width-4)))
	b.WriteString("\n\n")
	b.WriteString(statusMessageStyle("r regenerate · esc back · q quit"))

	return docStyle.Render(b.String())
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label))
	b.WriteString(value)
	b.WriteString("\n")
}

func supported(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

func wrap(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	var b strings.Builder
	for len(s) > width {
		b.WriteString(s[:width])
		b.WriteString("\n")
		s = s[width:]
	}
	b.WriteString(s)
	return b.String()
}
