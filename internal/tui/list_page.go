package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/oauthkit/oauthkit/internal/oauth/provider"
	"github.com/oauthkit/oauthkit/internal/tui/models"
)

// listKeyMap holds key bindings for the provider list.
type listKeyMap struct {
	inspect key.Binding
	quit    key.Binding
}

// OpenDetailMsg asks the app to show the detail page for an item.
type OpenDetailMsg struct {
	Item models.ProviderItem
}

func newListKeyMap() *listKeyMap {
	return &listKeyMap{
		inspect: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Inspect provider"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
	}
}

// ListPageModel shows the closed set of providers.
type ListPageModel struct {
	list list.Model
	keys *listKeyMap
}

// NewListPageModel builds the provider list page.
func NewListPageModel() ListPageModel {
	listKeys := newListKeyMap()

	descriptors := provider.All()
	items := make([]list.Item, len(descriptors))
	for i, desc := range descriptors {
		items[i] = models.ProviderItem{Descriptor: desc}
	}

	delegateKeys := newDelegateKeyMap()
	delegate := newItemDelegate(delegateKeys)

	l := list.New(items, delegate, 0, 0)
	l.Title = titleStyle.Render("OAuth Provider Playground")
	l.SetShowFilter(true)

	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			listKeys.inspect,
			listKeys.quit,
		}
	}
	return ListPageModel{list: l, keys: listKeys}
}

// Init returns the initial command for the list page.
func (m ListPageModel) Init() tea.Cmd {
	return nil
}

// Update handles list navigation and inspection.
func (m ListPageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Filtering owns the keyboard while active.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.inspect):
			if item, ok := m.list.SelectedItem().(models.ProviderItem); ok {
				return m, func() tea.Msg {
					return OpenDetailMsg{Item: item}
				}
			}
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list page.
func (m ListPageModel) View() string {
	return docStyle.Render(m.list.View())
}
