package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// AppModel is the main application model that manages page switching
type AppModel struct {
	listPage   ListPageModel
	detailPage DetailPageModel
	page       string // "list" or "detail"
}

// NewAppModel creates the playground application model
func NewAppModel() AppModel {
	return AppModel{
		listPage: NewListPageModel(),
		page:     "list",
	}
}

// Init initializes the AppModel
func (m AppModel) Init() tea.Cmd {
	return m.listPage.Init()
}

// Update handles app-level messages and delegates to the active page
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case OpenDetailMsg:
		m.page = "detail"
		m.detailPage = NewDetailPageModel(msg.Item)
		return m, m.detailPage.Init()

	case BackToListMsg:
		m.page = "list"
		return m, nil

	case tea.WindowSizeMsg:
		var cmd tea.Cmd
		var tempModel tea.Model

		tempModel, cmd = m.listPage.Update(msg)
		m.listPage = tempModel.(ListPageModel)
		cmds = append(cmds, cmd)

		tempModel, cmd = m.detailPage.Update(msg)
		m.detailPage = tempModel.(DetailPageModel)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	var tempModel tea.Model
	switch m.page {
	case "detail":
		tempModel, cmd = m.detailPage.Update(msg)
		m.detailPage = tempModel.(DetailPageModel)
		cmds = append(cmds, cmd)
	default: // list
		tempModel, cmd = m.listPage.Update(msg)
		m.listPage = tempModel.(ListPageModel)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the active page
func (m AppModel) View() string {
	if m.page == "detail" {
		return m.detailPage.View()
	}
	return m.listPage.View()
}
