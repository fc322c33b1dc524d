package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2e8b57")).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)
)

// Model defines the application state
type Model struct {
	mainMenu      list.Model
	frequentTable table.Model
	textInput     textinput.Model
	client        *ApiClient
	currentView   string
	suggestions   *SuggestionsResponse
	itemDetail    *ItemInfo
	status        string
	error         string
}

// item represents a list item
type item struct {
	title, desc string
}

// FilterValue implements list.Item interface
func (i item) FilterValue() string { return i.title }

// Title implements list.Item interface
func (i item) Title() string { return i.title }

// Description implements list.Item interface
func (i item) Description() string { return i.desc }

// Initialize the model
func initialModel() Model {
	// Initialize main menu items
	items := []list.Item{
		item{title: "Record Purchase", desc: "Add an item bought in a given week"},
		item{title: "Suggestions", desc: "Generate the suggested shopping list"},
		item{title: "Frequent Items", desc: "Show the most purchased items"},
		item{title: "Rotate Week", desc: "Re-add perishables from two weeks ago"},
		item{title: "Item Lookup", desc: "Inspect one item's purchase history"},
		item{title: "Exit", desc: "Exit the application"},
	}

	mainMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "Pantry CLI"

	// Initialize frequent items view
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Item", Width: 30},
	}
	frequentTable := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	// Initialize text input
	ti := textinput.New()
	ti.Placeholder = "item,week[,category]"
	ti.CharLimit = 156
	ti.Width = 40

	return Model{
		mainMenu:      mainMenu,
		frequentTable: frequentTable,
		textInput:     ti,
		client:        NewApiClient(),
		currentView:   "main",
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.mainMenu.SetSize(msg.Width-h, msg.Height-v)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.currentView == "main" {
				return m, tea.Quit
			}
		case "enter":
			switch m.currentView {
			case "main":
				selected, ok := m.mainMenu.SelectedItem().(item)
				if !ok {
					break
				}
				switch selected.title {
				case "Exit":
					return m, tea.Quit
				case "Record Purchase":
					m.currentView = "record"
					m.error = ""
					m.status = ""
					m.textInput.Placeholder = "item,week[,category]"
					m.textInput.SetValue("")
					m.textInput.Focus()
				case "Suggestions":
					m.currentView = "suggestions"
					m.error = ""
					return m, fetchSuggestions(m.client)
				case "Frequent Items":
					m.currentView = "frequent"
					m.error = ""
					return m, fetchFrequent(m.client)
				case "Rotate Week":
					m.currentView = "rotate"
					m.error = ""
					m.status = ""
					m.textInput.Placeholder = "week number"
					m.textInput.SetValue("")
					m.textInput.Focus()
				case "Item Lookup":
					m.currentView = "lookup"
					m.error = ""
					m.itemDetail = nil
					m.textInput.Placeholder = "item name"
					m.textInput.SetValue("")
					m.textInput.Focus()
				}
			case "record":
				return m, recordPurchase(m.client, m.textInput.Value())
			case "rotate":
				return m, rotateWeek(m.client, m.textInput.Value())
			case "lookup":
				return m, lookupItem(m.client, m.textInput.Value())
			}
		case "esc":
			if m.currentView != "main" {
				m.currentView = "main"
				m.error = ""
				m.status = ""
			}
		}
	case suggestionsMsg:
		m.suggestions = msg.response
		return m, nil
	case frequentMsg:
		rows := make([]table.Row, len(msg.items))
		for i, name := range msg.items {
			rows[i] = table.Row{fmt.Sprintf("%d", i+1), name}
		}
		m.frequentTable.SetRows(rows)
		return m, nil
	case rotatedMsg:
		if len(msg.response.Rotated) == 0 {
			m.status = fmt.Sprintf("Nothing to rotate for week %d", msg.response.Week)
		} else {
			m.status = fmt.Sprintf("Rotated: %s", strings.Join(msg.response.Rotated, ", "))
		}
		m.error = ""
		return m, nil
	case itemMsg:
		m.itemDetail = msg.info
		m.error = ""
		return m, nil
	case confirmMsg:
		m.status = msg.message
		m.error = ""
		m.textInput.SetValue("")
		return m, nil
	case errorMsg:
		m.error = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentView {
	case "main":
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case "frequent":
		m.frequentTable, cmd = m.frequentTable.Update(msg)
	case "record", "rotate", "lookup":
		m.textInput, cmd = m.textInput.Update(msg)
	}

	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	switch m.currentView {
	case "main":
		return docStyle.Render(m.mainMenu.View())
	case "record":
		help := "\nFormat: <item>,<week>[,<category>]\nPress 'enter' to record, 'esc' to go back\n"
		return m.formView("Record Purchase", help)
	case "rotate":
		help := "\nEnter the current week number.\nPress 'enter' to rotate, 'esc' to go back\n"
		return m.formView("Rotate Week", help)
	case "lookup":
		view := titleStyle.Render("Item Lookup") + "\n\n" + m.textInput.View() + "\n"
		if m.itemDetail != nil {
			view += "\n" + itemDetailView(m.itemDetail)
		}
		if m.error != "" {
			view += "\n" + errorStyle.Render(m.error) + "\n"
		}
		view += "\nPress 'enter' to look up, 'esc' to go back\n"
		return docStyle.Render(view)
	case "suggestions":
		view := titleStyle.Render("Suggested List") + "\n\n"
		if m.suggestions == nil {
			view += "Loading..."
		} else {
			view += fmt.Sprintf("Evaluated at week %d\n\n", m.suggestions.CurrentWeek)
			if len(m.suggestions.Suggestions) == 0 {
				view += "Nothing to suggest yet - record some purchases first\n"
			}
			for i, name := range m.suggestions.Suggestions {
				view += fmt.Sprintf("%d. %s\n", i+1, name)
			}
		}
		if m.error != "" {
			view += "\n" + errorStyle.Render(m.error) + "\n"
		}
		view += "\nPress 'esc' to go back"
		return docStyle.Render(view)
	case "frequent":
		view := titleStyle.Render("Frequent Items") + "\n\n" + m.frequentTable.View()
		if m.error != "" {
			view += "\n" + errorStyle.Render(m.error) + "\n"
		}
		view += "\nPress 'esc' to go back"
		return docStyle.Render(view)
	default:
		return "Loading..."
	}
}

// formView renders a titled text-input view with status and error lines
func (m Model) formView(title, help string) string {
	view := titleStyle.Render(title) + "\n\n" + m.textInput.View() + "\n"
	if m.status != "" {
		view += "\n" + successStyle.Render(m.status) + "\n"
	}
	if m.error != "" {
		view += "\n" + errorStyle.Render(m.error) + "\n"
	}
	return docStyle.Render(view + help)
}

// itemDetailView renders one item's tracked state
func itemDetailView(info *ItemInfo) string {
	view := fmt.Sprintf("Item: %s\n", info.Name)
	if info.Category != "" {
		view += fmt.Sprintf("Category: %s\n", info.Category)
	}
	view += fmt.Sprintf("Time-sensitive: %t\n", info.TimeSensitive)
	view += fmt.Sprintf("Purchases: %d\n", info.Frequency)
	if info.LastPurchase >= 0 {
		view += fmt.Sprintf("Last purchased: week %d\n", info.LastPurchase)
	} else {
		view += "Last purchased: never\n"
	}
	if info.AverageInterval >= 0 {
		view += fmt.Sprintf("Average interval: %.1f weeks\n", info.AverageInterval)
	} else {
		view += "Average interval: not enough history\n"
	}
	return view
}

// Custom message types for the tea.Model
type suggestionsMsg struct {
	response *SuggestionsResponse
}

type frequentMsg struct {
	items []string
}

type rotatedMsg struct {
	response *RotateResponse
}

type itemMsg struct {
	info *ItemInfo
}

type errorMsg struct {
	err string
}

type confirmMsg struct {
	message string
}

// fetchSuggestions retrieves the suggested list from the API
func fetchSuggestions(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		suggestions, err := client.GetSuggestions()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching suggestions: %v", err)}
		}
		return suggestionsMsg{response: suggestions}
	}
}

// fetchFrequent retrieves the most purchased items from the API
func fetchFrequent(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		items, err := client.GetFrequent(10)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching frequent items: %v", err)}
		}
		return frequentMsg{items: items}
	}
}

// recordPurchase parses the input line and records a purchase
func recordPurchase(client *ApiClient, input string) tea.Cmd {
	return func() tea.Msg {
		parts := strings.Split(input, ",")
		if len(parts) < 2 || len(parts) > 3 {
			return errorMsg{err: "Format: <item>,<week>[,<category>]"}
		}

		name := strings.TrimSpace(parts[0])
		if name == "" {
			return errorMsg{err: "Item name must not be empty"}
		}

		week, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || week <= 0 {
			return errorMsg{err: "Week must be a positive integer"}
		}

		category := ""
		if len(parts) == 3 {
			category = strings.TrimSpace(parts[2])
		}

		info, err := client.RecordPurchase(name, week, category)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error recording purchase: %v", err)}
		}
		return confirmMsg{message: fmt.Sprintf("Recorded %s for week %d (%d total purchases)", info.Name, week, info.Frequency)}
	}
}

// rotateWeek parses the week and triggers a rotation
func rotateWeek(client *ApiClient, input string) tea.Cmd {
	return func() tea.Msg {
		week, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil || week <= 0 {
			return errorMsg{err: "Week must be a positive integer"}
		}

		rotated, err := client.Rotate(week)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error rotating: %v", err)}
		}
		return rotatedMsg{response: rotated}
	}
}

// lookupItem fetches the tracked view of one item
func lookupItem(client *ApiClient, input string) tea.Cmd {
	return func() tea.Msg {
		name := strings.TrimSpace(input)
		if name == "" {
			return errorMsg{err: "Item name must not be empty"}
		}

		info, err := client.GetItem(name)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching item: %v", err)}
		}
		return itemMsg{info: info}
	}
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
		os.Exit(1)
	}
}
