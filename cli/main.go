package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0a84ff")).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff9f0a"))
)

var filters = []string{"all", "high_waste", "high_shrinkage", "missing_stock", "well_managed", "negative_shrinkage"}

var sortFields = []string{"", "total_cost", "waste_cost", "shrinkage_cost", "waste_percent", "ingredient"}

// Model defines the application state
type Model struct {
	reportTable table.Model
	spinner     spinner.Model
	client      *ApiClient
	files       map[string]string

	reportID  string
	report    *Report
	filterIdx int
	sortIdx   int
	ascending bool
	loading   bool
	status    string
	error     string
}

func initialModel(files map[string]string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	columns := []table.Column{
		{Title: "Ingredient", Width: 20},
		{Title: "Unit Cost", Width: 10},
		{Title: "Received", Width: 9},
		{Title: "Used", Width: 8},
		{Title: "Wasted", Width: 8},
		{Title: "Shrinkage", Width: 10},
		{Title: "Total Cost", Width: 11},
		{Title: "Waste %", Width: 8},
	}
	reportTable := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return Model{
		reportTable: reportTable,
		spinner:     s,
		client:      NewApiClient(),
		files:       files,
		loading:     true,
	}
}

// Init uploads the CSVs as soon as the program starts.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, uploadReport(m.client, m.files), tea.EnterAltScreen)
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "f":
			if m.report != nil {
				m.filterIdx = (m.filterIdx + 1) % len(filters)
				m.loading = true
				return m, m.refresh()
			}
		case "s":
			if m.report != nil {
				m.sortIdx = (m.sortIdx + 1) % len(sortFields)
				m.loading = true
				return m, m.refresh()
			}
		case "o":
			if m.report != nil && sortFields[m.sortIdx] != "" {
				m.ascending = !m.ascending
				m.loading = true
				return m, m.refresh()
			}
		case "e":
			if m.report != nil {
				return m, exportReport(m.client, m.reportID, "excel")
			}
		case "p":
			if m.report != nil {
				return m, exportReport(m.client, m.reportID, "pdf")
			}
		}
	case createdMsg:
		m.reportID = msg.id
		return m, m.refresh()
	case reportMsg:
		m.loading = false
		m.error = ""
		m.report = msg.report
		m.reportTable.SetRows(metricsToRows(msg.report.Metrics))
		return m, nil
	case exportedMsg:
		m.status = successStyle.Render("Saved " + msg.path)
		return m, nil
	case errorMsg:
		m.loading = false
		m.error = msg.err
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.reportTable, cmd = m.reportTable.Update(msg)
	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	if m.error != "" {
		return docStyle.Render(errorStyle.Render("Error") + "\n\n" + m.error + "\n\nPress 'q' to quit")
	}
	if m.loading || m.report == nil {
		return docStyle.Render(fmt.Sprintf("%s Processing report...", m.spinner.View()))
	}

	order := "desc"
	if m.ascending {
		order = "asc"
	}
	sortLabel := sortFields[m.sortIdx]
	if sortLabel == "" {
		sortLabel = "none"
	}

	view := titleStyle.Render("Ingredient Report") + "\n"
	view += infoStyle.Render(fmt.Sprintf("filter: %s  sort: %s (%s)", filters[m.filterIdx], sortLabel, order)) + "\n\n"
	view += m.reportTable.View() + "\n\n"

	s := m.report.Summary
	view += fmt.Sprintf("Ingredients: %d   Total: $%.2f   Waste: $%.2f   Shrinkage: $%.2f\n",
		s.TotalIngredients, s.TotalCost, s.TotalWasteCost, s.TotalShrinkageCost)

	for _, a := range m.report.Alerts {
		style := warnStyle
		if a.Severity == "critical" {
			style = errorStyle
		}
		view += style.Render(fmt.Sprintf("[%s] %s", a.Severity, a.Message)) + "\n"
	}
	for _, insight := range m.report.Insights {
		view += "• " + insight + "\n"
	}
	if n := len(m.report.Warnings); n > 0 {
		view += warnStyle.Render(fmt.Sprintf("%d data quality warning(s)", n)) + "\n"
	}
	if m.status != "" {
		view += m.status + "\n"
	}

	view += "\n'f' filter, 's' sort, 'o' order, 'e' export xlsx, 'p' export pdf, 'q' quit"
	return docStyle.Render(view)
}

func (m Model) refresh() tea.Cmd {
	order := "desc"
	if m.ascending {
		order = "asc"
	}
	return fetchReport(m.client, m.reportID, filters[m.filterIdx], sortFields[m.sortIdx], order)
}

// Custom message types for the tea.Model
type createdMsg struct {
	id string
}

type reportMsg struct {
	report *Report
}

type exportedMsg struct {
	path string
}

type errorMsg struct {
	err string
}

// uploadReport sends the four CSV files to the API
func uploadReport(client *ApiClient, files map[string]string) tea.Cmd {
	return func() tea.Msg {
		id, err := client.CreateReport(files)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error creating report: %v", err)}
		}
		return createdMsg{id: id}
	}
}

// fetchReport retrieves the current report view from the API
func fetchReport(client *ApiClient, id, filter, sortField, order string) tea.Cmd {
	return func() tea.Msg {
		rep, err := client.GetReport(id, filter, sortField, order)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching report: %v", err)}
		}
		return reportMsg{report: rep}
	}
}

// exportReport downloads the report in the given format
func exportReport(client *ApiClient, id, format string) tea.Cmd {
	return func() tea.Msg {
		path, err := client.ExportReport(id, format)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error exporting report: %v", err)}
		}
		return exportedMsg{path: path}
	}
}

// metricsToRows converts API records to table rows
func metricsToRows(metrics []Metrics) []table.Row {
	rows := make([]table.Row, len(metrics))
	for i, m := range metrics {
		rows[i] = table.Row{
			m.Ingredient,
			fmt.Sprintf("$%.2f", m.UnitCost),
			fmt.Sprintf("%.1f", m.ReceivedQty),
			fmt.Sprintf("%.1f", m.UsedQty),
			fmt.Sprintf("%.1f", m.WastedQty),
			fmt.Sprintf("%.1f", m.Shrinkage),
			fmt.Sprintf("$%.2f", m.TotalCost),
			fmt.Sprintf("%.1f%%", m.WastePercent),
		}
	}
	return rows
}

func main() {
	info := flag.String("info", "", "Path to the ingredient info CSV")
	stock := flag.String("stock", "", "Path to the input stock CSV")
	usage := flag.String("usage", "", "Path to the usage CSV")
	waste := flag.String("waste", "", "Path to the waste CSV")
	flag.Parse()

	files := map[string]string{
		"ingredient_info": *info,
		"input_stock":     *stock,
		"usage":           *usage,
		"waste":           *waste,
	}
	for field, path := range files {
		if path == "" {
			fmt.Printf("Missing -%s flag (%s upload)\n", flagFor(field), field)
			flag.Usage()
			os.Exit(1)
		}
	}

	p := tea.NewProgram(initialModel(files))
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
		os.Exit(1)
	}
}

func flagFor(field string) string {
	switch field {
	case "ingredient_info":
		return "info"
	case "input_stock":
		return "stock"
	case "usage":
		return "usage"
	default:
		return "waste"
	}
}
