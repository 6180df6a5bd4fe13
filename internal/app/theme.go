package app

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	notebookStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true)
	noteStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	favoriteStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("179"))
	selectedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	loadingStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	dividerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	tabStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235"))
	tabActiveStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("239")).Bold(true)
	tabDirtyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("179")).Background(lipgloss.Color("235"))
	menuHeaderStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("251")).Background(lipgloss.Color("235")).Bold(true)
	menuItemStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235"))
	confirmBorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("208"))
	searchMatchStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true)
	searchCountStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Faint(true)
	toastInfoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Bold(true)
	toastWarningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("136")).Bold(true)
	toastErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true)
)
