package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/djazure-bootstrap/internal/config"
	"github.com/imamik/djazure-bootstrap/internal/provisioning"
	"github.com/imamik/djazure-bootstrap/internal/util/naming"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	nameStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorRed)
)

// renderSummary produces the lipgloss-styled result of a successful run.
// It never includes secret values.
func renderSummary(params config.BootstrapParameters, names naming.ResourceNames, state *provisioning.State, repo string) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  djazure bootstrap: %s", params.ProjectName)))
	b.WriteString("\n")
	b.WriteString(nameStyle.Render("  " + strings.Repeat("=", 30)))
	b.WriteString("\n\n")

	writeSection(&b, "Azure", [][2]string{
		{"subscription", params.SubscriptionID},
		{"region", params.Region},
		{"service principal", names.ServicePrincipal},
		{"client id", clientID(state)},
		{"resource group", names.ResourceGroup},
		{"storage account", names.StorageAccount},
		{"container", names.Container},
	})

	target := repo
	if target == "" {
		target = "current repository"
	}
	writeSection(&b, "GitHub", [][2]string{
		{"secrets published", target},
		{"superuser", params.AdminUsername},
	})

	return b.String()
}

// renderFailure lists the resources a failed run left behind.
func renderFailure(created []string) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(errorStyle.Render("  Bootstrap failed"))
	b.WriteString("\n")

	if len(created) == 0 {
		b.WriteString(nameStyle.Render("  No Azure resources were created."))
		b.WriteString("\n\n")
		return b.String()
	}

	b.WriteString(nameStyle.Render("  These resources were created and have not been removed:"))
	b.WriteString("\n")
	for _, r := range created {
		b.WriteString(fmt.Sprintf("    - %s\n", r))
	}
	b.WriteString("\n")
	return b.String()
}

func writeSection(b *strings.Builder, title string, rows [][2]string) {
	b.WriteString(sectionStyle.Render("  " + title))
	b.WriteString("\n")
	b.WriteString(nameStyle.Render("  " + strings.Repeat("-", 35)))
	b.WriteString("\n")
	for _, row := range rows {
		fmt.Fprintf(b, "  %s  %s\n", nameStyle.Render(fmt.Sprintf("%-18s", row[0])), valueStyle.Render(row[1]))
	}
	b.WriteString("\n")
}

func clientID(state *provisioning.State) string {
	if state == nil || state.Credential == nil {
		return ""
	}
	return state.Credential.ClientID
}
