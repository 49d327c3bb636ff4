package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/storepulse/internal/client/aggregate"
	"github.com/dmitrijs2005/storepulse/internal/client/models"
	"github.com/dmitrijs2005/storepulse/internal/client/notify"
	"github.com/dmitrijs2005/storepulse/internal/client/router"
	"github.com/dmitrijs2005/storepulse/internal/client/session"
	"github.com/dmitrijs2005/storepulse/internal/client/views"
)

// Styles holds the lipgloss styles of the console.
type Styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Active  lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Up      lipgloss.Style
	Down    lipgloss.Style
	Card    lipgloss.Style
	Header  lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("112")), // Lime
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Active: lipgloss.NewStyle().
			Background(lipgloss.Color("112")).
			Foreground(lipgloss.Color("0")).
			Bold(true).
			Padding(0, 1),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")),
		Up: lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")),
		Down: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1).
			MarginRight(1),
		Header: lipgloss.NewStyle().
			Bold(true).
			Underline(true),
	}
}

func money(v float64) string { return fmt.Sprintf("$%.2f", v) }

func (s Styles) change(pct float64) string {
	if pct < 0 {
		return s.Down.Render(fmt.Sprintf("↓ %.1f%%", -pct))
	}
	return s.Up.Render(fmt.Sprintf("↑ %.1f%%", pct))
}

func (s Styles) card(label, value, extra string) string {
	body := s.Muted.Render(label) + "\n" + lipgloss.NewStyle().Bold(true).Render(value)
	if extra != "" {
		body += "\n" + extra
	}
	return s.Card.Render(body)
}

// table renders rows under a header with columns padded to their widest
// cell.
func (s Styles) table(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = c + strings.Repeat(" ", widths[i]-lipgloss.Width(c))
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	var b strings.Builder
	b.WriteString(s.Header.Render(line(header)))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(line(row))
	}
	return b.String()
}

// renderFrame draws the panel title and the role's menu.
func renderFrame(s Styles, d router.Decision, sess *session.Session) string {
	if !d.Authenticated() || sess == nil {
		return s.Title.Render("StorePulse") + "  " + s.Muted.Render(d.Path)
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("StorePulse · " + sess.Role.PanelName()))
	b.WriteString("  ")
	for i, item := range d.Menu {
		if i > 0 {
			b.WriteString(" ")
		}
		if item.Active {
			b.WriteString(s.Active.Render(item.Label))
		} else {
			b.WriteString(s.Muted.Render(item.Label))
		}
	}
	b.WriteString("  ")
	b.WriteString(s.Muted.Render(d.Path))
	return b.String()
}

func renderLoginNotice(s Styles) string {
	return s.Muted.Render("Not logged in. Use 'storepulse session import' to store a login response.")
}

func renderLoading(s Styles) string {
	return s.Muted.Render("Loading...")
}

// renderError is the error view shown instead of data.
func renderError(s Styles, snap aggregate.Snapshot) string {
	msg := snap.Err.Error()
	if snap.ErrFrom != "" {
		msg = snap.ErrFrom + ": " + msg
	}
	return s.Error.Render("Error: "+msg) + "\n" + s.Muted.Render("Type 'refresh' to retry.")
}

func renderOverview(s Styles, d *models.DashboardSummary, rng models.DateRange) string {
	var b strings.Builder
	b.WriteString(s.Muted.Render(fmt.Sprintf("From %s to %s", rng.FromString(), rng.ToString())))
	b.WriteString("\n\n")

	if d == nil {
		b.WriteString("No data available")
		return b.String()
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		s.card("Total Revenue", money(d.TotalRevenue), s.change(d.TotalRevenueChangePercent)),
		s.card("Total Orders", fmt.Sprint(d.TotalOrders), s.change(d.TotalOrdersChangePercent)),
		s.card("Total Customers", fmt.Sprint(d.TotalCustomers), s.change(d.TotalCustomersChangePercent)),
		s.card("Total Products", fmt.Sprint(d.TotalProducts), ""),
	))

	if series := d.Series(); len(series) > 0 {
		rows := make([][]string, len(series))
		for i, p := range series {
			rows[i] = []string{p.Date, money(p.Revenue), fmt.Sprint(p.Orders)}
		}
		b.WriteString("\n\n")
		b.WriteString(s.table([]string{"Date", "Revenue", "Orders"}, rows))
	}

	if len(d.TopCustomers) > 0 {
		b.WriteString("\n\n")
		b.WriteString(renderTopCustomers(s, d.TopCustomers))
	}

	if len(d.TopProducts) > 0 {
		rows := make([][]string, len(d.TopProducts))
		for i, p := range d.TopProducts {
			rows[i] = []string{p.Title, fmt.Sprint(p.QuantitySold), money(p.Revenue), fmt.Sprint(p.Stock)}
		}
		b.WriteString("\n\n")
		b.WriteString(s.table([]string{"Product", "Sold", "Revenue", "Stock"}, rows))
	}
	return b.String()
}

func renderTopCustomers(s Styles, customers []models.TopCustomer) string {
	rows := make([][]string, len(customers))
	for i, c := range customers {
		rows[i] = []string{c.DisplayName(), c.Email, money(c.Spent()), fmt.Sprint(c.OrderCount())}
	}
	return s.table([]string{"Customer", "Email", "Spent", "Orders"}, rows)
}

func renderAnalytics(s Styles, tenantID string, d views.AnalyticsData) string {
	var b strings.Builder
	b.WriteString(s.Muted.Render("Tenant " + tenantID))
	b.WriteString("\n\n")

	total := func(t *models.Total, f func(float64) string) string {
		if t == nil {
			return "-"
		}
		return f(t.Total)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		s.card("Customers", fmt.Sprint(len(d.Customers)), ""),
		s.card("Total Orders", total(d.TotalOrders, func(v float64) string { return fmt.Sprintf("%.0f", v) }), ""),
		s.card("Total Revenue", total(d.TotalRevenue, money), ""),
		s.card("Products", fmt.Sprint(len(d.Products)), ""),
	))

	if len(d.OrdersTrend) > 0 {
		rows := make([][]string, len(d.OrdersTrend))
		for i, p := range d.OrdersTrend {
			rows[i] = []string{p.Date, fmt.Sprint(p.Orders), money(p.Revenue)}
		}
		b.WriteString("\n\n")
		b.WriteString(s.table([]string{"Date", "Orders", "Revenue"}, rows))
	}
	if len(d.TopCustomers) > 0 {
		b.WriteString("\n\n")
		b.WriteString(renderTopCustomers(s, d.TopCustomers))
	}
	if len(d.Products) > 0 {
		rows := make([][]string, len(d.Products))
		for i, p := range d.Products {
			rows[i] = []string{p.DisplayName(), fmt.Sprint(p.SoldUnits()), money(p.Earned())}
		}
		b.WriteString("\n\n")
		b.WriteString(s.table([]string{"Product", "Sales", "Revenue"}, rows))
	}
	return b.String()
}

func renderTenants(s Styles, tenants []models.Tenant) string {
	if len(tenants) == 0 {
		return "No tenants found."
	}
	rows := make([][]string, len(tenants))
	for i, t := range tenants {
		rows[i] = []string{t.Key(), t.ShopName, t.ShopifyBaseURL}
	}
	return s.table([]string{"Tenant", "Shop", "Store URL"}, rows)
}

func renderCustomers(s Styles, customers []models.Customer) string {
	if len(customers) == 0 {
		return "No customers found."
	}
	rows := make([][]string, len(customers))
	for i, c := range customers {
		rows[i] = []string{c.ID.String(), c.Name, c.Email, money(c.TotalSpent), fmt.Sprint(c.OrdersCount)}
	}
	return s.table([]string{"ID", "Name", "Email", "Spent", "Orders"}, rows)
}

func renderNotifications(s Styles, ns []notify.Notification) string {
	lines := make([]string, 0, len(ns))
	for _, n := range ns {
		switch n.Level {
		case notify.LevelError:
			lines = append(lines, s.Error.Render("✗ "+n.Message))
		case notify.LevelSuccess:
			lines = append(lines, s.Success.Render("✓ "+n.Message))
		default:
			lines = append(lines, s.Muted.Render("• "+n.Message))
		}
	}
	return strings.Join(lines, "\n")
}

func renderSession(s Styles, sess *session.Session) string {
	rows := [][]string{
		{"Role", string(sess.Role)},
		{"Tenant", sess.TenantID},
		{"Email", sess.Email},
		{"Token type", sess.TokenType},
	}
	if exp, ok := sess.ExpiresAt(); ok {
		rows = append(rows, []string{"Expires", exp.Local().Format("2006-01-02 15:04")})
	}
	return s.table([]string{"Field", "Value"}, rows)
}
