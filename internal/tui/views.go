package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/travelhub/internal/booking"
	"github.com/mark3labs/travelhub/internal/catalog"
	"github.com/mark3labs/travelhub/internal/nats"
	"github.com/mark3labs/travelhub/internal/tui/theme"
)

var stepTitles = map[booking.Step]string{
	booking.StepSearch:       "Search",
	booking.StepResults:      "Results",
	booking.StepDetails:      "Booking Details",
	booking.StepPayment:      "Payment Information",
	booking.StepConfirmation: "Booking Confirmed!",
}

// Render composes the whole screen as a string, centered in the terminal.
func (a *App) Render() string {
	s := theme.Current().S()
	width := a.contentWidth()

	var body string
	switch a.wizard.Step() {
	case booking.StepSearch:
		body = a.renderSearch(width)
	case booking.StepResults:
		body = a.renderResults(width)
	case booking.StepDetails:
		body = a.renderDetails(width)
	case booking.StepPayment:
		body = a.renderPayment(width)
	case booking.StepConfirmation:
		body = a.renderConfirmation(width)
	}

	sections := []string{
		a.renderHeader(),
		s.Divider.Render(strings.Repeat("─", width)),
		s.StepTitle.Render(stepTitles[a.wizard.Step()]),
		"",
		body,
	}
	if a.errMsg != "" {
		sections = append(sections, "", s.ErrorLine.Render("✗ "+a.errMsg))
	}
	sections = append(sections, "", hintsFor(a.wizard.Step(), a.tabBarFocused))

	frame := s.Container.Width(width + 6).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, frame)
}

func (a *App) renderHeader() string {
	s := theme.Current().S()
	brand := s.Brand.Render("✈ TravelHub") + "  " + s.Tagline.Render("Your Complete Travel Solution")
	return brand + "\n" + renderProgress(a.wizard.Step())
}

// renderProgress draws the step breadcrumb, highlighting the current step.
func renderProgress(current booking.Step) string {
	s := theme.Current().S()
	names := []string{"Search", "Results", "Details", "Payment", "Confirmation"}
	parts := make([]string, len(names))
	for i, name := range names {
		switch {
		case booking.Step(i) == current:
			parts[i] = s.CardSelected.Render(name)
		case booking.Step(i) < current:
			parts[i] = s.Success.Render(name)
		default:
			parts[i] = s.Location.Render(name)
		}
	}
	return strings.Join(parts, s.HintSeparator.Render(" › "))
}

// renderTabBar draws the four catalog tabs.
func renderTabBar(active catalog.Tab, focused bool) string {
	s := theme.Current().S()
	glyphs := map[catalog.Tab]string{
		catalog.TabHotels: "🏨",
		catalog.TabCars:   "🚗",
		catalog.TabTours:  "🗺",
		catalog.TabVisa:   "📄",
	}
	var tabs []string
	for i, tab := range catalog.Tabs() {
		label := fmt.Sprintf("%d %s %s", i+1, glyphs[tab], tab.Title())
		if tab == active {
			tabs = append(tabs, s.TabActive.Render(label))
		} else {
			tabs = append(tabs, s.TabInactive.Render(label))
		}
	}
	bar := strings.Join(tabs, " ")
	if focused {
		bar = s.TabFocused.Render("▸ ") + bar
	} else {
		bar = "  " + bar
	}
	return bar
}

func (a *App) renderSearch(width int) string {
	s := theme.Current().S()
	tab := a.wizard.Tab()

	bar := NewButtonBar(Button{Label: "Search " + tab.Title(), State: ButtonFocused})
	bar.SetWidth(width)

	return lipgloss.JoinVertical(lipgloss.Left,
		renderTabBar(tab, a.tabBarFocused),
		"",
		a.search.Render(),
		"",
		bar.Render(),
		s.PriceSuffix.Render("Search criteria are informational; every listing is shown."),
	)
}

func (a *App) renderResults(width int) string {
	s := theme.Current().S()
	items := a.wizard.Results()

	lines := []string{s.Location.Render(fmt.Sprintf("%d %s available", len(items), strings.ToLower(a.wizard.Tab().Title())))}
	for i, item := range items {
		lines = append(lines, "", renderItemCard(item, i == a.cursor, width))
	}
	return strings.Join(lines, "\n")
}

// renderItemCard draws one result: glyph and name, location and rating,
// price with its suffix, then amenities, features or processing time.
func renderItemCard(item catalog.Item, selected bool, width int) string {
	s := theme.Current().S()

	cursor := "  "
	title := s.CardTitle.Render(item.Name)
	if selected {
		cursor = s.Cursor.Render("▸ ")
		title = s.CardSelected.Render(item.Name)
	}

	price := s.Price.Render(catalog.FormatPrice(item.Price))
	if suffix := item.PriceSuffix(); suffix != "" {
		price += " " + s.PriceSuffix.Render(suffix)
	}

	first := cursor + item.Image + " " + title
	pad := width - lipgloss.Width(first) - lipgloss.Width(price)
	if pad < 2 {
		pad = 2
	}
	lines := []string{first + strings.Repeat(" ", pad) + price}

	meta := ""
	if loc := item.DisplayLocation(); loc != "" {
		meta = s.Location.Render("📍 " + loc)
	}
	if r, ok := item.Rating(); ok {
		if meta != "" {
			meta += "  "
		}
		meta += s.Rating.Render(fmt.Sprintf("★ %.1f", r))
	}
	if meta != "" {
		lines = append(lines, "    "+meta)
	}

	if tags := item.Tags(); len(tags) > 0 {
		rendered := make([]string, len(tags))
		for i, tag := range tags {
			rendered[i] = s.Tag.Render(tag)
		}
		lines = append(lines, "    "+strings.Join(rendered, " "))
	}
	if p := item.Processing(); p != "" {
		lines = append(lines, "    "+s.Processing.Render("⏱ Processing: "+p))
	}
	return strings.Join(lines, "\n")
}

// renderSelected draws the chosen item above the details and payment forms.
func (a *App) renderSelected() string {
	s := theme.Current().S()
	item, ok := a.wizard.Selected()
	if !ok {
		return ""
	}
	header := item.Image + " " + s.CardTitle.Render(item.Name)
	if loc := item.DisplayLocation(); loc != "" {
		header += "\n" + s.Location.Render("📍 "+loc)
	}
	return header + "\n" + s.Price.Render(catalog.FormatPrice(item.Price))
}

func (a *App) renderDetails(width int) string {
	s := theme.Current().S()
	bar := NewButtonBar(backAndAction("Back to Results", true, "Proceed to Payment")...)
	bar.SetWidth(width)

	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderSelected(),
		s.Divider.Render(strings.Repeat("─", width)),
		a.contact.Render(),
		"",
		bar.Render(),
	)
}

func (a *App) renderPayment(width int) string {
	s := theme.Current().S()
	bar := NewButtonBar(backAndAction("Back", true, "Complete Payment")...)
	bar.SetWidth(width)

	total := ""
	if item, ok := a.wizard.Selected(); ok {
		total = s.Label.Render("Total Amount: ") + s.Price.Render(catalog.FormatPrice(item.Price)) + "  " + s.Location.Render(item.Name)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		total,
		s.Divider.Render(strings.Repeat("─", width)),
		a.payment.Render(),
		"",
		bar.Render(),
	)
}

// markdownEscaper backslash-escapes markdown metacharacters in user input so
// a name cannot add table cells or emphasis. Line breaks become spaces.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`,
	"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`,
	"#", `\#`, "|", `\|`, "~", `\~`,
	"\r\n", " ", "\n", " ", "\r", " ",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// confirmationMarkdown builds the booking summary shown after payment.
func confirmationMarkdown(r booking.Receipt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your booking has been successfully confirmed. A confirmation email has been sent to %s\n\n", escapeMarkdown(r.Email))
	b.WriteString("## Booking Summary\n\n")
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Booking ID | **%s** |\n", escapeMarkdown(r.BookingID))
	fmt.Fprintf(&b, "| Name | %s |\n", escapeMarkdown(r.GuestName))
	fmt.Fprintf(&b, "| Item | %s |\n", escapeMarkdown(r.Service))
	fmt.Fprintf(&b, "| Amount Paid | %s |\n", catalog.FormatPrice(r.Total))
	return b.String()
}

func (a *App) renderConfirmation(width int) string {
	s := theme.Current().S()
	r, ok := a.wizard.Receipt()
	if !ok {
		return ""
	}

	bar := NewButtonBar(Button{Label: "Make Another Booking", State: ButtonFocused})
	bar.SetWidth(width)

	sections := []string{
		s.Success.Render("✔ Booking " + r.BookingID),
		renderMarkdown(confirmationMarkdown(r), width),
	}
	if a.lastSaved.Type == nats.EventTypeBookingConfirmed && a.lastSaved.BookingID == r.BookingID {
		sections = append(sections, s.Location.Render("Recorded in ledger as "+a.lastSaved.ID))
	}
	sections = append(sections, "", bar.Render())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
