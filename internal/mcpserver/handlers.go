package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/travelhub/internal/booking"
	"github.com/mark3labs/travelhub/internal/catalog"
	"github.com/mark3labs/travelhub/internal/nats"
)

// registerTools registers the booking tools with the MCP server.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("catalog-list",
			mcp.WithDescription("List the fixed catalog of a tab, or all four catalogs when no tab is given"),
			mcp.WithString("tab", mcp.Description("hotels, cars, tours or visa")),
		),
		s.handleCatalogList,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("wizard-status",
			mcp.WithDescription("Show the current booking step and everything entered so far"),
		),
		s.handleWizardStatus,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("search-submit",
			mcp.WithDescription("Submit the search form and reveal the results of the active tab. Criteria never filter results."),
			mcp.WithString("tab", mcp.Description("Switch to this tab before searching: hotels, cars, tours or visa")),
			mcp.WithString("destination", mcp.Description("Destination, pick-up location, tour location or country")),
			mcp.WithString("check_in", mcp.Description("Check-in, pick-up or travel date")),
			mcp.WithString("check_out", mcp.Description("Check-out date (not used for visas)")),
			mcp.WithString("guests", mcp.Description("Number of guests or applicants (minimum 1)")),
		),
		s.handleSearchSubmit,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("item-select",
			mcp.WithDescription("Pick an item from the results by key (e.g. grand-plaza-hotel-1) or numeric id"),
			mcp.WithString("item", mcp.Required(), mcp.Description("Item key or id")),
		),
		s.handleItemSelect,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("contact-submit",
			mcp.WithDescription("Submit the traveller's contact details and continue to payment"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Full name")),
			mcp.WithString("email", mcp.Required(), mcp.Description("Email address")),
			mcp.WithString("phone", mcp.Required(), mcp.Description("Phone number")),
		),
		s.handleContactSubmit,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("payment-submit",
			mcp.WithDescription("Submit card details and confirm the booking"),
			mcp.WithString("card_number", mcp.Required(), mcp.Description("16-digit card number, spaces allowed")),
			mcp.WithString("expiry", mcp.Required(), mcp.Description("Expiry date as MM/YY")),
			mcp.WithString("cvv", mcp.Required(), mcp.Description("3-digit CVV")),
		),
		s.handlePaymentSubmit,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("wizard-back",
			mcp.WithDescription("Go back one step"),
		),
		s.handleWizardBack,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("wizard-restart",
			mcp.WithDescription("Start a new booking from the confirmation step"),
		),
		s.handleWizardRestart,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("bookings-list",
			mcp.WithDescription("List the bookings confirmed since the server started"),
		),
		s.handleBookingsList,
	)
}

// stringArg returns a trimmed string argument and whether it was supplied.
// It is for lookups such as tabs and item keys; gate fields use rawStringArg.
func stringArg(request mcp.CallToolRequest, key string) (string, bool) {
	v, ok := rawStringArg(request, key)
	return strings.TrimSpace(v), ok
}

// rawStringArg returns a string argument exactly as sent, and whether it was
// supplied. Numbers are accepted too since some clients send them unquoted.
func rawStringArg(request mcp.CallToolRequest, key string) (string, bool) {
	raw, ok := request.GetArguments()[key]
	if !ok || raw == nil {
		return "", false
	}
	switch v := raw.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return fmt.Sprint(v), true
	}
}

// transitionResult renders the outcome of a transition as a tool result.
func transitionResult(next booking.Wizard, err error) *mcp.CallToolResult {
	if err != nil {
		var gateErr *booking.GateError
		if errors.As(err, &gateErr) {
			return mcp.NewToolResultError(fmt.Sprintf("%s (%s)", gateErr.Message, booking.KindName(err)))
		}
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(formatStatus(next))
}

func (s *Server) handleCatalogList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tabs := catalog.Tabs()
	if name, ok := stringArg(request, "tab"); ok && name != "" {
		tab, err := catalog.ParseTab(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		tabs = []catalog.Tab{tab}
	}

	var b strings.Builder
	for i, tab := range tabs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s:\n", tab.Title())
		for _, item := range catalog.Items(tab) {
			fmt.Fprintf(&b, "  %s\n", item.Line())
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleWizardStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatStatus(s.Wizard())), nil
}

func (s *Server) handleSearchSubmit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var (
		tab    catalog.Tab
		hasTab bool
	)
	if name, ok := stringArg(request, "tab"); ok && name != "" {
		parsed, err := catalog.ParseTab(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		tab, hasTab = parsed, true
	}

	_, next, err := s.apply(ctx, func(w booking.Wizard) (booking.Wizard, error) {
		orig := w
		var err error
		if hasTab {
			if w, err = w.SelectTab(tab); err != nil {
				return orig, err
			}
		}

		c := w.Criteria()
		if v, ok := stringArg(request, "destination"); ok {
			c.Destination = v
		}
		if v, ok := stringArg(request, "check_in"); ok {
			c.CheckIn = v
		}
		if v, ok := stringArg(request, "check_out"); ok {
			c.CheckOut = v
		}
		if v, ok := stringArg(request, "guests"); ok {
			c.Guests = booking.ParseGuests(v)
		}
		if w, err = w.SetCriteria(c); err != nil {
			return orig, err
		}
		if w, err = w.SubmitSearch(); err != nil {
			return orig, err
		}
		return w, nil
	})
	return transitionResult(next, err), nil
}

func (s *Server) handleItemSelect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, ok := stringArg(request, "item")
	if !ok || ref == "" {
		return mcp.NewToolResultError("missing 'item' parameter"), nil
	}

	_, next, err := s.apply(ctx, func(w booking.Wizard) (booking.Wizard, error) {
		if id, err := strconv.Atoi(ref); err == nil {
			return w.Select(id)
		}
		item, tab, found := catalog.ByKey(ref)
		if !found {
			return w, fmt.Errorf("%w: %q", booking.ErrUnknownItem, ref)
		}
		if w.Step() == booking.StepResults && tab != w.Tab() {
			return w, fmt.Errorf("%w: %q is listed under %s, not %s", booking.ErrUnknownItem, ref, tab, w.Tab())
		}
		return w.Select(item.ID)
	})
	return transitionResult(next, err), nil
}

func (s *Server) handleContactSubmit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, _ := rawStringArg(request, "name")
	email, _ := rawStringArg(request, "email")
	phone, _ := rawStringArg(request, "phone")

	_, next, err := s.apply(ctx, func(w booking.Wizard) (booking.Wizard, error) {
		return w.SubmitContact(booking.Contact{Name: name, Email: email, Phone: phone})
	})
	return transitionResult(next, err), nil
}

func (s *Server) handlePaymentSubmit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	card, _ := rawStringArg(request, "card_number")
	expiry, _ := rawStringArg(request, "expiry")
	cvv, _ := rawStringArg(request, "cvv")

	_, next, err := s.apply(ctx, func(w booking.Wizard) (booking.Wizard, error) {
		return w.SubmitPayment(booking.Payment{CardNumber: card, Expiry: expiry, CVV: cvv})
	})
	return transitionResult(next, err), nil
}

func (s *Server) handleWizardBack(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, next, err := s.apply(ctx, booking.Wizard.Back)
	return transitionResult(next, err), nil
}

func (s *Server) handleWizardRestart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, next, err := s.apply(ctx, booking.Wizard.Restart)
	return transitionResult(next, err), nil
}

func (s *Server) handleBookingsList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.ledger == nil {
		return mcp.NewToolResultError("the booking ledger is disabled"), nil
	}

	events, err := s.ledger.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read ledger: %v", err)), nil
	}

	var b strings.Builder
	count := 0
	for _, ev := range events {
		if ev.Type != nats.EventTypeBookingConfirmed {
			continue
		}
		count++
		fmt.Fprintf(&b, "\n  %s  %s  %s  %s  %s  %s",
			ev.BookingID, ev.Tab, ev.ItemName, ev.GuestName,
			catalog.FormatPrice(ev.Price), ev.Timestamp.Format("2006-01-02 15:04:05"))
	}
	if count == 0 {
		return mcp.NewToolResultText("No bookings recorded yet"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%d booking(s):%s", count, b.String())), nil
}
