package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bellavista/orderbot/internal/domain"
)

var menuRequestPattern = regexp.MustCompile(`\b(menu|categor(?:y|ies))\b`)

// Reply is the user-facing text paired with the action the client should apply.
// The action may differ from the extracted one (an empty-cart checkout becomes none).
type Reply struct {
	Text   string
	Action domain.ActionRecord
}

// Responder renders natural-language replies for action records without a language model
type Responder struct {
	picker Picker
}

// NewResponder creates a responder; a nil picker always picks the first variant
func NewResponder(picker Picker) *Responder {
	if picker == nil {
		picker = FirstPicker
	}
	return &Responder{picker: picker}
}

var noneReplies = []string{
	`I'm here to help with your order. Try "add 2 Margherita Pizza" or "show my cart".`,
	`Sorry, I didn't catch that. You can add items, check your cart or ask for the menu.`,
}

// Respond builds the reply for record given the message that produced it and the caller's cart
func (r *Responder) Respond(message string, record domain.ActionRecord, cart []domain.CartLine) Reply {
	switch a := record.(type) {
	case *domain.GreetingAction:
		return Reply{Text: a.ResponseText, Action: a}

	case *domain.ClearChatAction:
		return Reply{Text: "Chat cleared. Let's start fresh! What would you like to order?", Action: a}

	case *domain.ShowCartAction:
		count := 0
		for _, line := range cart {
			count += max(line.Quantity, 1)
		}
		if count == 0 {
			return Reply{Text: "Your cart is empty. Would you like to see the menu?", Action: a}
		}
		return Reply{
			Text:   fmt.Sprintf("You have %d %s in your cart. Total: $%.2f", count, plural(count, "item"), cartTotal(cart)),
			Action: a,
		}

	case *domain.ShowMenuAction:
		return Reply{Text: "Here's our menu! Let me know what catches your eye.", Action: a}

	case *domain.RemoveAllAction:
		return Reply{Text: fmt.Sprintf("Removed all %s from your cart.", a.TargetItem), Action: a}

	case *domain.UpdateAction:
		if a.Operation == domain.OperationIncrease {
			return Reply{Text: fmt.Sprintf("Added %d more %s to your cart.", a.Quantity, a.TargetItem), Action: a}
		}
		return Reply{Text: fmt.Sprintf("Removed %d %s from your cart.", a.Quantity, a.TargetItem), Action: a}

	case *domain.PlaceOrderAction:
		if len(cart) == 0 {
			return Reply{
				Text:   "Your cart is empty. Add some items before placing an order.",
				Action: domain.NewNone(),
			}
		}
		total := a.OrderTotal
		if total == 0 {
			total = cartTotal(cart)
		}
		return Reply{
			Text:   fmt.Sprintf("Order %s placed! Your total is $%.2f. Thank you for dining with Bella Vista!", a.OrderID, total),
			Action: a,
		}

	case *domain.MultiCategoryBulkAction:
		parts := make([]string, 0, len(a.MultiCategories))
		for _, c := range a.MultiCategories {
			parts = append(parts, fmt.Sprintf("%d %s", c.Quantity, c.Category))
		}
		first := a.MultiCategories[a.CurrentCategoryIndex]
		return Reply{
			Text: fmt.Sprintf("Great choice! You want %s. Let's start with %d from %s.",
				humanJoin(parts), first.Quantity, first.Category),
			Action: a,
		}

	case *domain.BulkMenuAction:
		return Reply{
			Text:   fmt.Sprintf("Sure! Pick %d %s from our %s menu.", a.BulkQuantity, plural(a.BulkQuantity, "item"), a.Category),
			Action: a,
		}

	case *domain.AddMultipleAction:
		return Reply{Text: fmt.Sprintf("Added %s to your cart.", describeItems(a.Items)), Action: a}

	case *domain.AddMultiplePartialAction:
		return Reply{
			Text: fmt.Sprintf("Added %s to your cart. Sorry, I couldn't find %s on our menu.",
				describeItems(a.Items), humanJoin(a.NotFoundItems)),
			Action: a,
		}

	case *domain.AddAction:
		text := fmt.Sprintf("Added %s to your cart.", describeItems(a.Items))
		if len(a.Items) == 1 && a.Items[0].Commentary != "" {
			text += " " + strings.TrimSuffix(a.Items[0].Commentary, ".") + "."
		}
		return Reply{Text: text, Action: a}

	case *domain.ItemNotFoundAction:
		return Reply{
			Text:   fmt.Sprintf("Sorry, I couldn't find %s on our menu. Would you like to see what we have?", humanJoin(a.NotFoundItems)),
			Action: a,
		}

	default:
		if menuRequestPattern.MatchString(strings.ToLower(message)) {
			return Reply{Text: "Here's our menu! Let me know what catches your eye.", Action: domain.NewShowMenu()}
		}
		return Reply{Text: pick(r.picker, noneReplies), Action: record}
	}
}

func describeItems(items []domain.ResolvedItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%d %s", it.Quantity, it.Name))
	}
	return humanJoin(parts)
}

// humanJoin renders "a", "a and b", "a, b and c"
func humanJoin(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
