package usecase

import (
	"strings"
	"testing"

	"github.com/bellavista/orderbot/internal/domain"
)

func TestRespond(t *testing.T) {
	r := NewResponder(nil)
	cart := []domain.CartLine{
		{Name: "Tiramisu", Quantity: 2, Price: 6.99},
		{Name: "Coca Cola", Quantity: 1, Price: 2.49},
	}

	testCases := []struct {
		name    string
		message string
		record  domain.ActionRecord
		cart    []domain.CartLine
		want    string
	}{
		{
			name:   "cart summary",
			record: domain.NewShowCart(),
			cart:   cart,
			want:   "You have 3 items in your cart. Total: $16.47",
		},
		{
			name:   "empty cart",
			record: domain.NewShowCart(),
			want:   "Your cart is empty. Would you like to see the menu?",
		},
		{
			name:   "decrease",
			record: domain.NewUpdate(domain.OperationDecrease, "Tiramisu", 2),
			want:   "Removed 2 Tiramisu from your cart.",
		},
		{
			name:   "increase",
			record: domain.NewUpdate(domain.OperationIncrease, "Coca Cola", 1),
			want:   "Added 1 more Coca Cola to your cart.",
		},
		{
			name:   "remove all",
			record: domain.NewRemoveAll("Garlic Bread"),
			want:   "Removed all Garlic Bread from your cart.",
		},
		{
			name:   "place order",
			record: domain.NewPlaceOrder("ORD-1", 16.47),
			cart:   cart,
			want:   "Order ORD-1 placed! Your total is $16.47. Thank you for dining with Bella Vista!",
		},
		{
			name:   "bulk menu",
			record: domain.NewBulkMenu("Desserts", 3),
			want:   "Sure! Pick 3 items from our Desserts menu.",
		},
		{
			name: "multi category",
			record: domain.NewMultiCategoryBulk([]domain.CategoryQuantity{
				{Category: "Pizza", Quantity: 2}, {Category: "Beverages", Quantity: 3},
			}),
			want: "Great choice! You want 2 Pizza and 3 Beverages. Let's start with 2 from Pizza.",
		},
		{
			name: "add multiple",
			record: domain.NewAddMultiple([]domain.ResolvedItem{
				{Name: "Tiramisu", Quantity: 1}, {Name: "Garlic Bread", Quantity: 2}, {Name: "Coca Cola", Quantity: 3},
			}),
			want: "Added 1 Tiramisu, 2 Garlic Bread and 3 Coca Cola to your cart.",
		},
		{
			name: "partial",
			record: domain.NewAddMultiplePartial(
				[]domain.ResolvedItem{{Name: "Tiramisu", Quantity: 1}},
				[]string{"2 dragon rolls"},
			),
			want: "Added 1 Tiramisu to your cart. Sorry, I couldn't find 2 dragon rolls on our menu.",
		},
		{
			name:   "not found",
			record: domain.NewItemNotFound([]string{"1 unicorn cake"}),
			want:   "Sorry, I couldn't find 1 unicorn cake on our menu. Would you like to see what we have?",
		},
		{
			name:   "clear chat",
			record: domain.NewClearChat(),
			want:   "Chat cleared. Let's start fresh! What would you like to order?",
		},
		{
			name:    "none",
			message: "what's up",
			record:  domain.NewNone(),
			want:    `I'm here to help with your order. Try "add 2 Margherita Pizza" or "show my cart".`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reply := r.Respond(tc.message, tc.record, tc.cart)
			if reply.Text != tc.want {
				t.Errorf("Text = %q, want %q", reply.Text, tc.want)
			}
			if reply.Action != tc.record {
				t.Errorf("Action = %T, want the extracted record", reply.Action)
			}
		})
	}
}

func TestRespondAddCommentary(t *testing.T) {
	r := NewResponder(nil)
	record := domain.NewAdd([]domain.ResolvedItem{{
		Name: "Tiramisu", Quantity: 2, Price: 6.99, ID: "10",
		Commentary: "Espresso-soaked ladyfingers with mascarpone",
	}}, domain.NeutralState())

	reply := r.Respond("add 2 tiramisu", record, nil)

	want := "Added 2 Tiramisu to your cart. Espresso-soaked ladyfingers with mascarpone."
	if reply.Text != want {
		t.Errorf("Text = %q, want %q", reply.Text, want)
	}
}

func TestRespondEmptyCartCheckout(t *testing.T) {
	r := NewResponder(nil)

	reply := r.Respond("place order", domain.NewPlaceOrder("ORD-1", 0), nil)

	if reply.Action.Kind() != domain.ActionNone {
		t.Errorf("Action = %q, want none", reply.Action.Kind())
	}
	if !strings.Contains(reply.Text, "cart is empty") {
		t.Errorf("Text = %q, want an empty cart notice", reply.Text)
	}
}

func TestRespondMenuRequest(t *testing.T) {
	r := NewResponder(nil)

	for _, msg := range []string{"what's on the menu?", "which categories do you have"} {
		t.Run(msg, func(t *testing.T) {
			reply := r.Respond(msg, domain.NewNone(), nil)
			if reply.Action.Kind() != domain.ActionShowMenu {
				t.Errorf("Action = %q, want show_menu", reply.Action.Kind())
			}
		})
	}
}

func TestHumanJoin(t *testing.T) {
	testCases := []struct {
		parts []string
		want  string
	}{
		{nil, ""},
		{[]string{"a"}, "a"},
		{[]string{"a", "b"}, "a and b"},
		{[]string{"a", "b", "c"}, "a, b and c"},
	}

	for _, tc := range testCases {
		if got := humanJoin(tc.parts); got != tc.want {
			t.Errorf("humanJoin(%v) = %q, want %q", tc.parts, got, tc.want)
		}
	}
}
