package menuapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/bellavista/orderbot/internal/domain"
)

type graphQLRequest struct {
	Query string `json:"query"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data *struct {
		MenuItems *[]menuItem `json:"menuItems"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// menuItem mirrors the GraphQL MenuItem type
type menuItem struct {
	ID          graphQLID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Available   bool      `json:"available"`
	Ingredients []string  `json:"ingredients"`
}

// graphQLID accepts both string and numeric ids
type graphQLID string

func (id *graphQLID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = graphQLID(s)
		return nil
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = graphQLID(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

// decodeMenu parses a GraphQL response body into catalog entries
func decodeMenu(body []byte) ([]domain.CatalogEntry, error) {
	var resp graphQLResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrCatalogAPIFailure, err)
	}

	if len(resp.Errors) > 0 {
		messages := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			messages = append(messages, e.Message)
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrCatalogAPIFailure, strings.Join(messages, "; "))
	}

	if resp.Data == nil || resp.Data.MenuItems == nil {
		return nil, fmt.Errorf("%w: response has no data.menuItems", domain.ErrCatalogAPIFailure)
	}

	items := *resp.Data.MenuItems
	entries := make([]domain.CatalogEntry, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			continue
		}
		entries = append(entries, mapToCatalogEntry(item))
	}
	return entries, nil
}

// mapToCatalogEntry converts a GraphQL menu item to our domain CatalogEntry
func mapToCatalogEntry(item menuItem) domain.CatalogEntry {
	entry := domain.CatalogEntry{
		ID:        string(item.ID),
		Name:      strings.TrimSpace(item.Name),
		Price:     item.Price,
		Category:  item.Category,
		Available: item.Available,
	}
	if item.Description != nil {
		entry.Description = strings.TrimSpace(*item.Description)
	}
	for _, ing := range item.Ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			entry.Ingredients = append(entry.Ingredients, ing)
		}
	}
	return entry
}
