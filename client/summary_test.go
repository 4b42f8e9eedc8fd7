package client

import (
	"testing"

	"github.com/minimart/storefront/app/dto"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	testCases := []struct {
		name             string
		items            []dto.CartItem
		expectedCount    int
		expectedSubtotal string
		expectedTax      string
		expectedTotal    string
		roundedTax       string
		roundedTotal     string
	}{
		{
			name:             "Empty cart",
			expectedSubtotal: "0",
			expectedTax:      "0",
			expectedTotal:    "0",
			roundedTax:       "0",
			roundedTotal:     "0",
		},
		{
			name: "Two lines",
			items: []dto.CartItem{
				{Quantity: 3, Product: dto.Product{Price: 1.99}},
				{Quantity: 2, Product: dto.Product{Price: 0.99}},
			},
			expectedCount:    5,
			expectedSubtotal: "7.95",
			expectedTax:      "0.636",
			expectedTotal:    "8.586",
			roundedTax:       "0.64",
			roundedTotal:     "8.59",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := Summarize(tc.items)

			assert.Equal(t, tc.expectedCount, s.ItemCount)
			assert.Equal(t, tc.expectedSubtotal, s.Subtotal.String())
			assert.Equal(t, tc.expectedTax, s.Tax.String())
			assert.Equal(t, tc.expectedTotal, s.Total.String())

			rounded := s.Rounded()
			assert.Equal(t, tc.expectedSubtotal, rounded.Subtotal.String())
			assert.Equal(t, tc.roundedTax, rounded.Tax.String())
			assert.Equal(t, tc.roundedTotal, rounded.Total.String())
			assert.Equal(t, tc.expectedCount, rounded.ItemCount)
		})
	}
}
