package validate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/pkg/validate"
)

func sizedAvailability(bySize map[string]int) domain.Availability {
	return domain.Availability{Kind: domain.AvailabilitySized, BySize: bySize}
}

func unsizedAvailability(total int) domain.Availability {
	return domain.Availability{Kind: domain.AvailabilityUnsized, Total: total}
}

func TestLineValidator_Validate(t *testing.T) {
	v := validate.NewLineValidator()
	ctx := context.Background()

	type testCase struct {
		name       string
		req        domain.LineRequest
		av         domain.Availability
		wantQty    int
		wantReason validate.Reason
	}

	cases := []testCase{
		{
			name:    "unsized within stock",
			req:     domain.LineRequest{ProductID: "p1", Quantity: 2},
			av:      unsizedAvailability(3),
			wantQty: 2,
		},
		{
			name:    "unsized capped to stock",
			req:     domain.LineRequest{ProductID: "p1", Quantity: 5},
			av:      unsizedAvailability(3),
			wantQty: 3,
		},
		{
			name:       "unsized out of stock",
			req:        domain.LineRequest{ProductID: "p1", Quantity: 1},
			av:         unsizedAvailability(0),
			wantReason: validate.ReasonOutOfStock,
		},
		{
			name:       "unsized with size",
			req:        domain.LineRequest{ProductID: "p1", Size: "M", Quantity: 1},
			av:         unsizedAvailability(3),
			wantReason: validate.ReasonSizeNotApplicable,
		},
		{
			name:    "sized within stock",
			req:     domain.LineRequest{ProductID: "p2", Size: "M", Quantity: 1},
			av:      sizedAvailability(map[string]int{"M": 2, "L": 0}),
			wantQty: 1,
		},
		{
			name:    "sized capped to size stock",
			req:     domain.LineRequest{ProductID: "p2", Size: "M", Quantity: 5},
			av:      sizedAvailability(map[string]int{"M": 2, "L": 0}),
			wantQty: 2,
		},
		{
			name:       "sized zero size stock",
			req:        domain.LineRequest{ProductID: "p2", Size: "L", Quantity: 1},
			av:         sizedAvailability(map[string]int{"M": 2, "L": 0}),
			wantReason: validate.ReasonOutOfStock,
		},
		{
			name:       "sized unknown size",
			req:        domain.LineRequest{ProductID: "p2", Size: "XXL", Quantity: 1},
			av:         sizedAvailability(map[string]int{"M": 2}),
			wantReason: validate.ReasonSizeUnavailable,
		},
		{
			name:       "sized without size",
			req:        domain.LineRequest{ProductID: "p2", Quantity: 1},
			av:         sizedAvailability(map[string]int{"M": 2}),
			wantReason: validate.ReasonSizeRequired,
		},
		{
			name:       "product not found",
			req:        domain.LineRequest{ProductID: "ghost", Quantity: 1},
			av:         domain.Availability{Kind: domain.AvailabilityNotFound},
			wantReason: validate.ReasonProductNotFound,
		},
		{
			name:       "zero quantity",
			req:        domain.LineRequest{ProductID: "p1", Quantity: 0},
			av:         unsizedAvailability(3),
			wantReason: validate.ReasonInvalidQuantity,
		},
		{
			name:       "negative quantity",
			req:        domain.LineRequest{ProductID: "p1", Quantity: -2},
			av:         unsizedAvailability(3),
			wantReason: validate.ReasonInvalidQuantity,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			qty, err := v.Validate(ctx, tc.req, tc.av)
			if tc.wantReason == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if qty != tc.wantQty {
					t.Fatalf("want qty=%d, got %d", tc.wantQty, qty)
				}
				return
			}

			if err == nil {
				t.Fatalf("expected rejection, got qty=%d", qty)
			}
			if !errors.Is(err, validate.ErrRejected) {
				t.Fatalf("expected ErrRejected, got %v", err)
			}
			rej, ok := validate.AsRejection(err)
			if !ok {
				t.Fatalf("expected *Rejection, got %v", err)
			}
			if rej.Reason != tc.wantReason {
				t.Fatalf("want reason %q, got %q", tc.wantReason, rej.Reason)
			}
		})
	}
}

// Существование товара проверяется раньше логики размеров: для удалённого
// товара клиент не должен получить отказ про размер.
func TestLineValidator_NotFoundBeforeSizeChecks(t *testing.T) {
	v := validate.NewLineValidator()

	_, err := v.Validate(context.Background(),
		domain.LineRequest{ProductID: "ghost", Size: "M", Quantity: 1},
		domain.Availability{Kind: domain.AvailabilityNotFound})

	rej, ok := validate.AsRejection(err)
	if !ok || rej.Reason != validate.ReasonProductNotFound {
		t.Fatalf("want product-not-found, got %v", err)
	}
}

// Количество проверяется первым: даже для несуществующего товара
// неположительное количество даёт invalid-quantity.
func TestLineValidator_QuantityBeforeExistence(t *testing.T) {
	v := validate.NewLineValidator()

	_, err := v.Validate(context.Background(),
		domain.LineRequest{ProductID: "ghost", Quantity: 0},
		domain.Availability{Kind: domain.AvailabilityNotFound})

	rej, ok := validate.AsRejection(err)
	if !ok || rej.Reason != validate.ReasonInvalidQuantity {
		t.Fatalf("want invalid-quantity, got %v", err)
	}
}

func TestRejection_ErrorMessage(t *testing.T) {
	err := validate.NewRejection(validate.ReasonSizeUnavailable, "p1", "M")
	if got := err.Error(); got != "size-unavailable: product=p1 size=M" {
		t.Fatalf("unexpected message: %q", got)
	}

	err = validate.NewRejection(validate.ReasonOutOfStock, "p1", "")
	if got := err.Error(); got != "out-of-stock: product=p1" {
		t.Fatalf("unexpected message: %q", got)
	}
}
