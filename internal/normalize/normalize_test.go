package normalize_test

import (
	"testing"
	"time"

	"retrace/internal/normalize"
	"retrace/internal/review"
)

func TestTextCanonicalization(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"collapse whitespace", "  hello   world  ", "hello world"},
		{"lowercase", "Great FOOD", "great food"},
		{"strip emoji", "맛있어요 😋👍", "맛있어요"},
		{"strip punctuation keeps boundaries", "good,fast,cheap!", "good fast cheap"},
		{"fold full-width digits", "５점 만점", "5점 만점"},
		{"ideographic space", "배달　빨라요", "배달 빨라요"},
		{"control characters", "line\x00one\ttwo", "line one two"},
		{"empty input", "", ""},
		{"only symbols", "!!! ??? 🎉", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := normalize.Text(tc.input)
			if got != tc.expected {
				t.Fatalf("Text(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestTextIdempotent(t *testing.T) {
	inputs := []string{
		"  Mixed   CASE text!! 😀",
		"５５５ full-width",
		"배달이 빨라요",
	}
	for _, input := range inputs {
		once := normalize.Text(input)
		twice := normalize.Text(once)
		if once != twice {
			t.Fatalf("Text not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestReviewRoundTrip(t *testing.T) {
	capturedAt := time.Date(2025, 8, 21, 14, 30, 0, 0, time.UTC)
	raw := review.Raw{
		Text:     "  Delivery was FAST!! 🚀 ",
		Rating:   4.5,
		DateText: "어제",
		Position: 3,
	}

	first := normalize.Review(raw, capturedAt)
	second := normalize.Review(first.AsRaw(), capturedAt)

	if first.Text != second.Text {
		t.Fatalf("text drifted on re-normalization: %q != %q", first.Text, second.Text)
	}
	if !first.Date.Equal(second.Date) {
		t.Fatalf("date drifted on re-normalization: %v != %v", first.Date, second.Date)
	}
	if first.Rating != second.Rating || first.Position != second.Position {
		t.Fatalf("fields drifted: %#v != %#v", first, second)
	}
}

func TestReviewTotalOnMalformedInput(t *testing.T) {
	got := normalize.Review(review.Raw{Text: "\x00", DateText: "???"}, time.Now())
	if got.Text != "" {
		t.Fatalf("expected empty canonical text, got %q", got.Text)
	}
	if got.DateKnown() {
		t.Fatalf("expected unknown date for unresolvable expression")
	}
}

func TestMenuItemsNormalized(t *testing.T) {
	capturedAt := time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC)
	got := normalize.Review(review.Raw{
		Text:      "ok",
		MenuItems: []string{" Fried CHICKEN ", "", "콜라!"},
		DateText:  "today",
	}, capturedAt)

	want := []string{"fried chicken", "콜라"}
	if len(got.MenuItems) != len(want) {
		t.Fatalf("menu items = %v, want %v", got.MenuItems, want)
	}
	for i := range want {
		if got.MenuItems[i] != want[i] {
			t.Fatalf("menu items = %v, want %v", got.MenuItems, want)
		}
	}
}
