package service

import (
	"testing"

	"github.com/linkmart/internal/constants"
)

func TestParseDurationDaysFallback(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"14", 14},
		{" 30 ", 30},
		{"", constants.DefaultBannerDurationDays},
		{"abc", constants.DefaultBannerDurationDays},
		{"0", constants.DefaultBannerDurationDays},
		{"-5", constants.DefaultBannerDurationDays},
	}
	for _, tc := range cases {
		if got := parseDurationDays(tc.raw); got != tc.want {
			t.Fatalf("parseDurationDays(%q) want %d got %d", tc.raw, tc.want, got)
		}
	}
}
