package models

import (
	"errors"
	"testing"
)

func TestStatValue(t *testing.T) {
	line := &PlayerStatLine{
		Points:   25,
		Rebounds: 12,
		Assists:  8,
		Steals:   2,
		Blocks:   1,
		Threes:   4,
	}

	cases := []struct {
		market string
		want   float64
	}{
		{MarketPoints, 25},
		{MarketRebounds, 12},
		{MarketAssists, 8},
		{MarketSteals, 2},
		{MarketBlocks, 1},
		{MarketThrees, 4},
		{MarketPointsRebounds, 37},
		{MarketPointsAssists, 33},
		{MarketReboundsAssists, 20},
		{MarketPointsReboundsAssists, 45},
		{MarketBlocksSteals, 3},
	}
	for _, tc := range cases {
		got, err := line.StatValue(tc.market)
		if err != nil {
			t.Errorf("StatValue(%s): %v", tc.market, err)
			continue
		}
		if got != tc.want {
			t.Errorf("StatValue(%s) = %v, want %v", tc.market, got, tc.want)
		}
	}

	if _, err := line.StatValue("triple_doubles"); !errors.Is(err, ErrUnknownMarket) {
		t.Errorf("err = %v, want ErrUnknownMarket", err)
	}
}
