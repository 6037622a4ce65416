package leaderboard

import "testing"

func TestClassifyRankChange(t *testing.T) {
	tests := []struct {
		name     string
		previous int
		current  int
		want     RankChange
	}{
		{"moved up", 5, 2, RankUp},
		{"moved down", 2, 5, RankDown},
		{"unchanged", 3, 3, RankSame},
		{"first entry", 0, 4, RankNew},
		{"first entry at the top", 0, 1, RankNew},
		{"never ranked", 0, 0, RankNew},
		{"dropped off", 7, 0, RankDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyRankChange(tt.previous, tt.current)
			if got != tt.want {
				t.Errorf("ClassifyRankChange(%d, %d) = %s, expected %s", tt.previous, tt.current, got, tt.want)
			}
		})
	}
}

func TestRankChangeDescribe(t *testing.T) {
	tests := []struct {
		change   RankChange
		previous int
		current  int
		want     string
	}{
		{RankNew, 0, 4, "First time on the board! Ranked #4"},
		{RankNew, 0, 0, "Not on the board yet"},
		{RankUp, 5, 2, "Up 3! From #5 to #2"},
		{RankDown, 2, 5, "Down 3, from #2 to #5"},
		{RankDown, 9, 0, "Dropped off the board from #9"},
		{RankSame, 3, 3, "Holding at #3"},
	}

	for _, tt := range tests {
		t.Run(tt.change.String(), func(t *testing.T) {
			if got := tt.change.Describe(tt.previous, tt.current); got != tt.want {
				t.Errorf("Describe(%d, %d) = %q, expected %q", tt.previous, tt.current, got, tt.want)
			}
		})
	}
}

func TestRankChangeIcons(t *testing.T) {
	seen := map[string]RankChange{}
	for _, c := range []RankChange{RankSame, RankUp, RankDown, RankNew} {
		icon := c.Icon()
		if icon == "" {
			t.Errorf("%s has no icon", c)
		}
		if other, ok := seen[icon]; ok {
			t.Errorf("%s and %s share icon %q", c, other, icon)
		}
		seen[icon] = c
	}
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		total int64
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	}
	for _, tt := range tests {
		if got := FormatScore(tt.total); got != tt.want {
			t.Errorf("FormatScore(%d) = %q, expected %q", tt.total, got, tt.want)
		}
	}
}

func TestCountryLookups(t *testing.T) {
	if got := CountryName("TW"); got != "Taiwan" {
		t.Errorf("CountryName(TW) = %q", got)
	}
	if got := CountryName("ZZ"); got != "ZZ" {
		t.Errorf("unknown code should map to itself, got %q", got)
	}
	if CountryFlag("ZZ") != "🏳" || CountryFlag("JP") == "🏳" {
		t.Error("flag lookup mismatch")
	}
	if got := NormalizeCountry("  tw "); got != "TW" {
		t.Errorf("NormalizeCountry() = %q", got)
	}
	if got := NormalizeCountry(""); got != FallbackCountry {
		t.Errorf("blank country should fall back, got %q", got)
	}
}
