package normalize

import "testing"

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Sold 3 bin for 400 gbp":            "sale bin 3 400 gbp",
		"Spent £30 on fuel":                 "expense fuel £30",
		"Add stock bin 10":                  "stockadd bin 10",
		"Remove stock bin 5":                "stockremove bin 5",
		"sold 2 palm oil for ₦9,000":        "sale palm_oil 2 ₦9,000",
		"sold 2 food for dogs for 300":      "sale food_for_dogs 2 300",
		"spent 30 usd on delivery van fuel": "expense delivery_van_fuel 30 usd",
		"add stock basmati rice 40":         "stockadd basmati_rice 40",
		"  HELP  ":                          "help",
		"Summary   week":                    "Summary week",
		"advice":                            "advice",
		"sale rice 3 ₦45000":                "sale rice 3 ₦45000",
		"stock rice 20":                     "stock rice 20",
		"how are you":                       "how are you",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeSummaryIsNotRewritten(t *testing.T) {
	// A summary request that happens to contain other verbs passes through.
	in := "summary sold 3 bin for 400"
	if got := Normalize(in); got != in {
		t.Fatalf("got %q", got)
	}
}
