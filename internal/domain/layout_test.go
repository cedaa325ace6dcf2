package domain

import "testing"

func TestCompileDomain(t *testing.T) {
	doc := Document{
		Package: "cbma",
		Text: TextBlocks{
			"fwe_note": "FWE-corrected (montecarlo)",
		},
		Sections: []Section{
			{
				Name: "Diagnostics",
				Reportlets: []Reportlet{
					{
						Selector: Selector{
							KeyValue: "z",
							KeyDiag:  "focuscounter",
							KeyTab:   "counts",
							KeyTail:  "positive",
						},
						Title:   "FocusCounter",
						Caption: "Contribution table. {{fwe_note}}.",
						IFrame:  false,
					},
				},
			},
		},
	}

	if doc.Sections[0].Reportlets[0].Selector[KeyDiag] != "focuscounter" {
		t.Fatalf("unexpected selector value")
	}
	if doc.Sections[0].Reportlets[0].IFrame {
		t.Fatalf("iframe must default to false")
	}
}

func TestSelectorMatches(t *testing.T) {
	entities := map[string]string{
		KeyValue: "z",
		KeyDset:  "1",
		KeyTail:  "positive",
	}

	if !(Selector{KeyValue: "z"}).Matches(entities) {
		t.Fatalf("subset selector should match")
	}
	if (Selector{KeyValue: "z", KeyTail: "negative"}).Matches(entities) {
		t.Fatalf("mismatched value should not match")
	}
	if (Selector{KeySuffix: "figure"}).Matches(entities) {
		t.Fatalf("absent key should not match")
	}
	if (Selector{}).Matches(entities) {
		t.Fatalf("empty selector should not match")
	}
}

func TestDocumentReportlets_Order(t *testing.T) {
	doc := Document{
		Sections: []Section{
			{Name: "A", Reportlets: []Reportlet{
				{Selector: Selector{KeyDset: "1"}},
				{Selector: Selector{KeyDset: "2"}},
			}},
			{Name: "B", Reportlets: []Reportlet{
				{Selector: Selector{KeyDset: "3"}},
			}},
		},
	}

	all := doc.Reportlets()
	if len(all) != 3 {
		t.Fatalf("expected 3 reportlets, got %d", len(all))
	}
	if all[0].Section != "A" || all[0].Index != 0 {
		t.Fatalf("unexpected first entry: %+v", all[0])
	}
	if all[2].Section != "B" || all[2].Reportlet.Selector[KeyDset] != "3" {
		t.Fatalf("unexpected last entry: %+v", all[2])
	}
}
