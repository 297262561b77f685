package markdown

import "testing"

func TestDetectCaption(t *testing.T) {
	tests := []struct {
		name       string
		lines      []string
		startLine  int
		wantText   string
		wantNumber string
		wantCont   bool
		wantNil    bool
	}{
		{
			name:       "caption directly above",
			lines:      []string{"Table 3. Results", "| A |"},
			startLine:  2,
			wantText:   "Table 3. Results",
			wantNumber: "3",
		},
		{
			name:       "caption with blank line between",
			lines:      []string{"Table 1. Demographics", "", "| A |"},
			startLine:  3,
			wantText:   "Table 1. Demographics",
			wantNumber: "1",
		},
		{
			name:       "bold caption keeps formatting",
			lines:      []string{"**Table 2. Outcomes**", "| A |"},
			startLine:  2,
			wantText:   "**Table 2. Outcomes**",
			wantNumber: "2",
		},
		{
			name:       "continuation marker stripped from text",
			lines:      []string{"Table 3. Results (Continued)", "| A |"},
			startLine:  2,
			wantText:   "Table 3. Results",
			wantNumber: "3",
			wantCont:   true,
		},
		{
			name:       "cont'd abbreviation",
			lines:      []string{"Table 5. Complications, cont'd", "| A |"},
			startLine:  2,
			wantText:   "Table 5. Complications",
			wantNumber: "5",
			wantCont:   true,
		},
		{
			name:       "bare table number is a continuation",
			lines:      []string{"Table 4", "| A |"},
			startLine:  2,
			wantText:   "Table 4",
			wantNumber: "4",
			wantCont:   true,
		},
		{
			name:       "letter-suffixed number",
			lines:      []string{"Table 3a. Subgroup analysis", "| A |"},
			startLine:  2,
			wantText:   "Table 3a. Subgroup analysis",
			wantNumber: "3a",
		},
		{
			name:      "prose continuation line without caption",
			lines:     []string{"(Continued)", "| A |"},
			startLine: 2,
			wantNil:   true,
			wantCont:  true,
		},
		{
			name:       "continuation line below the caption",
			lines:      []string{"Table 6. Long table", "(Continued)", "| A |"},
			startLine:  3,
			wantText:   "Table 6. Long table",
			wantNumber: "6",
			wantCont:   true,
		},
		{
			name:       "footnote between caption and table",
			lines:      []string{"Table 9. Outcomes", "Values are mean (SD).", "| A |"},
			startLine:  3,
			wantText:   "Table 9. Outcomes",
			wantNumber: "9",
		},
		{
			name:       "two prose lines below the caption",
			lines:      []string{"Table 8. Follow-up", "Abbreviations: SD, standard deviation.", "Bold values are significant.", "| A |"},
			startLine:  4,
			wantText:   "Table 8. Follow-up",
			wantNumber: "8",
		},
		{
			name:      "caption beyond the lookback window",
			lines:     []string{"Table 7. Far away", "", "", "", "", "", "", "| A |"},
			startLine: 8,
			wantNil:   true,
		},
		{
			name:      "no caption at all",
			lines:     []string{"| A |"},
			startLine: 1,
			wantNil:   true,
		},
		{
			name:      "infection control is not a continuation",
			lines:     []string{"Notes on infection control measures.", "| A |"},
			startLine: 2,
			wantNil:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caption, cont := DetectCaption(tt.lines, tt.startLine)

			if cont != tt.wantCont {
				t.Errorf("isContinuation = %v, want %v", cont, tt.wantCont)
			}
			if tt.wantNil {
				if caption != nil {
					t.Fatalf("expected no caption, got %q", caption.Text)
				}
				return
			}
			if caption == nil {
				t.Fatal("expected a caption, got none")
			}
			if caption.Text != tt.wantText {
				t.Errorf("text = %q, want %q", caption.Text, tt.wantText)
			}
			if caption.Number != tt.wantNumber {
				t.Errorf("number = %q, want %q", caption.Number, tt.wantNumber)
			}
		})
	}
}

func TestCaptionNumber(t *testing.T) {
	tests := []struct {
		caption string
		want    string
	}{
		{"Table 3. Results", "3"},
		{"**Table 12: Outcomes**", "12"},
		{"Table 3a. Subgroup", "3a"},
		{"Appendix of methods", ""},
	}
	for _, tt := range tests {
		if got := captionNumber(tt.caption); got != tt.want {
			t.Errorf("captionNumber(%q) = %q, want %q", tt.caption, got, tt.want)
		}
	}
}
