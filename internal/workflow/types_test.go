package workflow_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/JaimeStill/superclaims/internal/workflow"
)

func TestParseDocType(t *testing.T) {
	tests := []struct {
		in   string
		want workflow.DocType
	}{
		{"bill", workflow.DocBill},
		{"dischargesummary", workflow.DocDischargeSummary},
		{"discharge_summary", workflow.DocDischargeSummary},
		{"idcard", workflow.DocIDCard},
		{"ID Card", workflow.DocIDCard},
		{"pharmacybill", workflow.DocPharmacyBill},
		{"pharmacy-bill", workflow.DocPharmacyBill},
		{" claimform ", workflow.DocClaimForm},
		{"claim_form", workflow.DocClaimForm},
		{"other", workflow.DocOther},
		{"", workflow.DocUnknown},
		{"receipt", workflow.DocUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := workflow.ParseDocType(tt.in); got != tt.want {
				t.Errorf("ParseDocType(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFailurePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    workflow.FailurePolicy
		wantErr bool
	}{
		{"", workflow.FailContinue, false},
		{"continue", workflow.FailContinue, false},
		{"abort", workflow.FailAbort, false},
		{"retry", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := workflow.ParseFailurePolicy(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClaimJSON(t *testing.T) {
	claim := workflow.NewClaim([]*workflow.Document{
		{
			ContentHash: "abc",
			Filename:    "card.pdf",
			RawBytes:    []byte("%PDF"),
			PageImages:  [][]byte{[]byte("png")},
			PageCount:   1,
		},
	})

	data, err := json.Marshal(claim)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"id", "documents", "validation", "decision", "started_at"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}

	if decoded["validation"] != nil || decoded["decision"] != nil {
		t.Error("validation and decision should be null before the run")
	}

	doc := decoded["documents"].([]any)[0].(map[string]any)
	if _, ok := doc["classification"]; !ok {
		t.Error("classification key should be present")
	}
	if strings.Contains(string(data), "RawBytes") || strings.Contains(string(data), "PageImages") {
		t.Errorf("byte payloads serialized: %s", data)
	}
}
