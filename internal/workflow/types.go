package workflow

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const KeyClaim = "claim"

// DocType is the closed set of document kinds the classifier recognizes.
type DocType string

const (
	DocBill             DocType = "bill"
	DocDischargeSummary DocType = "discharge_summary"
	DocIDCard           DocType = "id_card"
	DocPharmacyBill     DocType = "pharmacy_bill"
	DocClaimForm        DocType = "claim_form"
	DocOther            DocType = "other"
	DocUnknown          DocType = "unknown"
)

var docTypeAliases = map[string]DocType{
	"bill":              DocBill,
	"dischargesummary":  DocDischargeSummary,
	"discharge_summary": DocDischargeSummary,
	"idcard":            DocIDCard,
	"id_card":           DocIDCard,
	"pharmacybill":      DocPharmacyBill,
	"pharmacy_bill":     DocPharmacyBill,
	"claimform":         DocClaimForm,
	"claim_form":        DocClaimForm,
	"other":             DocOther,
}

// ParseDocType maps an oracle-reported type name to a DocType. Both compact
// ("idcard") and snake_case ("id_card") spellings are accepted, ignoring case
// and surrounding whitespace. Anything else is DocUnknown.
func ParseDocType(s string) DocType {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "_")
	key = strings.ReplaceAll(key, " ", "_")
	if dt, ok := docTypeAliases[key]; ok {
		return dt
	}
	return DocUnknown
}

// Classification is the structured result the classifier attaches to a document.
type Classification struct {
	DocType         DocType        `json:"doc_type"`
	ExtractedFields map[string]any `json:"extracted_fields"`
	Confidence      float64        `json:"confidence"`
	Failed          bool           `json:"failed"`
}

// FailedClassification is the neutral result recorded when a classification
// response cannot be used.
func FailedClassification() *Classification {
	return &Classification{
		DocType:         DocUnknown,
		ExtractedFields: map[string]any{},
		Confidence:      0,
		Failed:          true,
	}
}

// Document is one uploaded file within a claim.
// RawBytes is set at creation; PageImages is set by the rasterize node and
// Classification by the classify node. Neither byte field is serialized.
type Document struct {
	ContentHash    string          `json:"content_hash"`
	Filename       string          `json:"filename"`
	RawBytes       []byte          `json:"-"`
	PageImages     [][]byte        `json:"-"`
	PageCount      int             `json:"page_count"`
	Classification *Classification `json:"classification"`
	RawResponse    string          `json:"raw_response,omitempty"`
}

// Validation is the cross-validation verdict for a claim.
type Validation struct {
	Valid                    bool     `json:"valid"`
	Issues                   []string `json:"issues"`
	TotalAmount              float64  `json:"total_amount"`
	MemberIDConsistent       bool     `json:"member_id_consistent"`
	RequiredDocumentsPresent bool     `json:"required_documents_present"`
}

// FailedValidation is the conservative verdict recorded when the
// cross-validation exchange fails: invalid, with reason as the only issue.
func FailedValidation(reason string) *Validation {
	return &Validation{
		Valid:  false,
		Issues: []string{"Validation LLM error: " + reason},
	}
}

// Decision is the terminal state of a claim.
type Decision string

const (
	DecisionApproved     Decision = "approved"
	DecisionRejected     Decision = "rejected"
	DecisionManualReview Decision = "manual_review"
)

// Claim is the unit of work for one pipeline run. It is created with
// Documents populated and mutated in place by each node.
type Claim struct {
	ID          uuid.UUID   `json:"id"`
	Documents   []*Document `json:"documents"`
	Validation  *Validation `json:"validation"`
	Decision    *Decision   `json:"decision"`
	StartedAt   time.Time   `json:"started_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`

	abort error
}

// NewClaim creates a Claim over docs with a fresh identifier.
func NewClaim(docs []*Document) *Claim {
	return &Claim{
		ID:        uuid.New(),
		Documents: docs,
	}
}

// Classified returns the documents that carry a classification, in order.
func (c *Claim) Classified() []*Document {
	var docs []*Document
	for _, d := range c.Documents {
		if d.Classification != nil {
			docs = append(docs, d)
		}
	}
	return docs
}

// abortWith records err as the reason the run stopped and returns it.
func (c *Claim) abortWith(err error) error {
	c.abort = err
	return err
}
