package prompts

const classifyInstructions = `Analyze this medical document. The attached images are the pages of a single
uploaded file belonging to a health insurance claim, in page order.

Identify which kind of document it is and extract its structured data
according to the extraction rules for that document type. Read values exactly
as printed. Use ISO dates (YYYY-MM-DD). Monetary amounts are plain numbers
without currency symbols or thousands separators.`

const crossValidateInstructions = `You are validating an insurance claim package using extracted JSON details per file.
Use strict rule-based checks and conservative assumptions.

Validation goals:
1) total_amount: Sum all monetary amounts from "bill" and "pharmacybill" documents.
2) Compare total_amount against claimed_amount from the "claimform" (if present).
   If total_amount exceeds claimed_amount, flag an issue.
3) member_id_consistent: Check that the member_id on the "idcard" appears consistently
   in the other files.
4) required_documents_present: Ensure at least one "idcard" and one "claimform" are present.
5) Identify any inconsistencies, missing fields, date anomalies, or low-confidence extractions
   and list each one as an issue.`

var instructions = map[Stage]string{
	StageClassify:      classifyInstructions,
	StageCrossValidate: crossValidateInstructions,
}

// Instructions returns the fixed instructions for a stage.
func Instructions(stage Stage) (string, error) {
	text, ok := instructions[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
