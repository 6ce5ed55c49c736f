package prompts

const classifySpec = `RESPOND WITH ONLY VALID JSON matching this exact schema. No other text.

REQUIRED JSON FORMAT:
{
  "doctype": "bill" | "dischargesummary" | "idcard" | "pharmacybill" | "claimform",
  "structureddata": <structured data in form of valid JSON>,
  "confidence": 0.0-1.0
}

EXTRACTION RULES BY DOCTYPE:

"bill": { "amount": float, "date": "YYYY-MM-DD", "provider": "str", "member_id": "str", "diagnosis_codes": ["str"] }
"dischargesummary": { "diagnosis": "str", "admission_date": "YYYY-MM-DD", "discharge_date": "YYYY-MM-DD", "doctor": "str", "member_id": "str" }
"idcard": { "member_id": "str", "policy_number": "str", "insurer": "str", "valid_from": "YYYY-MM-DD", "valid_to": "YYYY-MM-DD" }
"pharmacybill": { "amount": float, "date": "YYYY-MM-DD", "patient_name": "str", "medicines": [{"name": "str", "qty": int, "price": float}] }
"claimform": { "claim_number": "str", "member_id": "str", "claimed_amount": float, "service_dates": "str", "diagnosis_codes": ["str"], "procedure_codes": ["str"] }

Omit fields that are not present on the document rather than guessing.
OUTPUT ONLY JSON. No explanations or greetings.`

const crossValidateSpec = `Return JSON ONLY with this schema:
{
  "valid": boolean,
  "issues": [string],
  "total_amount": number,
  "member_id_consistent": boolean,
  "required_documents_present": boolean
}

"valid" is true only when every check passes. Each entry in "issues" is one
short, human-readable sentence. No explanations outside JSON.`

var specs = map[Stage]string{
	StageClassify:      classifySpec,
	StageCrossValidate: crossValidateSpec,
}

// Spec returns the response format specification for a stage.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
