package claims

import (
	"github.com/JaimeStill/superclaims/internal/workflow"
	"github.com/JaimeStill/superclaims/pkg/openapi"
)

// Schemas returns the OpenAPI component schemas for the claim JSON shape.
func Schemas() map[string]*openapi.Schema {
	docTypes := []any{
		string(workflow.DocBill),
		string(workflow.DocDischargeSummary),
		string(workflow.DocIDCard),
		string(workflow.DocPharmacyBill),
		string(workflow.DocClaimForm),
		string(workflow.DocOther),
		string(workflow.DocUnknown),
	}
	decisions := []any{
		string(workflow.DecisionApproved),
		string(workflow.DecisionRejected),
		string(workflow.DecisionManualReview),
	}

	return map[string]*openapi.Schema{
		"Classification": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"doc_type":         {Type: "string", Enum: docTypes},
				"extracted_fields": {Type: "object", AdditionalProperties: true},
				"confidence":       {Type: "number", Minimum: openapi.Float(0), Maximum: openapi.Float(1)},
				"failed":           {Type: "boolean", Description: "True when the model reply could not be used"},
			},
		},
		"Document": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"content_hash":   {Type: "string", Description: "SHA-256 of the file bytes, hex encoded"},
				"filename":       {Type: "string"},
				"page_count":     {Type: "integer"},
				"classification": openapi.Nullable("Classification"),
				"raw_response":   {Type: "string", Description: "Unparsed classification reply"},
			},
		},
		"Validation": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"valid":                      {Type: "boolean"},
				"issues":                     {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"total_amount":               {Type: "number"},
				"member_id_consistent":       {Type: "boolean"},
				"required_documents_present": {Type: "boolean"},
			},
		},
		"Claim": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"documents":    {Type: "array", Items: openapi.SchemaRef("Document")},
				"validation":   openapi.Nullable("Validation"),
				"decision":     {Type: []any{"string", "null"}, Enum: append(decisions, nil)},
				"started_at":   {Type: "string", Format: "date-time"},
				"completed_at": {Type: "string", Format: "date-time"},
			},
		},
		"Welcome": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"message": {Type: "string", Example: welcomeMessage},
			},
		},
	}
}

func processOperation(id, field string, deprecated bool) *openapi.Operation {
	return &openapi.Operation{
		OperationID: id,
		Summary:     "Process a claim",
		Description: "Classify each uploaded PDF, cross-validate the extracted fields, and decide the claim.",
		Tags:        []string{"claims"},
		Deprecated:  deprecated,
		RequestBody: openapi.RequestBodyFiles(field, "Claim documents, one PDF per file"),
		Responses: map[string]*openapi.Response{
			"200": openapi.ResponseJSON("Processed claim", "Claim"),
			"400": openapi.ResponseRef("BadRequest"),
			"413": openapi.ResponseRef("PayloadTooLarge"),
			"422": openapi.ResponseRef("UnprocessableEntity"),
			"500": openapi.ResponseRef("InternalError"),
			"502": openapi.ResponseRef("BadGateway"),
			"504": openapi.ResponseRef("GatewayTimeout"),
		},
	}
}

// Paths returns the OpenAPI path items for the handler's routes, relative
// to the API base path.
func Paths() map[string]*openapi.PathItem {
	return map[string]*openapi.PathItem{
		"/": {
			Get: &openapi.Operation{
				OperationID: "welcome",
				Summary:     "Welcome message",
				Tags:        []string{"claims"},
				Responses: map[string]*openapi.Response{
					"200": openapi.ResponseJSON("Greeting", "Welcome"),
				},
			},
		},
		"/claims":        {Post: processOperation("processClaim", fileFields[0], false)},
		"/process-claim": {Post: processOperation("processClaimLegacy", fileFields[1], true)},
	}
}
