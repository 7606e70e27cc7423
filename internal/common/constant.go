package common

// HTTP header names shared by the capture client and the reference backend.
const (
	AuthorizationHeaderName = "Authorization"
	BearerPrefix            = "Bearer "

	// APIKeyHeaderName carries the public project key expected by
	// PostgREST-style storage endpoints.
	APIKeyHeaderName = "apikey"

	// PreferHeaderName / PreferReturnMinimal ask the storage endpoint not to
	// echo the inserted row back.
	PreferHeaderName    = "Prefer"
	PreferReturnMinimal = "return=minimal"
)

// API paths served by the reference backend and used as client defaults.
const (
	VerifyTokenPath   = "/api/verify-token"
	KnowledgeBasePath = "/rest/v1/knowledge_base"
)
