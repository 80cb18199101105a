package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_PROVIDER_CODE_KEY        ContextKey = "provider_code"
)

const (
	REQUEST_ID_PREFIX = "CLMSW_SVC_"
)

const (
	ResourceProviders = "providers"
	ResourceClaims    = "claims"
	ResourceWebhooks  = "webhooks"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)

const (
	URLParamProviderID   = "providerID"
	URLParamProviderCode = "providerCode"
	URLParamClaimNumber  = "claimNumber"
	URLParamPatientID    = "patientID"
)
