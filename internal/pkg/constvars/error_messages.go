package constvars

var CustomValidationErrorMessages = map[string]string{
	"required":         "is required",
	"email":            "must be a valid email",
	"alphanum":         "must contain only alphanumeric characters",
	"min":              "must be at least %s characters long",
	"max":              "maximum at %s characters long",
	"numeric":          "must be a number",
	"len":              "must be %s characters long",
	"oneof":            "must be one of [%s]",
	"gt":               "must be greater than %s",
	"gte":              "must be greater than or equal to %s",
	"lt":               "must be less than %s",
	"lte":              "must be less than or equal to %s",
	"url":              "must be a valid URL",
	"uuid":             "must be a valid UUID",
	"datetime":         "must be a valid timestamp in format %s",
	"required_if":      "is required when %s is %s",
	"required_with":    "is required when %s is present",
	"required_without": "is required when %s is not present",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":              true,
	"max":              true,
	"len":              true,
	"oneof":            true,
	"gt":               true,
	"gte":              true,
	"lt":               true,
	"lte":              true,
	"datetime":         true,
	"required_if":      true,
	"required_with":    true,
	"required_without": true,
}

// Client-facing messages. Never leak internals to callers.
const (
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "Cannot process request, please check your request"
	ErrClientNotAuthorized                 = "You are not authorized to perform this action"
	ErrClientServerLongRespond             = "Server takes too long to respond, please try again later"

	ErrClientProviderNotFound        = "Medical aid provider not found"
	ErrClientClaimNotFound           = "Claim not found"
	ErrClientClaimSubmissionFailed   = "Failed to submit claim, please try again later"
	ErrClientInvalidStatusTransition = "Requested claim status change is not allowed"
	ErrClientMembershipInvalid       = "Invalid membership number or membership expired"
	ErrClientValidationUnavailable   = "Validation service unavailable"
)

// Developer messages kept out of client responses.
const (
	ErrDevValidationFailed  = "Validation failed for one or more fields"
	ErrDevInvalidInput      = "Invalid input"
	ErrDevCannotParseJSON   = "Failed to parse JSON"
	ErrDevCannotMarshalJSON = "Failed to marshal JSON"
	ErrDevReadBody          = "Failed to read request body"

	ErrDevServerProcess          = "Server failed to process the request"
	ErrDevServerDeadlineExceeded = "Deadline exceeded while processing request"
	ErrDevMissingRequestID       = "Request ID missing from request context"

	ErrDevDBFailedToFindData    = "Database failed to find data"
	ErrDevDBFailedToInsertData  = "Database failed to insert data"
	ErrDevDBFailedToUpdateData  = "Database failed to update data"
	ErrDevDBFailedToIterateData = "Database failed to iterate dataset"
	ErrDevDBVersionConflict     = "Optimistic concurrency check failed, row version changed"

	ErrDevMongoFailedToInsertDocument = "MongoDB failed to insert document"
	ErrDevMongoFailedToFindDocument   = "MongoDB failed to find documents"

	ErrDevRedisGetData  = "Redis failed to get data"
	ErrDevRedisSetData  = "Redis failed to set data"
	ErrDevRedisDelete   = "Redis failed to delete data"
	ErrDevRedisUnlock   = "Redis failed to release lock"
	ErrDevRedisTrySetNX = "Redis failed to set key with NX option"

	ErrDevRabbitMQPublish = "RabbitMQ failed to publish message to queue %s"

	ErrDevCreateHTTPRequest = "Failed to create HTTP request"
	ErrDevSendHTTPRequest   = "Failed to send HTTP request"

	ErrDevProviderNotFound        = "Provider lookup returned no rows"
	ErrDevClaimNotFound           = "Claim lookup returned no rows"
	ErrDevClaimVersionConflict    = "Claim update rejected, version token stale"
	ErrDevGatewaySubmitFailed     = "Provider gateway claim submission failed"
	ErrDevGatewayValidateFailed   = "Provider gateway membership validation failed"
	ErrDevWebhookMissingClaimRef  = "No claim number in webhook data"
	ErrDevWebhookUnknownClaim     = "Webhook references a claim that does not exist"
	ErrDevWebhookStalePayload     = "Webhook payload older than last claim update, discarded"
	ErrDevInvalidStatusTransition = "Claim status transition not permitted by state machine"
	ErrDevWebhookTokenMissing     = "Webhook bearer token missing"
	ErrDevWebhookTokenInvalid     = "Webhook bearer token invalid or expired"
)
