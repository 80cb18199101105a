package constvars

const (
	LoggingRequestIDKey  = "request_id"
	LoggingRequestKey    = "request"
	LoggingResponseKey   = "response"
	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"
	LoggingErrorTypeKey  = "error_type"

	LoggingClaimNumberKey  = "claim_number"
	LoggingClaimIDKey      = "claim_id"
	LoggingProviderIDKey   = "provider_id"
	LoggingProviderCodeKey = "provider_code"
	LoggingClaimStatusKey  = "claim_status"
	LoggingMessageIDKey    = "message_id"
	LoggingFailedCountKey  = "failed_count"
	LoggingDeliveryTagKey  = "delivery_tag"

	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
)
