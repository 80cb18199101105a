package utils

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"claimswitch-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

// GenerateRequestID issues the correlation ID attached to requests that
// arrive without one.
func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

// claimNumberSequence is seeded from the nanosecond clock so restarts do not
// resume at the same point, then incremented atomically per claim. The suffix
// is the sequence modulo 10^6, which keeps any one million consecutive claim
// numbers collision free even when generated in the same clock tick.
var claimNumberSequence = func() *atomic.Uint64 {
	var seq atomic.Uint64
	seq.Store(uint64(time.Now().UnixNano()))
	return &seq
}()

// GenerateClaimNumber builds a claim number of the form
// CLM-<PROVIDER>-<YYYYMM>-<6-digit suffix>.
func GenerateClaimNumber(providerCode string, now time.Time) string {
	suffixSpace := uint64(math.Pow10(constvars.ClaimNumberSuffixDigits))
	suffix := claimNumberSequence.Add(1) % suffixSpace

	return fmt.Sprintf("%s-%s-%s-%0*d",
		constvars.ClaimNumberPrefix,
		strings.ToUpper(providerCode),
		now.Format(constvars.ClaimNumberMonthLayout),
		constvars.ClaimNumberSuffixDigits,
		suffix,
	)
}

// RoundMoney rounds to two decimal places, half away from zero.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
