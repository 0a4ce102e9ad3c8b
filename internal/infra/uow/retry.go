package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	"time"

	"qr-seat-reservation/internal/pkg/errs"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type retryPolicy struct {
	maxRetries int
	base       time.Duration
	retryable  func(error) bool
}

// run calls attempt until it succeeds, fails with a non-retryable error, or
// the retries are spent.
func (p retryPolicy) run(ctx context.Context, store string, attempt func() error) error {
	for i := 0; i <= p.maxRetries; i++ {
		err := attempt()
		if err == nil {
			return nil
		}

		if !p.retryable(err) {
			return err
		}
		if i == p.maxRetries {
			slog.Error("transaction failed after max retries",
				"store", store,
				"attempts", i+1,
				"error", err.Error())
			return errs.Mark(err, errMaxRetriesExceeded)
		}

		waitTime := calculateBackoff(i, p.base)

		slog.Warn("retrying transaction due to retryable error",
			"store", store,
			"attempt", i+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// mask the sign bit so the conversion stays positive
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- safe after masking
	return int64(uval) % n
}
