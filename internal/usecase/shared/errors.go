package shared

import (
	"qr-seat-reservation/internal/infra"
	"qr-seat-reservation/internal/pkg/errs"
)

// RepoErr turns a repository NOT_FOUND into the given domain sentinel and
// marks anything else as a database failure. The repository error stays in
// the chain, so retryable conflicts are still recognised by the unit of work.
func RepoErr(err error, notFound error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if notFound != nil && infra.IsKind(err, infra.KindNotFound) {
		return errs.Detailf(notFound, format, args...)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
