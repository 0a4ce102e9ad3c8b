package queries

//go:generate mockgen -source=setting.go -destination=../../../tests/mock/queries/setting.go -package=queriesmock

import (
	"context"

	"qr-seat-reservation/internal/pkg/errs"
	"qr-seat-reservation/internal/usecase/shared"
)

type SettingQueries interface {
	Get(ctx context.Context) (*SettingView, error)
}

type settingQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewSettingQueries(uow shared.UnitOfWork) SettingQueries {
	return &settingQueriesImpl{uow: uow}
}

func (q *settingQueriesImpl) Get(ctx context.Context) (*SettingView, error) {
	var view *SettingView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Settings().Get(ctx)
		if err != nil {
			return shared.RepoErr(err, errs.ErrSettingNotFound, "no settings record")
		}
		view = settingView(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
