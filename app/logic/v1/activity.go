package v1

import (
	"context"
	"database/sql"

	"github.com/neodocs/neodocs/app/core"
	"github.com/neodocs/neodocs/pkg/errors"
	"github.com/neodocs/neodocs/pkg/i18n"
	"github.com/neodocs/neodocs/pkg/types"
)

type ActivityLogic struct {
	ctx  context.Context
	core *core.Core
	UserInfo
}

func NewActivityLogic(ctx context.Context, core *core.Core) *ActivityLogic {
	l := &ActivityLogic{
		ctx:      ctx,
		core:     core,
		UserInfo: SetupUserInfo(ctx, core),
	}

	return l
}

type ListActivityArgs struct {
	ActivityType string `json:"activity_type" form:"activity_type"`
	DocumentID   string `json:"document_id" form:"document_id"`
	QRShareID    string `json:"qr_share_id" form:"qr_share_id"`
	TimeFrom     int64  `json:"time_from" form:"time_from"`
	TimeTo       int64  `json:"time_to" form:"time_to"`
}

// ListActivities 只能查询当前用户名下的审计事件
func (l *ActivityLogic) ListActivities(args ListActivityArgs, page, pageSize uint64) ([]types.Activity, int64, error) {
	user := l.GetUserInfo()
	opts := types.GetActivityOptions{
		Appid:        user.Appid,
		UserID:       user.User,
		ActivityType: args.ActivityType,
		DocumentID:   args.DocumentID,
		QRShareID:    args.QRShareID,
		TimeFrom:     args.TimeFrom,
		TimeTo:       args.TimeTo,
	}

	list, err := l.core.Store().ActivityStore().List(l.ctx, opts, page, pageSize)
	if err != nil && err != sql.ErrNoRows {
		return nil, 0, errors.New("ActivityLogic.ListActivities.ActivityStore.List", i18n.ERROR_INTERNAL, err)
	}

	total, err := l.core.Store().ActivityStore().Total(l.ctx, opts)
	if err != nil {
		return nil, 0, errors.New("ActivityLogic.ListActivities.ActivityStore.Total", i18n.ERROR_INTERNAL, err)
	}

	return list, total, nil
}
