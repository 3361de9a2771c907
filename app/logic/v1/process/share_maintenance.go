package process

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/neodocs/neodocs/pkg/register"
	"github.com/neodocs/neodocs/pkg/types"
)

func init() {
	register.RegisterFunc[*Process](ProcessKey{}, func(p *Process) {
		// 每小时回填一次分享状态并清理过期会话。
		// 状态列只是缓存，回填晚了不影响正确性。
		p.AddFunc("@hourly", func() {
			RefreshShareStatus(p)
			PruneExpiredSessions(p)
		})
	})
}

// RefreshShareStatus 将已经失效但状态仍为 active 的分享批量置为 expired，
// 并通知创建者。
func RefreshShareStatus(p *Process) {
	ctx := context.Background()
	now := time.Now().Unix()

	for {
		list, err := p.Core().Store().QRShareStore().ListExpiredActive(ctx, now, 100)
		if err != nil {
			slog.Error("Failed to list expired shares", slog.String("error", err.Error()))
			return
		}

		if len(list) == 0 {
			return
		}

		for _, share := range list {
			if err := p.Core().Store().QRShareStore().UpdateStatus(ctx, share.ID, types.QR_SHARE_STATUS_EXPIRED); err != nil {
				slog.Error("Failed to backfill share status", slog.String("error", err.Error()), slog.String("share_id", share.ID))
				continue
			}

			err = p.Core().Store().NotificationStore().Create(ctx, types.Notification{
				Appid:      share.Appid,
				UserID:     share.CreatedBy,
				Type:       types.NOTIFICATION_TYPE_SHARE_EXPIRED,
				Title:      "QR share expired",
				Body:       fmt.Sprintf("Your qr share %q is no longer accessible", share.Title),
				DocumentID: share.DocumentID,
				QRShareID:  share.ID,
				CreatedAt:  time.Now().Unix(),
			})
			if err != nil {
				slog.Error("Failed to create expiry notification", slog.String("error", err.Error()), slog.String("share_id", share.ID))
			}
		}

		if len(list) < 100 {
			return
		}
	}
}

// PruneExpiredSessions 删除窗口已过的访问会话记录
func PruneExpiredSessions(p *Process) {
	affected, err := p.Core().Store().ShareSessionStore().DeleteExpired(context.Background(), time.Now().Unix())
	if err != nil {
		slog.Error("Failed to prune expired sessions", slog.String("error", err.Error()))
		return
	}

	if affected > 0 {
		slog.Info("Pruned expired share sessions", slog.Int64("count", affected))
	}
}
