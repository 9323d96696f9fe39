package workers

import (
	"context"
	"errors"
	"time"

	"socialfeed/internal/core/errs"
	postPort "socialfeed/internal/ports/post"
	userPort "socialfeed/internal/ports/user"

	"go.uber.org/zap"
)

// MirrorWorker دوره‌ای mirror لایک‌های کاربر را با likers پست‌ها هم‌راستا می‌کند
//
// The post side is authoritative: missing mirror rows are added and rows
// whose post is gone or no longer lists the user are removed.
// Posts are read in BatchSize pages and each write is re-checked against a
// fresh read of its post.
type MirrorWorker struct {
	PostRepo      postPort.PostRepository
	LikedPostRepo userPort.LikedPostRepository
	Interval      time.Duration
	BatchSize     int // تعداد پست‌ها در هر دسته
	Logger        *zap.Logger
}

type RepairStats struct {
	Added   int
	Removed int
}

func NewMirrorWorker(
	postRepo postPort.PostRepository,
	likedRepo userPort.LikedPostRepository,
	interval time.Duration,
	batchSize int,
	logger *zap.Logger,
) *MirrorWorker {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &MirrorWorker{
		PostRepo:      postRepo,
		LikedPostRepo: likedRepo,
		Interval:      interval,
		BatchSize:     batchSize,
		Logger:        logger,
	}
}

// Run تا لغو ctx هر Interval یک بار RepairOnce را اجرا می‌کند
func (w *MirrorWorker) Run(ctx context.Context) {
	w.Logger.Info("🚀 MirrorWorker started", zap.Duration("interval", w.Interval))
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("🛑 Mirror worker stopped")
			return
		case <-ticker.C:
			stats, err := w.RepairOnce(ctx)
			if err != nil {
				w.Logger.Error("❌ Mirror repair failed", zap.Error(err))
				continue
			}
			if stats.Added > 0 || stats.Removed > 0 {
				w.Logger.Info("✅ Mirror repaired", zap.Int("added", stats.Added), zap.Int("removed", stats.Removed))
			}
		}
	}
}

// RepairOnce یک دور کامل؛ پست‌ها صفحه به صفحه (BatchSize) از store خوانده می‌شوند
func (w *MirrorWorker) RepairOnce(ctx context.Context) (RepairStats, error) {
	var stats RepairStats

	// mirror اول خوانده می‌شود تا لایکی که بین دو خواندن ثبت شده حذف نشود
	rows, err := w.LikedPostRepo.All(ctx)
	if err != nil {
		return stats, err
	}

	mirrored := make(map[pair]struct{}, len(rows))
	for _, r := range rows {
		mirrored[pair{r.UserID.String(), r.PostID}] = struct{}{}
	}
	authoritative := make(map[pair]struct{})

	after := ""
	for {
		page, err := w.PostRepo.FindPage(ctx, after, int64(w.BatchSize))
		if err != nil {
			return stats, err
		}
		for _, p := range page {
			for _, liker := range p.Likes {
				k := pair{liker, p.ID}
				authoritative[k] = struct{}{}
				if _, ok := mirrored[k]; ok {
					continue
				}
				if w.add(ctx, k) {
					stats.Added++
				}
			}
		}
		if len(page) < w.BatchSize {
			break
		}
		after = page[len(page)-1].ID
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
	}

	for k := range mirrored {
		if _, ok := authoritative[k]; ok {
			continue
		}
		if w.remove(ctx, k) {
			stats.Removed++
		}
	}
	return stats, nil
}

type pair struct{ user, post string }

// add قبل از نوشتن، وضعیت فعلی پست را دوباره می‌خواند
func (w *MirrorWorker) add(ctx context.Context, k pair) bool {
	liked, err := w.likedNow(ctx, k)
	if err != nil || !liked {
		return false
	}
	if err := w.LikedPostRepo.Add(ctx, k.user, k.post); err != nil {
		w.Logger.Warn("⚠️ Could not add liked post mirror",
			zap.String("userID", k.user), zap.String("postID", k.post), zap.Error(err))
		return false
	}
	return true
}

func (w *MirrorWorker) remove(ctx context.Context, k pair) bool {
	liked, err := w.likedNow(ctx, k)
	if err != nil || liked {
		return false
	}
	if err := w.LikedPostRepo.Remove(ctx, k.user, k.post); err != nil {
		w.Logger.Warn("⚠️ Could not remove stale liked post mirror",
			zap.String("userID", k.user), zap.String("postID", k.post), zap.Error(err))
		return false
	}
	return true
}

// likedNow reports whether the post currently lists the user. A missing post
// counts as not liked; any other read error skips the row for this pass.
func (w *MirrorWorker) likedNow(ctx context.Context, k pair) (bool, error) {
	p, err := w.PostRepo.FindByID(ctx, k.post)
	if errors.Is(err, errs.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		w.Logger.Warn("⚠️ Could not re-read post for mirror repair",
			zap.String("postID", k.post), zap.Error(err))
		return false, err
	}
	return p.LikedBy(k.user), nil
}
