package app

import (
	"context"
	"time"

	"astrolink/system/shorturl/internal/service"
)

const sweepBatchSize = 100

// 水位缺失时从这里开始消费，覆盖全部历史点击
var watermarkEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// RunClickAggregation 点击聚合批任务。
// 读取水位（redis 丢失时回退到纪元起点），按链接汇总水位之后的点击事件，
// 逐条原子累加 click_count 并推进 last_accessed_at，全部成功后才写回新水位。
// 任务在更新与写水位之间崩溃时，下一轮会重放本批增量（已知的重复计数窗口）
func (a *App) RunClickAggregation(ctx context.Context) error {
	a.log.Info("开始执行点击聚合任务")

	watermark, err := a.readWatermark(ctx)
	if err != nil {
		return err
	}

	aggregates, err := a.ClickEventDao.AggregateSince(ctx, watermark)
	if err != nil {
		return err
	}
	if len(aggregates) == 0 {
		a.log.Info("没有新点击，聚合任务结束")
		return nil
	}

	latest := watermark
	for _, agg := range aggregates {
		if err := a.LinkDao.IncrementClickStats(ctx, agg.LinkID, agg.Count, agg.MaxTimestamp); err != nil {
			return err
		}
		if agg.MaxTimestamp.After(latest) {
			latest = agg.MaxTimestamp
		}
	}

	if err := a.store.Set(ctx, service.WatermarkKey, latest.Format(time.RFC3339Nano), 0); err != nil {
		return a.err.New("写回聚合水位失败", err).Third()
	}

	a.log.WithField("links", len(aggregates)).WithField("watermark", latest.Format(time.RFC3339Nano)).
		Info("点击聚合任务完成")
	return nil
}

func (a *App) readWatermark(ctx context.Context) (time.Time, error) {
	val, found, err := a.store.Get(ctx, service.WatermarkKey)
	if err != nil {
		return time.Time{}, a.err.New("读取聚合水位失败", err).Third()
	}
	if !found {
		return watermarkEpoch, nil
	}

	watermark, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		a.log.WithErr(err).WithField("value", val).Warn("聚合水位格式异常，回退到纪元起点")
		return watermarkEpoch, nil
	}
	return watermark, nil
}

// RunExpirationSweep 过期清理批任务。
// 每批最多 100 条：先清缓存键，再删点击事件和链接行，循环直到不足一批。
// 每批独立提交，中途失败下一轮从头继续即可
func (a *App) RunExpirationSweep(ctx context.Context) error {
	a.log.Info("开始执行过期清理任务")
	totalDeleted := 0

	for {
		batch, err := a.LinkDao.FindExpiredPage(ctx, time.Now(), sweepBatchSize)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			break
		}

		linkIDs := make([]interface{}, 0, len(batch))
		clickLinkIDs := make([]int64, 0, len(batch))
		for _, link := range batch {
			a.invalidateSlugCache(ctx, link.Slug)
			linkIDs = append(linkIDs, link.ID)
			clickLinkIDs = append(clickLinkIDs, link.ID)
		}

		if err := a.ClickEventDao.DeleteByLinkIds(ctx, clickLinkIDs); err != nil {
			return err
		}
		if _, err := a.LinkDao.DeleteByIds(ctx, linkIDs); err != nil {
			return err
		}

		totalDeleted += len(batch)
		a.log.WithField("batch", len(batch)).Info("已删除一批过期短链接")

		if len(batch) < sweepBatchSize {
			break
		}
	}

	if totalDeleted > 0 {
		a.log.WithField("total", totalDeleted).Info("过期清理任务完成")
	} else {
		a.log.Info("过期清理任务完成，没有过期短链接")
	}
	return nil
}
