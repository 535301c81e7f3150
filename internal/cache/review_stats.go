package cache

import (
	"context"
	"strconv"
	"strings"
)

// ReviewStats 商品评价统计
type ReviewStats struct {
	Submissions int64         `json:"submissions"`
	RatingSum   int64         `json:"rating_sum"`
	Views       int64         `json:"views"`
	ByRating    map[int]int64 `json:"by_rating"`
}

// Average 平均分
func (s ReviewStats) Average() float64 {
	if s.Submissions == 0 {
		return 0
	}
	return float64(s.RatingSum) / float64(s.Submissions)
}

func reviewStatsKey(productID string) string {
	return "review:stats:" + productID
}

// RecordReviewSubmission 累加评价提交计数
func RecordReviewSubmission(ctx context.Context, productID string, rating int) error {
	client := Client()
	if client == nil || productID == "" {
		return nil
	}
	key := BuildKey(reviewStatsKey(productID))
	pipe := client.TxPipeline()
	pipe.HIncrBy(ctx, key, "submissions", 1)
	pipe.HIncrBy(ctx, key, "rating_sum", int64(rating))
	pipe.HIncrBy(ctx, key, "rating_"+strconv.Itoa(rating), 1)
	_, err := pipe.Exec(ctx)
	return err
}

// RecordReviewViews 累加评价浏览计数
func RecordReviewViews(ctx context.Context, productID string, count int) error {
	client := Client()
	if client == nil || productID == "" || count <= 0 {
		return nil
	}
	return client.HIncrBy(ctx, BuildKey(reviewStatsKey(productID)), "views", int64(count)).Err()
}

// GetReviewStats 读取评价统计
func GetReviewStats(ctx context.Context, productID string) (ReviewStats, bool, error) {
	stats := ReviewStats{ByRating: map[int]int64{}}
	client := Client()
	if client == nil || productID == "" {
		return stats, false, nil
	}
	fields, err := client.HGetAll(ctx, BuildKey(reviewStatsKey(productID))).Result()
	if err != nil {
		return stats, false, err
	}
	if len(fields) == 0 {
		return stats, false, nil
	}
	for field, raw := range fields {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		switch field {
		case "submissions":
			stats.Submissions = n
		case "rating_sum":
			stats.RatingSum = n
		case "views":
			stats.Views = n
		default:
			if rest, ok := strings.CutPrefix(field, "rating_"); ok {
				if r, err := strconv.Atoi(rest); err == nil {
					stats.ByRating[r] = n
				}
			}
		}
	}
	return stats, true, nil
}
