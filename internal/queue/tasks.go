package queue

import (
	"encoding/json"

	"github.com/dujiao-next/storefront/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskReviewSubmitted 评价提交统计与通知任务
	TaskReviewSubmitted = constants.TaskReviewSubmitted
	// TaskReviewViewed 评价浏览统计任务
	TaskReviewViewed = constants.TaskReviewViewed
)

// ReviewSubmittedPayload 评价提交任务载荷
type ReviewSubmittedPayload struct {
	ProductID string `json:"product_id"`
	Rating    int    `json:"rating"`
	UserID    uint   `json:"user_id,omitempty"`
}

// ReviewViewedPayload 评价浏览任务载荷
type ReviewViewedPayload struct {
	ProductID string `json:"product_id"`
	Count     int    `json:"count"`
}

// NewReviewSubmittedTask 创建评价提交任务
func NewReviewSubmittedTask(payload ReviewSubmittedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReviewSubmitted, body), nil
}

// NewReviewViewedTask 创建评价浏览任务
func NewReviewViewedTask(payload ReviewViewedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReviewViewed, body), nil
}
