package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dujiao-next/storefront/internal/contracts"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var notificationTemplateVarPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// NotificationInput 创建通知参数，Title/Message 支持 {{var}} 占位符
type NotificationInput struct {
	UserID    uint
	Type      string
	Title     string
	Message   string
	Link      string
	Variables map[string]any
}

// NotificationService 用户通知服务
type NotificationService struct {
	repo repository.NotificationRepository
	log  *zap.SugaredLogger
}

// NewNotificationService 创建通知服务
func NewNotificationService(repo repository.NotificationRepository, log *zap.SugaredLogger) *NotificationService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &NotificationService{repo: repo, log: log}
}

// Create 渲染模板并写入通知
func (s *NotificationService) Create(_ context.Context, input NotificationInput) (*contracts.Notification, error) {
	if input.UserID == 0 {
		return nil, ErrNotFound
	}
	kind := strings.TrimSpace(input.Type)
	if kind == "" {
		kind = models.NotificationTypeInfo
	}
	record := &models.Notification{
		ID:        uuid.NewString(),
		UserID:    input.UserID,
		Type:      kind,
		Title:     renderNotificationTemplate(input.Title, input.Variables),
		Message:   renderNotificationTemplate(input.Message, input.Variables),
		Link:      input.Link,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(record); err != nil {
		return nil, err
	}
	s.log.Infow("notification_created", "user_id", input.UserID, "notification_id", record.ID, "type", kind)
	out := ToContractNotification(record)
	return &out, nil
}

// List 用户通知列表
func (s *NotificationService) List(userID uint, page, limit int, unreadOnly bool) (contracts.Page[contracts.Notification], error) {
	page, limit = normalizePage(page, limit)
	records, total, err := s.repo.List(repository.NotificationListFilter{
		Page:       page,
		PageSize:   limit,
		UserID:     userID,
		UnreadOnly: unreadOnly,
	})
	if err != nil {
		return contracts.Page[contracts.Notification]{}, err
	}
	items := make([]contracts.Notification, 0, len(records))
	for i := range records {
		items = append(items, ToContractNotification(&records[i]))
	}
	return contracts.Page[contracts.Notification]{Items: items, Pagination: contracts.NewPagination(page, limit, total)}, nil
}

// MarkRead 标记已读
func (s *NotificationService) MarkRead(userID uint, id string) (*contracts.Notification, error) {
	record, err := s.repo.MarkRead(userID, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotificationNotFound
	}
	out := ToContractNotification(record)
	return &out, nil
}

// MarkAllRead 全部已读
func (s *NotificationService) MarkAllRead(userID uint) (int64, error) {
	return s.repo.MarkAllRead(userID)
}

// Delete 删除通知
func (s *NotificationService) Delete(userID uint, id string) error {
	deleted, err := s.repo.Delete(userID, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotificationNotFound
	}
	return nil
}

// renderNotificationTemplate 替换 {{var}}，未知变量保持原样
func renderNotificationTemplate(tpl string, vars map[string]any) string {
	if tpl == "" || len(vars) == 0 {
		return tpl
	}
	return notificationTemplateVarPattern.ReplaceAllStringFunc(tpl, func(match string) string {
		name := notificationTemplateVarPattern.FindStringSubmatch(match)[1]
		value, ok := vars[name]
		if !ok {
			return match
		}
		return fmt.Sprint(value)
	})
}
