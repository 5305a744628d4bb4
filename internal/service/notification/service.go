package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/notification"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/user"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/sse"
)

const (
	queueSize   = 256
	workerCount = 2
	dbTimeout   = 5 * time.Second
)

// NotificationService fans notices out to their audience. Dispatch is queued
// and handled by background workers so a slow insert never holds up the
// request that triggered it.
type NotificationService struct {
	repo     notification.Repository
	userRepo user.Repository
	hub      *sse.Hub
	logger   *slog.Logger

	queue chan notification.NotifyRequest
	wg    sync.WaitGroup

	mu      sync.Mutex
	running bool
}

func NewNotificationService(
	repo notification.Repository,
	userRepo user.Repository,
	hub *sse.Hub,
	logger *slog.Logger,
) *NotificationService {
	s := &NotificationService{
		repo:     repo,
		userRepo: userRepo,
		hub:      hub,
		logger:   logger,
		queue:    make(chan notification.NotifyRequest, queueSize),
		running:  true,
	}

	s.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go s.worker()
	}

	return s
}

// Notify queues a fan-out. It returns ErrNotRunning after Stop and never
// blocks longer than a channel send on a bounded queue.
func (s *NotificationService) Notify(ctx context.Context, req notification.NotifyRequest) error {
	// The lock is held across the send so Stop cannot close the queue
	// underneath it. Workers drain without the lock, so a full queue
	// still makes progress.
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return notification.ErrNotRunning
	}

	select {
	case s.queue <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *NotificationService) List(ctx context.Context, userID string, page, pageSize int) (*notification.ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	notifications, total, err := s.repo.GetByRecipient(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}

	unread, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, notification.NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			ReadAt:    n.ReadAt,
			CreatedAt: n.CreatedAt,
		})
	}

	return &notification.ListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unread,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

// Stop closes the queue and waits for the workers to drain it.
func (s *NotificationService) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.queue)
	s.wg.Wait()
}

func (s *NotificationService) worker() {
	defer s.wg.Done()
	for req := range s.queue {
		s.dispatch(req)
	}
}

func (s *NotificationService) dispatch(req notification.NotifyRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	recipients, err := s.resolveRecipients(ctx, req)
	if err != nil {
		s.logger.Error("failed to resolve notification recipients",
			slog.String("scope", string(req.Scope)),
			slog.Any("error", err))
		return
	}
	if len(recipients) == 0 {
		return
	}

	notifications := make([]*notification.Notification, 0, len(recipients))
	for _, recipientID := range recipients {
		notifications = append(notifications, &notification.Notification{
			RecipientID: recipientID,
			SenderID:    req.SenderID,
			Type:        req.Type,
			Title:       req.Title,
			Message:     req.Message,
			Visibility:  req.Visibility,
		})
	}

	if err := s.repo.CreateBatch(ctx, notifications); err != nil {
		s.logger.Error("failed to persist notifications",
			slog.String("type", string(req.Type)),
			slog.Int("recipients", len(notifications)),
			slog.Any("error", err))
		return
	}

	for _, n := range notifications {
		s.hub.Publish(n.RecipientID, sse.Event{
			UserID: n.RecipientID,
			Event:  "notification",
			Data: map[string]any{
				"id":      n.ID,
				"type":    n.Type,
				"title":   n.Title,
				"message": n.Message,
			},
		})
	}
}

// resolveRecipients expands the scope into concrete user ids, dropping the
// excluded user and duplicates.
func (s *NotificationService) resolveRecipients(ctx context.Context, req notification.NotifyRequest) ([]string, error) {
	var ids []string
	var err error

	switch req.Scope {
	case notification.ScopeDepartmentManagers:
		for _, departmentID := range req.TargetIDs {
			var managers []string
			managers, err = s.userRepo.GetDepartmentManagerIDs(ctx, departmentID)
			if err != nil {
				return nil, err
			}
			ids = append(ids, managers...)
		}
	case notification.ScopeSubDepartmentLeads:
		for _, subDepartmentID := range req.TargetIDs {
			var leads []string
			leads, err = s.userRepo.GetSubDepartmentLeadIDs(ctx, subDepartmentID)
			if err != nil {
				return nil, err
			}
			ids = append(ids, leads...)
		}
	case notification.ScopeHRDirectors:
		ids, err = s.userRepo.GetHRDirectorIDs(ctx)
		if err != nil {
			return nil, err
		}
	default:
		ids = req.TargetIDs
	}

	seen := make(map[string]struct{}, len(ids))
	recipients := make([]string, 0, len(ids))
	for _, id := range ids {
		if req.ExcludeUserID != nil && id == *req.ExcludeUserID {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		recipients = append(recipients, id)
	}

	return recipients, nil
}
