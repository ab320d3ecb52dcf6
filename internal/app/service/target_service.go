package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/ikkim/recipe-box/internal/app/model"
	"github.com/ikkim/recipe-box/internal/app/repository"
	"github.com/ikkim/recipe-box/internal/metrics"
	"github.com/ikkim/recipe-box/pkg/logger"
)

type TargetService interface {
	LoadGroups() ([]model.TargetGroupView, error)
	SaveGroups(ctx context.Context, groups []model.TargetGroup) error
}

type targetService struct {
	targetRepo    repository.TargetRepository
	reloadURL     string
	reloadTimeout time.Duration
	httpClient    *http.Client
}

func NewTargetService(targetRepo repository.TargetRepository, reloadURL string, reloadTimeout time.Duration) TargetService {
	return &targetService{
		targetRepo:    targetRepo,
		reloadURL:     reloadURL,
		reloadTimeout: reloadTimeout,
		httpClient:    &http.Client{Timeout: reloadTimeout},
	}
}

// LoadGroups 타겟 그룹 조회
func (s *targetService) LoadGroups() ([]model.TargetGroupView, error) {
	entries, err := s.targetRepo.Load()
	if err != nil {
		return nil, err
	}

	groups := make([]model.TargetGroupView, 0, len(entries))
	for _, entry := range entries {
		name := entry.Labels.Group
		if name == "" {
			name = entry.Group
		}
		targets := entry.Targets
		if targets == nil {
			targets = []string{}
		}
		groups = append(groups, model.TargetGroupView{Name: name, Targets: targets})
	}
	return groups, nil
}

// BuildTargetEntries drops groups without a name field and blank targets;
// groups left without targets are dropped as well.
func BuildTargetEntries(groups []model.TargetGroup) []model.TargetFileEntry {
	entries := make([]model.TargetFileEntry, 0, len(groups))
	for _, g := range groups {
		if g.Group == nil || g.Targets == nil {
			continue
		}
		targets := make([]string, 0, len(g.Targets))
		for _, t := range g.Targets {
			if strings.TrimSpace(t) != "" {
				targets = append(targets, t)
			}
		}
		if len(targets) == 0 {
			continue
		}
		entries = append(entries, model.TargetFileEntry{
			Labels:  model.TargetLabels{Job: model.BlackboxJob, Group: *g.Group},
			Targets: targets,
		})
	}
	return entries
}

// SaveGroups 타겟 파일 저장 후 Prometheus reload 요청
func (s *targetService) SaveGroups(ctx context.Context, groups []model.TargetGroup) error {
	entries := BuildTargetEntries(groups)
	if err := s.targetRepo.Save(entries); err != nil {
		logger.Error("Failed to save targets", err, nil)
		return err
	}

	logger.Info("Targets saved", map[string]interface{}{
		"groups": len(entries),
	})
	s.reload(ctx)
	return nil
}

// reload asks Prometheus to re-read its configuration. The outcome is only logged.
func (s *targetService) reload(ctx context.Context) {
	if s.reloadURL == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.reloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.reloadURL, nil)
	if err != nil {
		metrics.TargetReloads.WithLabelValues("error").Inc()
		logger.Warn("Failed to build Prometheus reload request", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		metrics.TargetReloads.WithLabelValues("error").Inc()
		logger.Warn("Prometheus reload failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	resp.Body.Close()

	outcome := "ok"
	if resp.StatusCode >= 300 {
		outcome = "bad_status"
	}
	metrics.TargetReloads.WithLabelValues(outcome).Inc()
	logger.Info("Prometheus reload requested", map[string]interface{}{
		"status": resp.StatusCode,
	})
}
