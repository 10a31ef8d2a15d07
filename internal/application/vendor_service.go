package application

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sanosuguru/carnival-corner/internal/domain/event"
	"github.com/sanosuguru/carnival-corner/internal/domain/vendor"
	"github.com/sanosuguru/carnival-corner/internal/pkg/logger"
	"github.com/sanosuguru/carnival-corner/internal/pkg/metrics"
)

type VendorService struct {
	vendorRepo vendor.Repository
	eventRepo  event.Repository
	snapshots  *SnapshotWriter
	notifier   *Notifier
	metrics    *metrics.Metrics
}

// NewVendorService は VendorService を作成する。snapshots, notifier, m は nil 可
func NewVendorService(vr vendor.Repository, er event.Repository, snapshots *SnapshotWriter, notifier *Notifier, m *metrics.Metrics) *VendorService {
	return &VendorService{vendorRepo: vr, eventRepo: er, snapshots: snapshots, notifier: notifier, metrics: m}
}

type RegisterVendorInput struct {
	EventID        int
	VendorName     string
	ContactPerson  string
	Email          string
	Phone          string
	StallType      string
	AdditionalInfo string
}

// RegisterVendor は保留中の出店申請を登録する
func (s *VendorService) RegisterVendor(ctx context.Context, input RegisterVendorInput) (*vendor.Application, error) {
	a := vendor.NewApplication(vendor.Details(input))
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if _, err := s.eventRepo.GetByID(ctx, input.EventID); err != nil {
		return nil, err
	}
	if err := s.vendorRepo.Append(ctx, a); err != nil {
		return nil, fmt.Errorf("ベンダー申請の保存に失敗: %w", err)
	}

	s.snapshots.SaveVendors(ctx, s.vendorRepo)
	s.record(vendor.StatusPending)
	s.notifier.VendorRegistered(ctx, a)
	logger.FromContext(ctx).Info("ベンダー申請を受付", zap.Int("application_id", a.ID), zap.Int("event_id", a.EventID))
	return a, nil
}

// ApproveVendor は申請を承認する
// 見つからなければ false を返し何も変更しない。承認済みの申請を再承認しても true を返す
func (s *VendorService) ApproveVendor(ctx context.Context, id int) (bool, error) {
	a, err := s.vendorRepo.Update(ctx, id, func(a *vendor.Application) error {
		a.Approve()
		return nil
	})
	if errors.Is(err, vendor.ErrApplicationNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	s.snapshots.SaveVendors(ctx, s.vendorRepo)
	s.record(vendor.StatusApproved)
	s.notifier.VendorApproved(ctx, a)
	logger.FromContext(ctx).Info("ベンダー申請を承認", zap.Int("application_id", id))
	return true, nil
}

func (s *VendorService) GetVendor(ctx context.Context, id int) (*vendor.Application, error) {
	return s.vendorRepo.GetByID(ctx, id)
}

func (s *VendorService) ListVendors(ctx context.Context) ([]*vendor.Application, error) {
	return s.vendorRepo.List(ctx)
}

func (s *VendorService) record(status vendor.Status) {
	if s.metrics != nil {
		s.metrics.VendorApplicationsTotal.WithLabelValues(string(status)).Inc()
	}
}
