package application

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/carnival-corner/internal/domain/vendor"
	"github.com/sanosuguru/carnival-corner/internal/infrastructure/memory"
	"github.com/sanosuguru/carnival-corner/internal/infrastructure/rabbitmq"
	"github.com/sanosuguru/carnival-corner/internal/pkg/metrics"
)

func TestVendorService_RegisterAndApprove(t *testing.T) {
	ctx := context.Background()
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	publisher := new(MockPublisher)
	events := memory.NewEventRepository()
	e := newTestEvent(0)
	require.NoError(t, events.Create(ctx, e))
	svc := NewVendorService(memory.NewVendorRepository(), events, nil, NewNotifier(publisher), m)

	publisher.On("Publish", mock.Anything, rabbitmq.QueueVendorRegistered, mock.MatchedBy(func(msg VendorMessage) bool {
		return msg.Status == vendor.StatusPending && msg.VendorName == "Chai Corner"
	})).Return(nil).Once()
	publisher.On("Publish", mock.Anything, rabbitmq.QueueVendorApproved, mock.MatchedBy(func(msg VendorMessage) bool {
		return msg.Status == vendor.StatusApproved
	})).Return(nil).Once()

	a, err := svc.RegisterVendor(ctx, RegisterVendorInput{
		EventID:    e.ID,
		VendorName: " Chai Corner ",
		Email:      "chai@example.com",
		StallType:  "food",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, "Chai Corner", a.VendorName)

	ok, err := svc.ApproveVendor(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	publisher.AssertExpectations(t)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.VendorApplicationsTotal.WithLabelValues("pending")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.VendorApplicationsTotal.WithLabelValues("approved")))
}

func TestVendorService_RegisterVendor_Validation(t *testing.T) {
	svc := NewVendorService(memory.NewVendorRepository(), memory.NewEventRepository(), nil, nil, nil)

	_, err := svc.RegisterVendor(context.Background(), RegisterVendorInput{EventID: 1, Email: "x@example.com", StallType: "food"})
	assert.ErrorIs(t, err, vendor.ErrVendorNameRequired)

	_, err = svc.RegisterVendor(context.Background(), RegisterVendorInput{EventID: 1, VendorName: "x", Email: "x@example.com"})
	assert.ErrorIs(t, err, vendor.ErrStallTypeRequired)
}

func TestVendorService_GetVendor_NotFound(t *testing.T) {
	svc := NewVendorService(memory.NewVendorRepository(), memory.NewEventRepository(), nil, nil, nil)

	_, err := svc.GetVendor(context.Background(), 1)
	assert.ErrorIs(t, err, vendor.ErrApplicationNotFound)
}
