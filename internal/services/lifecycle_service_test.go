package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"referralbridge/internal/events"
	"referralbridge/internal/models"
	"referralbridge/pkg/logger"
)

func newLifecycle(revoke bool) (LifecycleService, *mockReferralRepo, *mockPublisher) {
	referrals := &mockReferralRepo{}
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	svc := NewLifecycleService("woocommerce", referrals, &stubSettings{revoke: revoke}, pub, logger.NewNop())
	return svc, referrals, pub
}

func TestCompleteRequestsPaid(t *testing.T) {
	svc, referrals, pub := newLifecycle(false)
	referrals.On("SetStatusByReference", mock.Anything, "1042", "woocommerce", models.ReferralStatusPaid).Return(true, nil)

	assert.NoError(t, svc.Complete(context.Background(), "1042"))
	referrals.AssertExpectations(t)
	pub.AssertNumberOfCalls(t, "Publish", 1)
}

func TestCompleteIsNotGuarded(t *testing.T) {
	svc, referrals, _ := newLifecycle(false)
	referrals.On("SetStatusByReference", mock.Anything, "1042", "woocommerce", models.ReferralStatusPaid).Return(true, nil).Once()
	referrals.On("SetStatusByReference", mock.Anything, "1042", "woocommerce", models.ReferralStatusPaid).Return(false, nil).Once()

	assert.NoError(t, svc.Complete(context.Background(), "1042"))
	assert.NoError(t, svc.Complete(context.Background(), "1042"))
	referrals.AssertNumberOfCalls(t, "SetStatusByReference", 2)
}

func TestRejectDisabledIsNoop(t *testing.T) {
	svc, referrals, pub := newLifecycle(false)

	assert.NoError(t, svc.Reject(context.Background(), "1042"))
	referrals.AssertNotCalled(t, "SetStatusByReference", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestRejectEnabledRequestsRejectedEveryTime(t *testing.T) {
	svc, referrals, _ := newLifecycle(true)
	referrals.On("SetStatusByReference", mock.Anything, "1042", "woocommerce", models.ReferralStatusRejected).Return(true, nil)

	assert.NoError(t, svc.Reject(context.Background(), "1042"))
	assert.NoError(t, svc.Reject(context.Background(), "1042"))
	referrals.AssertNumberOfCalls(t, "SetStatusByReference", 2)
}

func TestLifecycleReturnsStoreErrors(t *testing.T) {
	svc, referrals, pub := newLifecycle(true)
	referrals.On("SetStatusByReference", mock.Anything, "1042", "woocommerce", models.ReferralStatusRejected).Return(false, errors.New("timeout"))

	assert.Error(t, svc.Reject(context.Background(), "1042"))
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

type recordingOriginator struct {
	calls []string
}

func (r *recordingOriginator) AddPendingReferral(ctx context.Context, orderID string, tracking models.Tracking) *OriginationResult {
	r.calls = append(r.calls, orderID+"|"+tracking.VisitToken)
	return &OriginationResult{Outcome: OutcomeNotReferred}
}

func TestRegisterReferralHandlers(t *testing.T) {
	ctx := context.Background()

	t.Run("completed and processing issue the same request", func(t *testing.T) {
		svc, referrals, _ := newLifecycle(false)
		referrals.On("SetStatusByReference", mock.Anything, "1042", "woocommerce", models.ReferralStatusPaid).Return(true, nil)
		d := events.NewDispatcher()
		RegisterReferralHandlers(d, &recordingOriginator{}, svc)

		assert.NoError(t, d.Dispatch(ctx, events.Envelope{Event: events.StatusCompleted, OrderID: "1042"}))
		assert.NoError(t, d.Dispatch(ctx, events.Envelope{Event: events.StatusProcessing, OrderID: "1042"}))

		referrals.AssertNumberOfCalls(t, "SetStatusByReference", 2)
		first, second := referrals.Calls[0].Arguments, referrals.Calls[1].Arguments
		assert.Equal(t, first[1:], second[1:])
	})

	t.Run("refund and cancel transitions are no-ops without revoke", func(t *testing.T) {
		svc, referrals, _ := newLifecycle(false)
		d := events.NewDispatcher()
		RegisterReferralHandlers(d, &recordingOriginator{}, svc)

		for _, event := range rejectOn {
			assert.True(t, d.Handles(event), event.String())
			assert.NoError(t, d.Dispatch(ctx, events.Envelope{Event: event, OrderID: "1042"}))
		}
		referrals.AssertNotCalled(t, "SetStatusByReference", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("refund and cancel transitions reject with revoke", func(t *testing.T) {
		svc, referrals, _ := newLifecycle(true)
		referrals.On("SetStatusByReference", mock.Anything, "1042", "woocommerce", models.ReferralStatusRejected).Return(true, nil)
		d := events.NewDispatcher()
		RegisterReferralHandlers(d, &recordingOriginator{}, svc)

		for _, event := range rejectOn {
			assert.NoError(t, d.Dispatch(ctx, events.Envelope{Event: event, OrderID: "1042"}))
		}
		referrals.AssertNumberOfCalls(t, "SetStatusByReference", len(rejectOn))
	})

	t.Run("order created reaches the originator", func(t *testing.T) {
		svc, _, _ := newLifecycle(false)
		originator := &recordingOriginator{}
		d := events.NewDispatcher()
		RegisterReferralHandlers(d, originator, svc)

		assert.NoError(t, d.Dispatch(ctx, events.Envelope{
			Event:    events.OrderCreated,
			OrderID:  "1042",
			Tracking: models.Tracking{VisitToken: "tok"},
		}))
		assert.Equal(t, []string{"1042|tok"}, originator.calls)
	})
}
