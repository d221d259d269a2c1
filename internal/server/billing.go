package server

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// handlePostSubscribe provisions the agency's Stripe customer and
// subscription. Safe to retry: an already-subscribed agency is a no-op.
func (s *Service) handlePostSubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	staff, err := s.currentStaff(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to resolve staff")
		s.redirectToLogin(w, r)
		return
	}

	agency, err := s.agencyRepo.Agency(ctx, staff.AgencyID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch agency")
		s.internalServerError(w)
		return
	}

	if agency.StripeSubscriptionID != nil {
		s.redirectWithNotice(w, r, "/docs", "Your agency already has an active subscription.")
		return
	}

	customerID, subscriptionID, err := s.billing.Subscribe(ctx, agency)
	if err != nil {
		s.logger.WithError(err).Error("failed to create subscription")
		s.redirectWithError(w, r, "/docs", "Unable to start your subscription. Please try again.")
		return
	}

	if err := s.agencyRepo.SetStripeIDs(ctx, agency.ID, customerID, subscriptionID); err != nil {
		s.logger.WithError(err).Error("failed to record stripe ids")
		s.internalServerError(w)
		return
	}

	s.logger.WithFields(logrus.Fields{
		"agency_id":       agency.ID,
		"subscription_id": subscriptionID,
	}).Info("agency subscribed")

	s.redirectWithNotice(w, r, "/docs", "Subscription started.")
}

// handlePostUnsubscribe cancels the agency's subscription immediately.
// The Stripe customer is kept so resubscribing reuses it on their side.
func (s *Service) handlePostUnsubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	staff, err := s.currentStaff(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to resolve staff")
		s.redirectToLogin(w, r)
		return
	}

	agency, err := s.agencyRepo.Agency(ctx, staff.AgencyID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch agency")
		s.internalServerError(w)
		return
	}

	if agency.StripeSubscriptionID == nil {
		s.redirectWithNotice(w, r, "/docs", "Your agency has no subscription to cancel.")
		return
	}

	if err := s.billing.CancelSubscription(ctx, *agency.StripeSubscriptionID); err != nil {
		s.logger.WithError(err).Error("failed to cancel subscription")
		s.redirectWithError(w, r, "/docs", "Unable to cancel your subscription. Please try again.")
		return
	}

	if err := s.agencyRepo.ClearStripeSubscription(ctx, agency.ID); err != nil {
		s.logger.WithError(err).Error("failed to clear stripe subscription id")
		s.internalServerError(w)
		return
	}

	s.logger.WithFields(logrus.Fields{
		"agency_id": agency.ID,
	}).Info("agency unsubscribed")

	s.redirectWithNotice(w, r, "/docs", "Subscription cancelled.")
}
