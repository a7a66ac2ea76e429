package subscription

import (
	"errors"
	"fmt"
	"time"

	"handimatch/models"
	"handimatch/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// Subscription errors.
var (
	ErrUnknownPlan = errors.New("unknown subscription plan")
	ErrNotArtisan  = errors.New("only artisans can subscribe")
	ErrUserMissing = errors.New("user not found")
)

// Plan prices in euro cents.
var planAmounts = map[string]int64{
	models.PlanBasic: 990,
	models.PlanPro:   2490,
}

const subscriptionPeriod = 30 * 24 * time.Hour

// Subscribe charges the plan price and activates a new subscription,
// deactivating any previous one.
func (s *DefaultSubscriptionService) Subscribe(in SubscribeInput) (*models.Subscription, error) {
	logger := utils.GetLogger().Named("subscription")

	amount, ok := planAmounts[in.Plan]
	if !ok {
		return nil, ErrUnknownPlan
	}

	u, err := s.Users.GetByID(in.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if u == nil {
		return nil, ErrUserMissing
	}
	if !u.IsArtisan() {
		return nil, ErrNotArtisan
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyEUR)),
		Metadata: map[string]string{
			"userId": in.UserID,
			"plan":   in.Plan,
		},
	}
	if in.PaymentMethod != "" {
		params.PaymentMethod = stripe.String(in.PaymentMethod)
		params.Confirm = stripe.Bool(true)
	}
	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("payment failed: %w", err)
	}

	if err := s.Records.DeactivateSubscriptions(in.UserID); err != nil {
		return nil, fmt.Errorf("failed to deactivate previous subscriptions: %w", err)
	}

	now := time.Now().UTC()
	sub := &models.Subscription{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		Plan:      in.Plan,
		Active:    true,
		PaymentID: intent.ID,
		Amount:    amount,
		Currency:  "eur",
		StartedAt: now,
		ExpiresAt: now.Add(subscriptionPeriod),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Records.CreateSubscription(sub); err != nil {
		return nil, fmt.Errorf("failed to store subscription: %w", err)
	}

	logger.Info("subscription activated",
		zap.String("userID", in.UserID),
		zap.String("plan", in.Plan),
		zap.String("paymentID", intent.ID))
	return sub, nil
}

// ActiveSubscription returns the user's current plan; nil when none.
func (s *DefaultSubscriptionService) ActiveSubscription(userID string) (*models.Subscription, error) {
	return s.Records.ActiveSubscription(userID)
}

// RecordTraining stores a completed training for an artisan.
func (s *DefaultSubscriptionService) RecordTraining(in TrainingInput) (*models.TrainingRecord, error) {
	u, err := s.Users.GetByID(in.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if u == nil {
		return nil, ErrUserMissing
	}
	if !u.IsArtisan() {
		return nil, ErrNotArtisan
	}

	now := time.Now().UTC()
	rec := &models.TrainingRecord{
		ID:          uuid.NewString(),
		UserID:      in.UserID,
		Title:       in.Title,
		Provider:    in.Provider,
		CompletedAt: &now,
		CreatedAt:   now,
	}
	if err := s.Records.CreateTraining(rec); err != nil {
		return nil, fmt.Errorf("failed to store training record: %w", err)
	}
	return rec, nil
}

// ListTraining returns the artisan's training records.
func (s *DefaultSubscriptionService) ListTraining(userID string) ([]models.TrainingRecord, error) {
	return s.Records.ListTraining(userID)
}
