package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"maidlink/internal/store"
	"maidlink/pkg/types"
)

// Fixed ids keep the seed idempotent across runs.
const (
	DemoAgencyID   = "demoagencydemoagencydemoagency01"
	demoEmployerID = "demoemployerdemoemployerdemoemp1"
)

func Agencies(ctx context.Context, agencyRepo *store.AgencyRepository, adRepo *store.AdvertisementRepository) error {
	_, err := agencyRepo.Agency(ctx, DemoAgencyID)
	if err == nil {
		fmt.Println("Demo agency already present, skipping")
		return nil
	}
	if !errors.Is(err, types.ErrAgencyNotFound) {
		return fmt.Errorf("failed to check demo agency: %w", err)
	}

	agency := &types.Agency{
		ID:        DemoAgencyID,
		Name:      "Sunrise Helpers Pte Ltd",
		LicenseNo: "23C1234",
		Email:     "owner@sunrisehelpers.example.com",
	}

	if err := agencyRepo.CreateAgency(ctx, agency); err != nil {
		return fmt.Errorf("failed to create demo agency: %w", err)
	}

	// Ads ride along with the first agency create, which keeps the whole
	// seed idempotent without an extra existence check.
	now := time.Now()
	ads := []*types.Advertisement{
		{
			ID:        "seedad01seedad01seedad01seedad01",
			AgencyID:  DemoAgencyID,
			Title:     "Trusted helpers, placed with care",
			TargetURL: "/browse",
			Placement: types.AdPlacementHome,
			StartsAt:  now,
			EndsAt:    now.AddDate(1, 0, 0),
		},
		{
			ID:        "seedad02seedad02seedad02seedad02",
			AgencyID:  DemoAgencyID,
			Title:     "New arrivals this month",
			TargetURL: "/browse?maid_type=NEW",
			Placement: types.AdPlacementBrowse,
			StartsAt:  now,
			EndsAt:    now.AddDate(1, 0, 0),
		},
	}

	for _, ad := range ads {
		if err := adRepo.CreateAdvertisement(ctx, ad); err != nil {
			return fmt.Errorf("failed to create demo advertisement: %w", err)
		}
	}

	fmt.Println("Demo agency seeded")
	return nil
}
