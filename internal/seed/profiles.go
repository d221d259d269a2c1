package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"maidlink/internal/crypto"
	"maidlink/internal/store"
	"maidlink/pkg/types"

	"github.com/k0kubun/pp/v3"
)

type fakeMaidSeed struct {
	ID              string
	ReferenceNumber string
	Name            string
	Country         string
	Passport        string
	DateOfBirth     string
	MaidType        types.MaidType
	SalaryCents     int
	DaysOff         int
	AboutMe         string
}

var fakeMaids = []fakeMaidSeed{
	{ID: "seedmaid01seedmaid01seedmaid0101", ReferenceNumber: "SH-001", Name: "Dewi Lestari", Country: "Indonesia", Passport: "C7654321", DateOfBirth: "1994-03-12", MaidType: types.MaidTypeNew, SalaryCents: 60000, DaysOff: 4, AboutMe: "Experienced with infant care and cooking."},
	{ID: "seedmaid02seedmaid02seedmaid0202", ReferenceNumber: "SH-002", Name: "Maria Santos", Country: "Philippines", Passport: "P1234567", DateOfBirth: "1990-11-02", MaidType: types.MaidTypeTransfer, SalaryCents: 65000, DaysOff: 4, AboutMe: "Six years in Singapore, strong with elderly care."},
	{ID: "seedmaid03seedmaid03seedmaid0303", ReferenceNumber: "SH-003", Name: "Thiri Aung", Country: "Myanmar", Passport: "MD445566", DateOfBirth: "1997-07-25", MaidType: types.MaidTypeNew, SalaryCents: 55000, DaysOff: 2, AboutMe: "Quick learner, comfortable with pets."},
	{ID: "seedmaid04seedmaid04seedmaid0404", ReferenceNumber: "SH-004", Name: "Sri Wahyuni", Country: "Indonesia", Passport: "C1122334", DateOfBirth: "1992-01-30", MaidType: types.MaidTypeExperienced, SalaryCents: 70000, DaysOff: 4, AboutMe: "Former nurse aide, CPR certified."},
}

// Profiles seeds the demo agency's helpers and one employer, with the PII
// fields sealed through the same codec the app uses.
func Profiles(ctx context.Context, codec *crypto.Codec, maidRepo *store.MaidRepository, employerRepo *store.EmployerRepository) error {
	seeded := 0
	for _, fake := range fakeMaids {
		_, err := maidRepo.Maid(ctx, fake.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, types.ErrMaidNotFound) {
			return fmt.Errorf("failed to check seed maid %s: %w", fake.ID, err)
		}

		dob, err := time.Parse("2006-01-02", fake.DateOfBirth)
		if err != nil {
			return fmt.Errorf("bad seed date of birth for %s: %w", fake.ReferenceNumber, err)
		}

		sealed, err := codec.Seal(fake.Passport)
		if err != nil {
			return fmt.Errorf("failed to seal seed passport for %s: %w", fake.ReferenceNumber, err)
		}

		about := fake.AboutMe
		maid := &types.Maid{
			ID:              fake.ID,
			AgencyID:        DemoAgencyID,
			ReferenceNumber: fake.ReferenceNumber,
			Name:            fake.Name,
			CountryOfOrigin: fake.Country,
			DateOfBirth:     dob,
			MaidType:        fake.MaidType,
			SalaryCents:     fake.SalaryCents,
			DaysOff:         fake.DaysOff,
			AboutMe:         &about,
			Published:       true,
		}
		maid.SetPassport(sealed)

		if err := maidRepo.CreateMaid(ctx, maid); err != nil {
			return fmt.Errorf("failed to create seed maid %s: %w", fake.ReferenceNumber, err)
		}

		pp.Println(maid.ReferenceNumber, maid.Name, maid.MaidType)
		seeded++
	}

	fmt.Printf("Helpers seeded: %d created\n", seeded)

	return seedDemoEmployer(ctx, codec, employerRepo)
}

func seedDemoEmployer(ctx context.Context, codec *crypto.Codec, employerRepo *store.EmployerRepository) error {
	_, err := employerRepo.Employer(ctx, DemoAgencyID, demoEmployerID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, types.ErrEmployerNotFound) {
		return fmt.Errorf("failed to check demo employer: %w", err)
	}

	sealed, err := codec.Seal("S1234567D")
	if err != nil {
		return fmt.Errorf("failed to seal demo employer nric: %w", err)
	}

	employer := &types.Employer{
		ID:           demoEmployerID,
		AgencyID:     DemoAgencyID,
		Name:         "Tan Wei Ming",
		Email:        "weiming.tan@example.com",
		MobileNumber: "91234567",
		Address:      "Blk 123 Tampines St 45, #10-67",
	}
	employer.SetNRIC(sealed)

	if err := employerRepo.CreateEmployer(ctx, employer); err != nil {
		return fmt.Errorf("failed to create demo employer: %w", err)
	}

	fmt.Println("Demo employer seeded")
	return nil
}
