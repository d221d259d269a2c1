package docver

import (
	"testing"

	"maidlink/internal/utils"
	"maidlink/pkg/types"

	"github.com/stretchr/testify/assert"
)

func baseFee() *types.ServiceFee {
	return &types.ServiceFee{
		ID:                  "fee-1",
		EmployerDocID:       "doc-1",
		PlacementFeeCents:   120000,
		DepositCents:        50000,
		PerReplacementCents: 30000,
		Remarks:             utils.StringPtr("initial schedule"),
	}
}

func TestServiceFee_StrictChangeNeedsBump(t *testing.T) {
	old := baseFee()

	updated := baseFee()
	updated.PlacementFeeCents = 150000

	assert.True(t, ServiceFeeNeedsBump(old, updated))
}

func TestServiceFee_NonStrictChangeNoBump(t *testing.T) {
	old := baseFee()

	updated := baseFee()
	updated.Remarks = utils.StringPtr("typo fixed")

	assert.False(t, ServiceFeeNeedsBump(old, updated))
}

func TestServiceFee_NoChangeNoBump(t *testing.T) {
	assert.False(t, ServiceFeeNeedsBump(baseFee(), baseFee()))
}

func TestServiceAgreement_StrictChangeNeedsBump(t *testing.T) {
	old := &types.ServiceAgreement{DurationMonths: 24, NoticeDays: 14, ReplacementCount: 2}

	updated := *old
	updated.ReplacementCount = 3

	assert.True(t, ServiceAgreementNeedsBump(old, &updated))
}

func TestEmploymentContract_MixedChange(t *testing.T) {
	old := &types.EmploymentContract{
		SalaryCents:    60000,
		DaysOffMonthly: 4,
		ProbationDays:  90,
		Remarks:        utils.StringPtr(""),
	}

	// A strict change alongside a non-strict one still bumps.
	updated := *old
	updated.SalaryCents = 65000
	updated.Remarks = utils.StringPtr("salary revised")

	assert.True(t, EmploymentContractNeedsBump(old, &updated))
}

func TestChangedStrict(t *testing.T) {
	strict := []string{"a", "b"}

	assert.True(t, ChangedStrict([]string{"c", "b"}, strict))
	assert.False(t, ChangedStrict([]string{"c", "d"}, strict))
	assert.False(t, ChangedStrict(nil, strict))
	assert.False(t, ChangedStrict([]string{"a"}, nil))
}
