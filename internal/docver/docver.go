// Package docver decides when an update to a case sub-document corrupts
// previously generated legal artifacts. Each sub-document carries an
// explicit strict-field list; changing any strict field on an existing
// record bumps the version number of every EmployerDoc that references it.
package docver

import (
	"maidlink/internal/utils"
	"maidlink/pkg/types"
)

// Strict-field sets per sub-document, by db column name. Anything listed
// here is legally material: a change invalidates already-produced PDFs
// and collected signatures.
var (
	ServiceFeeStrictFields = []string{
		"placement_fee_cents",
		"deposit_cents",
		"per_replacement_cents",
	}

	ServiceAgreementStrictFields = []string{
		"duration_months",
		"notice_days",
		"replacement_count",
	}

	EmploymentContractStrictFields = []string{
		"salary_cents",
		"days_off_monthly",
		"probation_days",
	}
)

// ChangedStrict reports whether any changed column is in the strict set.
func ChangedStrict(changed, strict []string) bool {
	strictSet := make(map[string]bool, len(strict))
	for _, column := range strict {
		strictSet[column] = true
	}

	for _, column := range changed {
		if strictSet[column] {
			return true
		}
	}

	return false
}

// ServiceFeeNeedsBump diffs old against new and reports whether the
// update must bump the referencing documents' version.
func ServiceFeeNeedsBump(old, new *types.ServiceFee) bool {
	return ChangedStrict(utils.StructDiff(old, new), ServiceFeeStrictFields)
}

func ServiceAgreementNeedsBump(old, new *types.ServiceAgreement) bool {
	return ChangedStrict(utils.StructDiff(old, new), ServiceAgreementStrictFields)
}

func EmploymentContractNeedsBump(old, new *types.EmploymentContract) bool {
	return ChangedStrict(utils.StructDiff(old, new), EmploymentContractStrictFields)
}
