package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateNRIC(t *testing.T) {
	for _, v := range []string{"S1234567D", "T0000001A", "F7654321X", "G1111111K", "M2345678J", " s1234567d "} {
		assert.NoError(t, ValidateNRIC(v), v)
	}

	for _, v := range []string{"", "S123456D", "S12345678D", "A1234567D", "S1234567d8", "12345678"} {
		assert.Error(t, ValidateNRIC(v), v)
	}
}

func TestValidatePassportNumber(t *testing.T) {
	for _, v := range []string{"E1234567", "AB123456", "X123456789"} {
		assert.NoError(t, ValidatePassportNumber(v), v)
	}

	for _, v := range []string{"", "E123", "E12345678901234", "e 123456!"} {
		assert.Error(t, ValidatePassportNumber(v), v)
	}
}

func TestValidateMobileNumber(t *testing.T) {
	for _, v := range []string{"91234567", "81234567"} {
		assert.NoError(t, ValidateMobileNumber(v), v)
	}

	for _, v := range []string{"", "71234567", "9123456", "912345678", "9123456a"} {
		assert.Error(t, ValidateMobileNumber(v), v)
	}
}
