package types

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	nricReg     = regexp.MustCompile(`^[STFGM][0-9]{7}[A-Z]$`)
	passportReg = regexp.MustCompile(`^[A-Z0-9]{6,12}$`)
	mobileReg   = regexp.MustCompile(`^[89][0-9]{7}$`)
)

// ValidateNRIC checks the NRIC/FIN format: prefix letter, seven digits,
// checksum letter. Format only; the registry checksum itself is not
// recomputed here.
func ValidateNRIC(v string) error {
	v = strings.ToUpper(strings.TrimSpace(v))
	if !nricReg.MatchString(v) {
		return fmt.Errorf("invalid NRIC/FIN format")
	}
	return nil
}

// ValidatePassportNumber checks the alphanumeric passport pattern and
// length bound shared by the supported source countries.
func ValidatePassportNumber(v string) error {
	v = strings.ToUpper(strings.TrimSpace(v))
	if !passportReg.MatchString(v) {
		return fmt.Errorf("invalid passport number format")
	}
	return nil
}

// ValidateMobileNumber checks a Singapore mobile number (8 digits,
// starting 8 or 9).
func ValidateMobileNumber(v string) error {
	if !mobileReg.MatchString(strings.TrimSpace(v)) {
		return fmt.Errorf("invalid mobile number")
	}
	return nil
}
