package pdf

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"maidlink/internal/signing"
	"maidlink/pkg/types"

	"github.com/go-pdf/fpdf"
)

// CaseData bundles everything a rendered case document can draw on. Only
// the sub-document matching the requested DocType needs to be populated.
type CaseData struct {
	Doc      *types.EmployerDoc
	Agency   *types.Agency
	Employer *types.Employer
	Maid     *types.Maid

	ServiceFee         *types.ServiceFee
	ServiceAgreement   *types.ServiceAgreement
	EmploymentContract *types.EmploymentContract

	Signature *types.DocSignature
}

// Render writes the requested case document as a PDF. Every page carries
// the case reference and the doc version so a stale printout is
// identifiable at a glance.
func Render(w io.Writer, docType types.DocType, data CaseData) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(docType.Filename(), false)
	doc.AddPage()

	renderHeader(doc, docType, data)

	switch docType {
	case types.DocTypeServiceFee:
		renderServiceFee(doc, data.ServiceFee)
		renderSignatureBlocks(doc, data.Signature, types.RoleEmployer)
	case types.DocTypeServiceAgreement:
		renderServiceAgreement(doc, data.ServiceAgreement)
		renderSignatureBlocks(doc, data.Signature, types.RoleEmployer, types.RoleSpouse, types.RoleSponsor)
	case types.DocTypeEmploymentContract:
		renderEmploymentContract(doc, data.EmploymentContract)
		renderSignatureBlocks(doc, data.Signature, types.RoleEmployer, types.RoleFDW)
	default:
		return fmt.Errorf("unknown doc type %q", docType)
	}

	renderWitness(doc, data.Signature)

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("failed to render %s: %w", docType, err)
	}

	return nil
}

var docTitles = map[types.DocType]string{
	types.DocTypeServiceFee:         "Schedule of Service Fees",
	types.DocTypeServiceAgreement:   "Service Agreement",
	types.DocTypeEmploymentContract: "Employment Contract",
}

func renderHeader(doc *fpdf.Fpdf, docType types.DocType, data CaseData) {
	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, data.Agency.Name, "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 9)
	doc.CellFormat(0, 5, fmt.Sprintf("EA Licence No. %s", data.Agency.LicenseNo), "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 8, docTitles[docType], "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 9)
	doc.CellFormat(0, 5, fmt.Sprintf("Case %s, version %d", data.Doc.CaseRef, data.Doc.VersionNumber), "", 1, "C", false, 0, "")
	doc.Ln(6)

	labelRow(doc, "Employer", data.Employer.Name)
	labelRow(doc, "Helper", fmt.Sprintf("%s (%s)", data.Maid.Name, data.Maid.ReferenceNumber))
	doc.Ln(4)
}

func renderServiceFee(doc *fpdf.Fpdf, fee *types.ServiceFee) {
	moneyRow(doc, "Placement fee", fee.PlacementFeeCents)
	moneyRow(doc, "Deposit", fee.DepositCents)
	moneyRow(doc, "Fee per replacement", fee.PerReplacementCents)
	remarksRow(doc, fee.Remarks)
}

func renderServiceAgreement(doc *fpdf.Fpdf, agreement *types.ServiceAgreement) {
	labelRow(doc, "Agreement duration", fmt.Sprintf("%d months", agreement.DurationMonths))
	labelRow(doc, "Notice period", fmt.Sprintf("%d days", agreement.NoticeDays))
	labelRow(doc, "Replacements included", fmt.Sprintf("%d", agreement.ReplacementCount))
	remarksRow(doc, agreement.Remarks)
}

func renderEmploymentContract(doc *fpdf.Fpdf, contract *types.EmploymentContract) {
	moneyRow(doc, "Monthly salary", contract.SalaryCents)
	labelRow(doc, "Rest days per month", fmt.Sprintf("%d", contract.DaysOffMonthly))
	labelRow(doc, "Probation period", fmt.Sprintf("%d days", contract.ProbationDays))
	remarksRow(doc, contract.Remarks)
}

var roleTitles = map[types.SignerRole]string{
	types.RoleEmployer: "Employer",
	types.RoleSpouse:   "Spouse of Employer",
	types.RoleSponsor:  "Sponsor",
	types.RoleFDW:      "Foreign Domestic Worker",
}

func renderSignatureBlocks(doc *fpdf.Fpdf, sig *types.DocSignature, roles ...types.SignerRole) {
	doc.Ln(8)
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 7, "Signatures", "B", 1, "L", false, 0, "")
	doc.Ln(2)

	for _, role := range roles {
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(60, 6, roleTitles[role], "", 0, "L", false, 0, "")

		var image *string
		var signedAt *time.Time
		if sig != nil {
			image = sig.Signature(role)
			switch role {
			case types.RoleEmployer:
				signedAt = sig.EmployerSignedAt
			case types.RoleSpouse:
				signedAt = sig.SpouseSignedAt
			case types.RoleSponsor:
				signedAt = sig.SponsorSignedAt
			case types.RoleFDW:
				signedAt = sig.FDWSignedAt
			}
		}

		if image == nil {
			doc.SetFont("Helvetica", "I", 9)
			doc.CellFormat(0, 6, "not yet signed", "", 1, "L", false, 0, "")
			doc.Ln(2)
			continue
		}

		embedSignature(doc, string(role), *image)
		if signedAt != nil {
			doc.SetFont("Helvetica", "", 8)
			doc.CellFormat(0, 4, fmt.Sprintf("Signed %s", signedAt.Format("2 Jan 2006 15:04")), "", 1, "L", false, 0, "")
		}
		doc.Ln(2)
	}
}

// embedSignature draws the captured pad image at a fixed 50x20mm. A
// payload that fails to decode leaves a note instead of aborting the
// whole render.
func embedSignature(doc *fpdf.Fpdf, name, dataURI string) {
	raw, err := signing.DecodeSignaturePNG(dataURI)
	if err != nil {
		doc.SetFont("Helvetica", "I", 9)
		doc.CellFormat(0, 6, "signature image unavailable", "", 1, "L", false, 0, "")
		return
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(raw))
	x := doc.GetX()
	y := doc.GetY()
	doc.ImageOptions(name, x, y, 50, 20, false, opts, 0, "")
	doc.SetXY(x, y+22)
}

func renderWitness(doc *fpdf.Fpdf, sig *types.DocSignature) {
	if sig == nil || sig.WitnessName == nil {
		return
	}

	doc.Ln(4)
	doc.SetFont("Helvetica", "", 9)
	witness := *sig.WitnessName
	if sig.WitnessNRICLast4 != nil {
		witness = fmt.Sprintf("%s (NRIC ending %s)", witness, *sig.WitnessNRICLast4)
	}
	labelRow(doc, "Witnessed by", witness)
}

func labelRow(doc *fpdf.Fpdf, label, value string) {
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(60, 6, label, "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func moneyRow(doc *fpdf.Fpdf, label string, cents int) {
	labelRow(doc, label, fmt.Sprintf("S$%.2f", float64(cents)/100))
}

func remarksRow(doc *fpdf.Fpdf, remarks *string) {
	if remarks == nil || *remarks == "" {
		return
	}
	doc.Ln(2)
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(0, 6, "Remarks", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.MultiCell(0, 5, *remarks, "", "L", false)
}
