package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"maidlink/internal/pdf"
	"maidlink/pkg/types"

	"github.com/alexedwards/flow"
)

// handleDocPDF renders one of the case documents. The download filename is
// fixed per document type regardless of case.
func (s *Service) handleDocPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	staff, err := s.currentStaff(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to resolve staff")
		s.redirectToLogin(w, r)
		return
	}

	docType := types.DocType(flow.Param(ctx, "doctype"))
	if !docType.Valid() {
		http.NotFound(w, r)
		return
	}

	doc, err := s.docRepo.Doc(ctx, staff.AgencyID, flow.Param(ctx, "id"))
	if err != nil {
		s.logger.WithError(err).Info("doc not found")
		http.NotFound(w, r)
		return
	}

	agency, err := s.agencyRepo.Agency(ctx, staff.AgencyID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch agency")
		s.internalServerError(w)
		return
	}

	employer, err := s.employerRepo.Employer(ctx, staff.AgencyID, doc.EmployerID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch doc employer")
		s.internalServerError(w)
		return
	}

	maid, err := s.maidRepo.AgencyMaid(ctx, staff.AgencyID, doc.MaidID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch doc maid")
		s.internalServerError(w)
		return
	}

	caseData := pdf.CaseData{
		Doc:      doc,
		Agency:   agency,
		Employer: employer,
		Maid:     maid,
	}

	switch docType {
	case types.DocTypeServiceFee:
		caseData.ServiceFee, err = s.docRepo.ServiceFee(ctx, doc.ID)
	case types.DocTypeServiceAgreement:
		caseData.ServiceAgreement, err = s.docRepo.ServiceAgreement(ctx, doc.ID)
	case types.DocTypeEmploymentContract:
		caseData.EmploymentContract, err = s.docRepo.EmploymentContract(ctx, doc.ID)
	}
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch sub-document for pdf")
		s.internalServerError(w)
		return
	}

	sig, err := s.sigRepo.SignatureByDoc(ctx, doc.ID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch signature record for pdf")
		s.internalServerError(w)
		return
	}
	caseData.Signature = sig

	var buf bytes.Buffer
	if err := pdf.Render(&buf, docType, caseData); err != nil {
		s.logger.WithError(err).Error("failed to render pdf")
		s.internalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", docType.Filename()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))

	if _, err := buf.WriteTo(w); err != nil {
		s.logger.WithError(err).Debug("failed to stream pdf")
	}
}
