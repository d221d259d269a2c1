package server

import (
	"errors"
	"net/http"
	"strings"

	"maidlink/internal/docver"
	"maidlink/internal/signing"
	"maidlink/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleDocList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	staff, err := s.currentStaff(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to resolve staff")
		s.redirectToLogin(w, r)
		return
	}

	docs, err := s.docRepo.Docs(ctx, staff.AgencyID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch docs")
		s.internalServerError(w)
		return
	}

	data := &types.DocListPageData{
		BasePageData: types.BasePageData{Title: "Case Documents"},
		Docs:         docs,
		Notice:       r.URL.Query().Get("notice"),
		Error:        r.URL.Query().Get("error"),
	}

	if err := s.renderTemplate(w, r, "page.docs", data); err != nil {
		s.logger.WithError(err).Error("failed to render doc list")
		s.internalServerError(w)
	}
}

// handlePostNewDoc creates the case bundle at version 1 with zeroed
// sub-documents and a signature record carrying four fresh slugs.
func (s *Service) handlePostNewDoc(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	staff, err := s.currentStaff(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to resolve staff")
		s.redirectToLogin(w, r)
		return
	}

	employerID := strings.TrimSpace(r.FormValue("employer_id"))
	maidID := strings.TrimSpace(r.FormValue("maid_id"))
	caseRef := strings.TrimSpace(r.FormValue("case_ref"))

	if employerID == "" || maidID == "" || caseRef == "" {
		s.redirectWithError(w, r, "/docs", "Employer, helper and case reference are required.")
		return
	}

	// Both sides must belong to this agency.
	if _, err := s.employerRepo.Employer(ctx, staff.AgencyID, employerID); err != nil {
		s.redirectWithError(w, r, "/docs", "Unknown employer.")
		return
	}
	if _, err := s.maidRepo.AgencyMaid(ctx, staff.AgencyID, maidID); err != nil {
		s.redirectWithError(w, r, "/docs", "Unknown helper.")
		return
	}

	doc := &types.EmployerDoc{
		AgencyID:   staff.AgencyID,
		EmployerID: employerID,
		MaidID:     maidID,
		CaseRef:    caseRef,
	}

	if err := s.docRepo.CreateDoc(ctx, doc); err != nil {
		s.logger.WithError(err).Error("failed to create doc")
		s.internalServerError(w)
		return
	}

	if err := s.docRepo.CreateServiceFee(ctx, &types.ServiceFee{EmployerDocID: doc.ID}); err != nil {
		s.logger.WithError(err).Error("failed to create service fee record")
		s.internalServerError(w)
		return
	}
	if err := s.docRepo.CreateServiceAgreement(ctx, &types.ServiceAgreement{EmployerDocID: doc.ID}); err != nil {
		s.logger.WithError(err).Error("failed to create service agreement record")
		s.internalServerError(w)
		return
	}
	if err := s.docRepo.CreateEmploymentContract(ctx, &types.EmploymentContract{EmployerDocID: doc.ID}); err != nil {
		s.logger.WithError(err).Error("failed to create employment contract record")
		s.internalServerError(w)
		return
	}

	sig := &types.DocSignature{
		EmployerDocID: doc.ID,
		EmployerSlug:  signing.NewSlug(),
		SpouseSlug:    signing.NewSlug(),
		SponsorSlug:   signing.NewSlug(),
		FDWSlug:       signing.NewSlug(),
	}

	if err := s.sigRepo.CreateSignature(ctx, sig); err != nil {
		s.logger.WithError(err).Error("failed to create signature record")
		s.internalServerError(w)
		return
	}

	s.redirectWithNotice(w, r, "/docs/"+doc.ID, "Case created.")
}

func (s *Service) handleDocDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	staff, err := s.currentStaff(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to resolve staff")
		s.redirectToLogin(w, r)
		return
	}

	doc, err := s.docRepo.Doc(ctx, staff.AgencyID, flow.Param(ctx, "id"))
	if err != nil {
		s.logger.WithError(err).Info("doc not found")
		http.NotFound(w, r)
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

	fee, err := s.docRepo.ServiceFee(ctx, doc.ID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch service fee")
		s.internalServerError(w)
		return
	}

	agreement, err := s.docRepo.ServiceAgreement(ctx, doc.ID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch service agreement")
		s.internalServerError(w)
		return
	}

	contract, err := s.docRepo.EmploymentContract(ctx, doc.ID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch employment contract")
		s.internalServerError(w)
		return
	}

	sig, err := s.sigRepo.SignatureByDoc(ctx, doc.ID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch signature record")
		s.internalServerError(w)
		return
	}

	data := &types.DocDetailPageData{
		BasePageData: types.BasePageData{Title: "Case " + doc.CaseRef},
		Doc:          doc,
		Employer:     employer,
		Maid:         maid,
		Fee:          fee,
		Agreement:    agreement,
		Contract:     contract,
		Signature:    sig,
		Notice:       r.URL.Query().Get("notice"),
		Error:        r.URL.Query().Get("error"),
	}

	if err := s.renderTemplate(w, r, "page.doc.detail", data); err != nil {
		s.logger.WithError(err).Error("failed to render doc detail")
		s.internalServerError(w)
	}
}

// docForRequest loads the doc scoped to the caller's agency, for the
// sub-document form handlers.
func (s *Service) docForRequest(w http.ResponseWriter, r *http.Request) (*types.EmployerDoc, bool) {
	ctx := r.Context()

	staff, err := s.currentStaff(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to resolve staff")
		s.redirectToLogin(w, r)
		return nil, false
	}

	doc, err := s.docRepo.Doc(ctx, staff.AgencyID, flow.Param(ctx, "id"))
	if err != nil {
		if errors.Is(err, types.ErrDocumentNotFound) {
			http.NotFound(w, r)
		} else {
			s.logger.WithError(err).Error("failed to fetch doc")
			s.internalServerError(w)
		}
		return nil, false
	}

	return doc, true
}

func (s *Service) handleGetServiceFee(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.docForRequest(w, r)
	if !ok {
		return
	}

	fee, err := s.docRepo.ServiceFee(r.Context(), doc.ID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch service fee")
		s.internalServerError(w)
		return
	}

	data := &types.SubDocFormPageData{
		BasePageData: types.BasePageData{Title: "Service Fee Schedule"},
		Doc:          doc,
		Fee:          fee,
	}

	if err := s.renderTemplate(w, r, "page.doc.servicefee", data); err != nil {
		s.logger.WithError(err).Error("failed to render service fee form")
		s.internalServerError(w)
	}
}

func (s *Service) handlePostServiceFee(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.docForRequest(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	old, err := s.docRepo.ServiceFee(ctx, doc.ID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch service fee")
		s.internalServerError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/docs/"+doc.ID, "Invalid form submission.")
		return
	}

	updated := *old
	if err := decoder.Decode(&updated, r.PostForm); err != nil {
		s.logger.WithError(err).Info("failed to decode service fee form")
		s.redirectWithError(w, r, "/docs/"+doc.ID, "Invalid form submission.")
		return
	}
	normalizeRemarks(&updated.Remarks)

	bump := docver.ServiceFeeNeedsBump(old, &updated)

	if err := s.docRepo.UpdateServiceFee(ctx, &updated, bump); err != nil {
		s.logger.WithError(err).Error("failed to update service fee")
		s.internalServerError(w)
		return
	}

	s.redirectAfterSubDocSave(w, r, doc.ID, bump)
}

func (s *Service) handleGetServiceAgreement(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.docForRequest(w, r)
	if !ok {
		return
	}

	agreement, err := s.docRepo.ServiceAgreement(r.Context(), doc.ID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch service agreement")
		s.internalServerError(w)
		return
	}

	data := &types.SubDocFormPageData{
		BasePageData: types.BasePageData{Title: "Service Agreement"},
		Doc:          doc,
		Agreement:    agreement,
	}

	if err := s.renderTemplate(w, r, "page.doc.agreement", data); err != nil {
		s.logger.WithError(err).Error("failed to render service agreement form")
		s.internalServerError(w)
	}
}

func (s *Service) handlePostServiceAgreement(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.docForRequest(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	old, err := s.docRepo.ServiceAgreement(ctx, doc.ID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch service agreement")
		s.internalServerError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/docs/"+doc.ID, "Invalid form submission.")
		return
	}

	updated := *old
	if err := decoder.Decode(&updated, r.PostForm); err != nil {
		s.logger.WithError(err).Info("failed to decode service agreement form")
		s.redirectWithError(w, r, "/docs/"+doc.ID, "Invalid form submission.")
		return
	}
	normalizeRemarks(&updated.Remarks)

	bump := docver.ServiceAgreementNeedsBump(old, &updated)

	if err := s.docRepo.UpdateServiceAgreement(ctx, &updated, bump); err != nil {
		s.logger.WithError(err).Error("failed to update service agreement")
		s.internalServerError(w)
		return
	}

	s.redirectAfterSubDocSave(w, r, doc.ID, bump)
}

func (s *Service) handleGetEmploymentContract(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.docForRequest(w, r)
	if !ok {
		return
	}

	contract, err := s.docRepo.EmploymentContract(r.Context(), doc.ID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch employment contract")
		s.internalServerError(w)
		return
	}

	data := &types.SubDocFormPageData{
		BasePageData: types.BasePageData{Title: "Employment Contract"},
		Doc:          doc,
		Contract:     contract,
	}

	if err := s.renderTemplate(w, r, "page.doc.contract", data); err != nil {
		s.logger.WithError(err).Error("failed to render employment contract form")
		s.internalServerError(w)
	}
}

func (s *Service) handlePostEmploymentContract(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.docForRequest(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	old, err := s.docRepo.EmploymentContract(ctx, doc.ID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch employment contract")
		s.internalServerError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/docs/"+doc.ID, "Invalid form submission.")
		return
	}

	updated := *old
	if err := decoder.Decode(&updated, r.PostForm); err != nil {
		s.logger.WithError(err).Info("failed to decode employment contract form")
		s.redirectWithError(w, r, "/docs/"+doc.ID, "Invalid form submission.")
		return
	}
	normalizeRemarks(&updated.Remarks)

	bump := docver.EmploymentContractNeedsBump(old, &updated)

	if err := s.docRepo.UpdateEmploymentContract(ctx, &updated, bump); err != nil {
		s.logger.WithError(err).Error("failed to update employment contract")
		s.internalServerError(w)
		return
	}

	s.redirectAfterSubDocSave(w, r, doc.ID, bump)
}

func (s *Service) redirectAfterSubDocSave(w http.ResponseWriter, r *http.Request, docID string, bumped bool) {
	notice := "Saved."
	if bumped {
		notice = "Saved. Document version bumped; previously issued copies are stale."
	}
	s.redirectWithNotice(w, r, "/docs/"+docID, notice)
}

// handlePostDocStatus moves a case between DRAFT, ACTIVE and ARCHIVED.
func (s *Service) handlePostDocStatus(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.docForRequest(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	status := types.DocStatus(strings.ToUpper(strings.TrimSpace(r.FormValue("status"))))
	switch status {
	case types.DocStatusDraft, types.DocStatusActive, types.DocStatusArchived:
	default:
		s.redirectWithError(w, r, "/docs/"+doc.ID, "Unknown status.")
		return
	}

	if err := s.docRepo.SetDocStatus(ctx, doc.AgencyID, doc.ID, status); err != nil {
		s.logger.WithError(err).Error("failed to update doc status")
		s.internalServerError(w)
		return
	}

	s.redirectWithNotice(w, r, "/docs/"+doc.ID, "Case marked "+string(status)+".")
}

// handlePostRenewSlug regenerates a role's signing link. The old slug,
// any outstanding token and any captured signature for the role die
// immediately.
func (s *Service) handlePostRenewSlug(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.docForRequest(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	role := types.SignerRole(flow.Param(ctx, "role"))
	if !role.Valid() {
		http.NotFound(w, r)
		return
	}

	sig, err := s.sigRepo.SignatureByDoc(ctx, doc.ID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch signature record")
		s.internalServerError(w)
		return
	}

	if err := s.sigRepo.RenewSlug(ctx, sig.ID, role, signing.NewSlug()); err != nil {
		s.logger.WithError(err).Error("failed to renew signing slug")
		s.internalServerError(w)
		return
	}

	s.redirectWithNotice(w, r, "/docs/"+doc.ID, "New signing link issued. The old link no longer works.")
}

func normalizeRemarks(remarks **string) {
	if *remarks == nil {
		return
	}
	trimmed := strings.TrimSpace(**remarks)
	if trimmed == "" {
		*remarks = nil
		return
	}
	*remarks = &trimmed
}
