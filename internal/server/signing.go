package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"maidlink/internal/signing"
	"maidlink/pkg/types"

	"github.com/alexedwards/flow"
)

// signingContext resolves a slug to its signature record, role and the
// owning doc. A renewed slug matches nothing and 404s, which is the
// correct fate for a dead link.
func (s *Service) signingContext(w http.ResponseWriter, r *http.Request) (*types.DocSignature, types.SignerRole, *types.EmployerDoc, bool) {
	ctx := r.Context()
	slug := flow.Param(ctx, "slug")

	sig, role, err := s.sigRepo.SignatureBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, types.ErrSignatureNotFound) {
			http.NotFound(w, r)
		} else {
			s.logger.WithError(err).Error("failed to resolve signing slug")
			s.internalServerError(w)
		}
		return nil, "", nil, false
	}

	doc, err := s.docRepo.DocByID(ctx, sig.EmployerDocID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch doc for signing")
		s.internalServerError(w)
		return nil, "", nil, false
	}

	return sig, role, doc, true
}

// challengeForRole builds the identity challenge. Employer-side roles
// prove last-4 of the employer's NRIC/FIN plus the mobile number on file;
// the FDW proves last-4 of passport plus date of birth.
func (s *Service) challengeForRole(r *http.Request, doc *types.EmployerDoc, role types.SignerRole) (signing.Challenge, error) {
	ctx := r.Context()

	if role == types.RoleFDW {
		maid, err := s.maidRepo.Maid(ctx, doc.MaidID)
		if err != nil {
			return signing.Challenge{}, err
		}

		last4, err := s.codec.Partial(maid.Passport(), false)
		if err != nil {
			return signing.Challenge{}, err
		}

		return signing.Challenge{
			Last4:  last4,
			Answer: maid.DateOfBirth.Format("2006-01-02"),
		}, nil
	}

	employer, err := s.employerRepo.Employer(ctx, doc.AgencyID, doc.EmployerID)
	if err != nil {
		return signing.Challenge{}, err
	}

	last4, err := s.codec.Partial(employer.NRIC(), false)
	if err != nil {
		return signing.Challenge{}, err
	}

	return signing.Challenge{
		Last4:  last4,
		Answer: employer.MobileNumber,
	}, nil
}

func (s *Service) handleGetSignVerify(w http.ResponseWriter, r *http.Request) {
	sig, role, _, ok := s.signingContext(w, r)
	if !ok {
		return
	}

	if signing.RoleState(sig, role) == signing.StateSigned {
		http.Redirect(w, r, "/sign/"+sig.Slug(role)+"/complete", http.StatusSeeOther)
		return
	}

	data := &types.SignVerifyPageData{
		BasePageData: types.BasePageData{Title: "Verify Your Identity"},
		Slug:         sig.Slug(role),
		Role:         role,
	}

	if err := s.renderTemplate(w, r, "page.sign.verify", data); err != nil {
		s.logger.WithError(err).Error("failed to render sign verify page")
		s.internalServerError(w)
	}
}

func (s *Service) handlePostSignVerify(w http.ResponseWriter, r *http.Request) {
	sig, role, doc, ok := s.signingContext(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	challenge, err := s.challengeForRole(r, doc, role)
	if err != nil {
		s.logger.WithError(err).Error("failed to build identity challenge")
		s.internalServerError(w)
		return
	}

	last4 := r.FormValue("last4")
	answer := r.FormValue("answer")

	if err := challenge.Verify(last4, answer); err != nil {
		// One generic message for every failure mode; no field leakage.
		data := &types.SignVerifyPageData{
			BasePageData: types.BasePageData{Title: "Verify Your Identity"},
			Slug:         sig.Slug(role),
			Role:         role,
			Error:        "The details did not match our records. Please try again.",
		}

		w.WriteHeader(http.StatusUnauthorized)
		if err := s.renderTemplate(w, r, "page.sign.verify", data); err != nil {
			s.logger.WithError(err).Error("failed to render sign verify page with error")
		}
		return
	}

	token := signing.MintToken(time.Now())

	if err := s.sigRepo.SetToken(ctx, sig.ID, role, token.Value); err != nil {
		s.logger.WithError(err).Error("failed to persist verification token")
		s.internalServerError(w)
		return
	}

	if err := s.setSigningSession(w, sig.Slug(role), token); err != nil {
		s.logger.WithError(err).Error("failed to set signing session")
		s.internalServerError(w)
		return
	}

	http.Redirect(w, r, "/sign/"+sig.Slug(role)+"/signature", http.StatusSeeOther)
}

func (s *Service) handleGetSignCapture(w http.ResponseWriter, r *http.Request) {
	sig, role, _, ok := s.signingContext(w, r)
	if !ok {
		return
	}

	slug := sig.Slug(role)

	token, err := s.signingSessionFor(r, slug)
	if err != nil || token.Expired(time.Now()) {
		s.redirectWithError(w, r, "/sign/"+slug+"/verify", "Your session expired. Please verify again.")
		return
	}

	data := &types.SignCapturePageData{
		BasePageData: types.BasePageData{Title: "Sign Document"},
		Slug:         slug,
		Role:         role,
	}

	if err := s.renderTemplate(w, r, "page.sign.capture", data); err != nil {
		s.logger.WithError(err).Error("failed to render sign capture page")
		s.internalServerError(w)
	}
}

func (s *Service) handlePostSignCapture(w http.ResponseWriter, r *http.Request) {
	sig, role, _, ok := s.signingContext(w, r)
	if !ok {
		return
	}

	s.captureSignature(w, r, sig, role, nil)
}

// handlePostSignWitness captures a signature together with the witness
// details recorded on the signature record.
func (s *Service) handlePostSignWitness(w http.ResponseWriter, r *http.Request) {
	sig, role, _, ok := s.signingContext(w, r)
	if !ok {
		return
	}

	witnessName := strings.TrimSpace(r.FormValue("witness_name"))
	witnessNRICLast4 := strings.ToUpper(strings.TrimSpace(r.FormValue("witness_nric_last4")))

	if witnessName == "" || len(witnessNRICLast4) != 4 {
		s.renderCaptureError(w, r, sig.Slug(role), role, "Witness name and the last 4 characters of their NRIC are required.")
		return
	}

	s.captureSignature(w, r, sig, role, func(sigID string) error {
		return s.sigRepo.SetWitness(r.Context(), sigID, witnessName, witnessNRICLast4)
	})
}

func (s *Service) captureSignature(w http.ResponseWriter, r *http.Request, sig *types.DocSignature, role types.SignerRole, afterSave func(sigID string) error) {
	ctx := r.Context()
	slug := sig.Slug(role)
	now := time.Now()

	token, err := s.signingSessionFor(r, slug)
	if err != nil {
		s.redirectWithError(w, r, "/sign/"+slug+"/verify", "Your session expired. Please verify again.")
		return
	}

	// The session token must match the one on the record: consumed,
	// replaced and renewed-away tokens all fail here.
	if err := signing.CheckToken(sig.Token(role), token, now); err != nil {
		s.logger.WithError(err).Info("signing token rejected")
		s.clearSigningSession(w)
		s.redirectWithError(w, r, "/sign/"+slug+"/verify", "Your session expired. Please verify again.")
		return
	}

	image := r.FormValue("signature")
	if err := signing.ValidateSignatureImage(image); err != nil {
		message := "We could not read your signature. Please try again."
		if errors.Is(err, signing.ErrBlankSignature) {
			message = "Please sign in the box before submitting."
		}
		s.renderCaptureError(w, r, slug, role, message)
		return
	}

	if err := s.sigRepo.SaveSignature(ctx, sig.ID, role, image, now); err != nil {
		s.logger.WithError(err).Error("failed to save signature")
		s.internalServerError(w)
		return
	}

	if afterSave != nil {
		if err := afterSave(sig.ID); err != nil {
			s.logger.WithError(err).Error("failed to record witness details")
			s.internalServerError(w)
			return
		}
	}

	s.clearSigningSession(w)

	http.Redirect(w, r, "/sign/"+slug+"/complete", http.StatusSeeOther)
}

func (s *Service) renderCaptureError(w http.ResponseWriter, r *http.Request, slug string, role types.SignerRole, message string) {
	data := &types.SignCapturePageData{
		BasePageData: types.BasePageData{Title: "Sign Document"},
		Slug:         slug,
		Role:         role,
		Error:        message,
	}

	w.WriteHeader(http.StatusBadRequest)
	if err := s.renderTemplate(w, r, "page.sign.capture", data); err != nil {
		s.logger.WithError(err).Error("failed to render sign capture page with error")
	}
}

func (s *Service) handleGetSignComplete(w http.ResponseWriter, r *http.Request) {
	_, role, _, ok := s.signingContext(w, r)
	if !ok {
		return
	}

	data := &types.SignCompletePageData{
		BasePageData: types.BasePageData{Title: "Thank You"},
		Role:         role,
	}

	if err := s.renderTemplate(w, r, "page.sign.complete", data); err != nil {
		s.logger.WithError(err).Error("failed to render sign complete page")
		s.internalServerError(w)
	}
}
