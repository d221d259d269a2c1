package server

import (
	"net/http"
	"net/mail"
	"strings"

	"maidlink/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleEmployerList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	staff, err := s.currentStaff(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to resolve staff")
		s.redirectToLogin(w, r)
		return
	}

	status := types.EmployerStatusActive
	if r.URL.Query().Get("status") == string(types.EmployerStatusArchived) {
		status = types.EmployerStatusArchived
	}

	employers, err := s.employerRepo.Employers(ctx, staff.AgencyID, status)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch employers")
		s.internalServerError(w)
		return
	}

	data := &types.EmployerListPageData{
		BasePageData: types.BasePageData{Title: "Employers"},
		Employers:    employers,
		Notice:       r.URL.Query().Get("notice"),
		Error:        r.URL.Query().Get("error"),
	}

	if err := s.renderTemplate(w, r, "page.employers", data); err != nil {
		s.logger.WithError(err).Error("failed to render employer list")
		s.internalServerError(w)
	}
}

func (s *Service) handleGetEmployerForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	staff, err := s.currentStaff(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to resolve staff")
		s.redirectToLogin(w, r)
		return
	}

	data := &types.EmployerFormPageData{
		BasePageData: types.BasePageData{Title: "New Employer"},
	}

	if employerID := flow.Param(ctx, "id"); employerID != "" {
		employer, err := s.employerRepo.Employer(ctx, staff.AgencyID, employerID)
		if err != nil {
			s.logger.WithError(err).Info("employer not found")
			http.NotFound(w, r)
			return
		}

		// Only the masked NRIC reaches the template; the full value stays
		// encrypted unless the form explicitly replaces it.
		masked, err := s.codec.Partial(employer.NRIC(), true)
		if err != nil {
			s.logger.WithError(err).Error("failed to unmask employer nric")
			s.internalServerError(w)
			return
		}

		data.Title = "Edit Employer"
		data.Employer = employer
		data.MaskedNRIC = masked
	}

	if err := s.renderTemplate(w, r, "page.employer.form", data); err != nil {
		s.logger.WithError(err).Error("failed to render employer form")
		s.internalServerError(w)
	}
}

func (s *Service) handlePostEmployerForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	staff, err := s.currentStaff(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to resolve staff")
		s.redirectToLogin(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/employers", "Invalid form submission.")
		return
	}

	var form types.EmployerForm
	if err := decoder.Decode(&form, r.PostForm); err != nil {
		s.logger.WithError(err).Info("failed to decode employer form")
		s.redirectWithError(w, r, "/employers", "Invalid form submission.")
		return
	}

	employerID := flow.Param(ctx, "id")

	var employer *types.Employer
	if employerID != "" {
		employer, err = s.employerRepo.Employer(ctx, staff.AgencyID, employerID)
		if err != nil {
			s.logger.WithError(err).Info("employer not found")
			http.NotFound(w, r)
			return
		}
	} else {
		employer = &types.Employer{AgencyID: staff.AgencyID}
	}

	employer.Name = strings.TrimSpace(form.Name)
	employer.Email = strings.TrimSpace(form.Email)
	employer.MobileNumber = strings.TrimSpace(form.MobileNumber)
	employer.Address = strings.TrimSpace(form.Address)

	data := &types.EmployerFormPageData{
		BasePageData: types.BasePageData{Title: "Employer"},
		Employer:     employer,
		FieldErrors:  map[string]string{},
	}

	if employer.Name == "" {
		data.FieldErrors["name"] = "Name is required."
	}
	if _, err := mail.ParseAddress(employer.Email); err != nil {
		data.FieldErrors["email"] = "Enter a valid email address."
	}
	if err := types.ValidateMobileNumber(employer.MobileNumber); err != nil {
		data.FieldErrors["mobile_number"] = "Enter a valid Singapore mobile number."
	}

	// NRIC is required on create; on edit a blank field keeps the stored
	// value. Validation runs before any encryption.
	nric := strings.ToUpper(strings.TrimSpace(form.NRIC))
	if nric == "" && employerID == "" {
		data.FieldErrors["nric"] = "NRIC/FIN is required."
	}
	if nric != "" {
		if err := types.ValidateNRIC(nric); err != nil {
			data.FieldErrors["nric"] = "Enter a valid NRIC/FIN."
		}
	}

	if len(data.FieldErrors) > 0 {
		data.Error = "Please fix the highlighted fields."
		if err := s.renderTemplate(w, r, "page.employer.form", data); err != nil {
			s.logger.WithError(err).Error("failed to render employer form with errors")
			s.internalServerError(w)
		}
		return
	}

	if nric != "" {
		sealed, err := s.codec.Seal(nric)
		if err != nil {
			s.logger.WithError(err).Error("failed to encrypt employer nric")
			s.internalServerError(w)
			return
		}
		employer.SetNRIC(sealed)
	}

	if employerID == "" {
		err = s.employerRepo.CreateEmployer(ctx, employer)
	} else {
		err = s.employerRepo.UpdateEmployer(ctx, employer)
	}
	if err != nil {
		s.logger.WithError(err).Error("failed to save employer")
		s.internalServerError(w)
		return
	}

	s.redirectWithNotice(w, r, "/employers", "Employer saved.")
}

// handlePostEmployerArchive soft-archives; employer rows are never
// physically deleted in normal operation.
func (s *Service) handlePostEmployerArchive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	staff, err := s.currentStaff(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to resolve staff")
		s.redirectToLogin(w, r)
		return
	}

	employerID := flow.Param(ctx, "id")

	err = s.employerRepo.SetEmployerStatus(ctx, staff.AgencyID, employerID, types.EmployerStatusArchived)
	if err != nil {
		s.logger.WithError(err).Error("failed to archive employer")
		s.internalServerError(w)
		return
	}

	s.redirectWithNotice(w, r, "/employers", "Employer archived.")
}
