package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"maidlink/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleMaidList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	staff, err := s.currentStaff(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to resolve staff")
		s.redirectToLogin(w, r)
		return
	}

	maids, err := s.maidRepo.AgencyMaids(ctx, staff.AgencyID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch agency maids")
		s.internalServerError(w)
		return
	}

	data := &types.MaidListPageData{
		BasePageData: types.BasePageData{Title: "Helpers"},
		Maids:        maids,
		Notice:       r.URL.Query().Get("notice"),
		Error:        r.URL.Query().Get("error"),
	}

	if err := s.renderTemplate(w, r, "page.maids", data); err != nil {
		s.logger.WithError(err).Error("failed to render maid list")
		s.internalServerError(w)
	}
}

func (s *Service) handleGetMaidForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	staff, err := s.currentStaff(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to resolve staff")
		s.redirectToLogin(w, r)
		return
	}

	data := &types.MaidFormPageData{
		BasePageData: types.BasePageData{Title: "New Helper"},
	}

	if maidID := flow.Param(ctx, "id"); maidID != "" {
		maid, err := s.maidRepo.AgencyMaid(ctx, staff.AgencyID, maidID)
		if err != nil {
			s.logger.WithError(err).Info("maid not found")
			http.NotFound(w, r)
			return
		}

		masked, err := s.codec.Partial(maid.Passport(), true)
		if err != nil {
			s.logger.WithError(err).Error("failed to unmask maid passport")
			s.internalServerError(w)
			return
		}

		data.Title = "Edit Helper"
		data.Maid = maid
		data.MaskedPassport = masked
	}

	if err := s.renderTemplate(w, r, "page.maid.form", data); err != nil {
		s.logger.WithError(err).Error("failed to render maid form")
		s.internalServerError(w)
	}
}

func (s *Service) handlePostMaidForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	staff, err := s.currentStaff(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to resolve staff")
		s.redirectToLogin(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/maids", "Invalid form submission.")
		return
	}

	var form types.MaidForm
	if err := decoder.Decode(&form, r.PostForm); err != nil {
		s.logger.WithError(err).Info("failed to decode maid form")
		s.redirectWithError(w, r, "/maids", "Invalid form submission.")
		return
	}

	maidID := flow.Param(ctx, "id")

	var maid *types.Maid
	if maidID != "" {
		maid, err = s.maidRepo.AgencyMaid(ctx, staff.AgencyID, maidID)
		if err != nil {
			s.logger.WithError(err).Info("maid not found")
			http.NotFound(w, r)
			return
		}
	} else {
		maid = &types.Maid{AgencyID: staff.AgencyID}
	}

	maid.ReferenceNumber = strings.TrimSpace(form.ReferenceNumber)
	maid.Name = strings.TrimSpace(form.Name)
	maid.CountryOfOrigin = strings.TrimSpace(form.CountryOfOrigin)
	maid.SalaryCents = form.SalaryCents
	maid.DaysOff = form.DaysOff
	maid.Published = form.Published
	if about := strings.TrimSpace(form.AboutMe); about != "" {
		maid.AboutMe = &about
	} else {
		maid.AboutMe = nil
	}

	data := &types.MaidFormPageData{
		BasePageData: types.BasePageData{Title: "Helper"},
		Maid:         maid,
		FieldErrors:  map[string]string{},
	}

	if maid.ReferenceNumber == "" {
		data.FieldErrors["reference_number"] = "Reference number is required."
	}
	if maid.Name == "" {
		data.FieldErrors["name"] = "Name is required."
	}
	if maid.SalaryCents <= 0 {
		data.FieldErrors["salary_cents"] = "Salary is required."
	}

	switch types.MaidType(form.MaidType) {
	case types.MaidTypeNew, types.MaidTypeTransfer, types.MaidTypeExperienced:
		maid.MaidType = types.MaidType(form.MaidType)
	default:
		data.FieldErrors["maid_type"] = "Pick a helper type."
	}

	if form.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", form.DateOfBirth)
		if err != nil {
			data.FieldErrors["date_of_birth"] = "Enter the date of birth as YYYY-MM-DD."
		} else {
			maid.DateOfBirth = dob
		}
	} else if maidID == "" {
		data.FieldErrors["date_of_birth"] = "Date of birth is required."
	}

	// Passport required on create; blank on edit keeps the stored value.
	// Validation runs before any encryption.
	passport := strings.ToUpper(strings.TrimSpace(form.PassportNumber))
	if passport == "" && maidID == "" {
		data.FieldErrors["passport_number"] = "Passport number is required."
	}
	if passport != "" {
		if err := types.ValidatePassportNumber(passport); err != nil {
			data.FieldErrors["passport_number"] = "Enter a valid passport number."
		}
	}

	if len(data.FieldErrors) > 0 {
		data.Error = "Please fix the highlighted fields."
		if err := s.renderTemplate(w, r, "page.maid.form", data); err != nil {
			s.logger.WithError(err).Error("failed to render maid form with errors")
			s.internalServerError(w)
		}
		return
	}

	if passport != "" {
		sealed, err := s.codec.Seal(passport)
		if err != nil {
			s.logger.WithError(err).Error("failed to encrypt maid passport")
			s.internalServerError(w)
			return
		}
		maid.SetPassport(sealed)
	}

	if maidID == "" {
		err = s.maidRepo.CreateMaid(ctx, maid)
	} else {
		err = s.maidRepo.UpdateMaid(ctx, maid)
	}
	if err != nil {
		s.logger.WithError(err).Error("failed to save maid")
		s.internalServerError(w)
		return
	}

	s.redirectWithNotice(w, r, "/maids", "Helper saved.")
}

const maxPhotoBytes = 5 << 20

func (s *Service) handlePostMaidPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	staff, err := s.currentStaff(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to resolve staff")
		s.redirectToLogin(w, r)
		return
	}

	maid, err := s.maidRepo.AgencyMaid(ctx, staff.AgencyID, flow.Param(ctx, "id"))
	if err != nil {
		s.logger.WithError(err).Info("maid not found")
		http.NotFound(w, r)
		return
	}

	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		s.redirectWithError(w, r, "/maids", "Photo too large or invalid upload.")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		s.redirectWithError(w, r, "/maids", "No photo selected.")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		s.redirectWithError(w, r, "/maids", "Photos must be JPEG or PNG.")
		return
	}

	key := fmt.Sprintf("maids/%s/photo", maid.ID)

	if _, err := s.media.UploadFile(ctx, key, file, contentType); err != nil {
		s.logger.WithError(err).Error("failed to upload maid photo")
		s.internalServerError(w)
		return
	}

	if err := s.maidRepo.SetMaidPhoto(ctx, staff.AgencyID, maid.ID, key); err != nil {
		s.logger.WithError(err).Error("failed to record maid photo key")
		s.internalServerError(w)
		return
	}

	s.redirectWithNotice(w, r, "/maids", "Photo updated.")
}

func (s *Service) handlePostMaidPhotoDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	staff, err := s.currentStaff(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to resolve staff")
		s.redirectToLogin(w, r)
		return
	}

	maid, err := s.maidRepo.AgencyMaid(ctx, staff.AgencyID, flow.Param(ctx, "id"))
	if err != nil {
		s.logger.WithError(err).Info("maid not found")
		http.NotFound(w, r)
		return
	}

	if maid.PhotoKey == nil {
		s.redirectWithNotice(w, r, "/maids", "No photo to remove.")
		return
	}

	if err := s.media.DeleteFile(ctx, *maid.PhotoKey); err != nil {
		s.logger.WithError(err).Error("failed to delete maid photo object")
		s.internalServerError(w)
		return
	}

	if err := s.maidRepo.SetMaidPhoto(ctx, staff.AgencyID, maid.ID, ""); err != nil {
		s.logger.WithError(err).Error("failed to clear maid photo key")
		s.internalServerError(w)
		return
	}

	s.redirectWithNotice(w, r, "/maids", "Photo removed.")
}

// handleMaidPhoto streams a published helper's photo from object storage.
func (s *Service) handleMaidPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	maid, err := s.maidRepo.Maid(ctx, flow.Param(ctx, "id"))
	if err != nil || !maid.Published || maid.PhotoKey == nil {
		http.NotFound(w, r)
		return
	}

	body, contentType, err := s.media.FetchFile(ctx, *maid.PhotoKey)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch maid photo")
		s.internalServerError(w)
		return
	}
	defer body.Close()

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Header().Set("Cache-Control", "public, max-age=300")

	if _, err := io.Copy(w, body); err != nil {
		s.logger.WithError(err).Info("maid photo stream interrupted")
	}
}
