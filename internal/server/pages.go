package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"maidlink/internal/store"
	"maidlink/pkg/types"

	"github.com/alexedwards/flow"
)

func filterFromQuery(r *http.Request) store.MaidFilter {
	q := r.URL.Query()

	filter := store.MaidFilter{
		CountryOfOrigin: strings.TrimSpace(q.Get("country")),
	}

	if t := types.MaidType(strings.ToUpper(strings.TrimSpace(q.Get("type")))); t != "" {
		switch t {
		case types.MaidTypeNew, types.MaidTypeTransfer, types.MaidTypeExperienced:
			filter.MaidType = t
		}
	}

	if raw := q.Get("max_salary_cents"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			filter.MaxSalaryCents = v
		}
	}

	return filter
}

func (s *Service) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	maids, err := s.maidRepo.PublishedMaids(ctx, store.MaidFilter{})
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch featured maids")
		s.internalServerError(w)
		return
	}
	if len(maids) > 6 {
		maids = maids[:6]
	}

	ads, err := s.adRepo.ActiveAdvertisements(ctx, types.AdPlacementHome, time.Now())
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch home advertisements")
		// the page still renders without ads
	}

	data := &types.HomePageData{
		BasePageData: types.BasePageData{Title: "Find a Helper"},
		Notice:       r.URL.Query().Get("notice"),
		Error:        r.URL.Query().Get("error"),
		Featured:     maids,
		Ads:          ads,
	}

	if err := s.renderTemplate(w, r, "page.home", data); err != nil {
		s.logger.WithError(err).Error("failed to render home page")
		s.internalServerError(w)
	}
}

func (s *Service) handleBrowse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := filterFromQuery(r)

	maids, err := s.maidRepo.PublishedMaids(ctx, filter)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch published maids")
		s.internalServerError(w)
		return
	}

	ads, err := s.adRepo.ActiveAdvertisements(ctx, types.AdPlacementBrowse, time.Now())
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch browse advertisements")
	}

	shortlisted := map[string]bool{}
	for _, id := range s.shortlistFromRequest(r) {
		shortlisted[id] = true
	}

	data := &types.BrowsePageData{
		BasePageData: types.BasePageData{Title: "Browse Helpers"},
		Maids:        maids,
		Shortlist:    shortlisted,
		Ads:          ads,
	}

	if err := s.renderTemplate(w, r, "page.browse", data); err != nil {
		s.logger.WithError(err).Error("failed to render browse page")
		s.internalServerError(w)
	}
}

func (s *Service) handleMaidDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	maid, err := s.maidRepo.Maid(ctx, flow.Param(ctx, "id"))
	if err != nil {
		s.logger.WithError(err).Info("maid not found")
		http.NotFound(w, r)
		return
	}

	if !maid.Published {
		http.NotFound(w, r)
		return
	}

	var shortlisted bool
	for _, id := range s.shortlistFromRequest(r) {
		if id == maid.ID {
			shortlisted = true
			break
		}
	}

	data := &types.MaidDetailPageData{
		BasePageData: types.BasePageData{Title: maid.Name},
		Maid:         maid,
		Shortlisted:  shortlisted,
	}

	if err := s.renderTemplate(w, r, "page.maid.detail", data); err != nil {
		s.logger.WithError(err).Error("failed to render maid detail page")
		s.internalServerError(w)
	}
}

func (s *Service) handleShortlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	maids, err := s.maidRepo.MaidsByIDs(ctx, s.shortlistFromRequest(r))
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch shortlisted maids")
		s.internalServerError(w)
		return
	}

	data := &types.ShortlistPageData{
		BasePageData: types.BasePageData{Title: "Your Shortlist"},
		Maids:        maids,
	}

	if err := s.renderTemplate(w, r, "page.shortlist", data); err != nil {
		s.logger.WithError(err).Error("failed to render shortlist page")
		s.internalServerError(w)
	}
}

// handlePostShortlist toggles a maid on the visitor's sealed shortlist
// cookie.
func (s *Service) handlePostShortlist(w http.ResponseWriter, r *http.Request) {
	maidID := strings.TrimSpace(r.FormValue("maid_id"))
	if maidID == "" {
		s.redirectWithError(w, r, "/browse", "No helper selected.")
		return
	}

	current := s.shortlistFromRequest(r)

	next := make([]string, 0, len(current)+1)
	removed := false
	for _, id := range current {
		if id == maidID {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if !removed {
		next = append(next, maidID)
	}

	if err := s.setShortlist(w, next); err != nil {
		s.logger.WithError(err).Error("failed to update shortlist")
		s.internalServerError(w)
		return
	}

	returnTo := r.FormValue("return_to")
	if returnTo == "" || !strings.HasPrefix(returnTo, "/") {
		returnTo = "/browse"
	}
	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

func (s *Service) handlePostEnquiry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/browse", "Invalid form submission.")
		return
	}

	var enquiry types.Enquiry
	if err := decoder.Decode(&enquiry, r.PostForm); err != nil {
		s.logger.WithError(err).Info("failed to decode enquiry form")
		s.redirectWithError(w, r, "/browse", "Invalid form submission.")
		return
	}

	if maidID := strings.TrimSpace(r.FormValue("maid_id")); maidID != "" {
		enquiry.MaidID = &maidID
	}

	if strings.TrimSpace(enquiry.Name) == "" ||
		strings.TrimSpace(enquiry.Email) == "" ||
		strings.TrimSpace(enquiry.Message) == "" {
		s.redirectWithError(w, r, "/browse", "Name, email and message are required.")
		return
	}

	if err := s.enquiryRepo.CreateEnquiry(ctx, &enquiry); err != nil {
		s.logger.WithError(err).Error("failed to create enquiry")
		s.internalServerError(w)
		return
	}

	s.redirectWithNotice(w, r, "/browse", "Thanks! The agency will be in touch.")
}

func (s *Service) handleEnquiryList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	staff, err := s.currentStaff(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to resolve staff")
		s.redirectToLogin(w, r)
		return
	}

	enquiries, err := s.enquiryRepo.AgencyEnquiries(ctx, staff.AgencyID)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch agency enquiries")
		s.internalServerError(w)
		return
	}

	data := struct {
		types.BasePageData
		Enquiries []*types.Enquiry
	}{
		BasePageData: types.BasePageData{Title: "Enquiries"},
		Enquiries:    enquiries,
	}

	if err := s.renderTemplate(w, r, "page.enquiries", &data); err != nil {
		s.logger.WithError(err).Error("failed to render enquiries page")
		s.internalServerError(w)
	}
}
