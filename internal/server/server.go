package server

import (
	"context"
	"embed"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"maidlink/internal/billing"
	"maidlink/internal/crypto"
	"maidlink/internal/storage"
	"maidlink/internal/store"
	"maidlink/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
)

//go:embed templates static
var uiFS embed.FS
var decoder = form.NewDecoder()

type Service struct {
	logger    *logrus.Logger
	config    *types.Config
	codec     *crypto.Codec
	templates *template.Template

	cognitoClient *cognitoidentityprovider.Client
	media         *storage.S3Storage
	billing       *billing.Stripe
	cookie        *securecookie.SecureCookie

	agencyRepo   *store.AgencyRepository
	employerRepo *store.EmployerRepository
	maidRepo     *store.MaidRepository
	docRepo      *store.DocumentRepository
	sigRepo      *store.SignatureRepository
	enquiryRepo  *store.EnquiryRepository
	adRepo       *store.AdvertisementRepository

	jwksCache *jwk.Cache
	jwksURL   string

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	codec *crypto.Codec,
	cognitoClient *cognitoidentityprovider.Client,
	media *storage.S3Storage,
	billingClient *billing.Stripe,
	agencyRepo *store.AgencyRepository,
	employerRepo *store.EmployerRepository,
	maidRepo *store.MaidRepository,
	docRepo *store.DocumentRepository,
	sigRepo *store.SignatureRepository,
	enquiryRepo *store.EnquiryRepository,
	adRepo *store.AdvertisementRepository,
	jwkCache *jwk.Cache,
	jwksURL string,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	s := &Service{
		logger: logger,
		config: config,
		codec:  codec,
		cookie: securecookie.New(hashKey, blockKey),

		cognitoClient: cognitoClient,
		media:         media,
		billing:       billingClient,

		agencyRepo:   agencyRepo,
		employerRepo: employerRepo,
		maidRepo:     maidRepo,
		docRepo:      docRepo,
		sigRepo:      sigRepo,
		enquiryRepo:  enquiryRepo,
		adRepo:       adRepo,

		jwksCache: jwkCache,
		jwksURL:   jwksURL,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = templates

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/", s.handleHome, http.MethodGet)
	r.HandleFunc("/browse", s.handleBrowse, http.MethodGet)
	r.HandleFunc("/maid/:id", s.handleMaidDetail, http.MethodGet)
	r.HandleFunc("/media/maid/:id/photo", s.handleMaidPhoto, http.MethodGet)
	r.HandleFunc("/shortlist", s.handleShortlist, http.MethodGet)
	r.HandleFunc("/shortlist", s.handlePostShortlist, http.MethodPost)
	r.HandleFunc("/enquiry", s.handlePostEnquiry, http.MethodPost)

	r.HandleFunc("/register", s.handleGetRegister, http.MethodGet)
	r.HandleFunc("/register", s.handlePostRegister, http.MethodPost)
	r.HandleFunc("/register/confirm", s.handleGetRegisterConfirm, http.MethodGet)
	r.HandleFunc("/register/confirm", s.handlePostRegisterConfirm, http.MethodPost)
	r.HandleFunc("/login", s.handleGetLogin, http.MethodGet)
	r.HandleFunc("/login", s.handlePostLogin, http.MethodPost)
	r.HandleFunc("/logout", s.handlePostLogout, http.MethodPost)

	// Public signing flow. Authenticated by slug + identity challenge, not
	// by session.
	r.HandleFunc("/sign/:slug/verify", s.handleGetSignVerify, http.MethodGet)
	r.HandleFunc("/sign/:slug/verify", s.handlePostSignVerify, http.MethodPost)
	r.HandleFunc("/sign/:slug/signature", s.handleGetSignCapture, http.MethodGet)
	r.HandleFunc("/sign/:slug/signature", s.handlePostSignCapture, http.MethodPost)
	r.HandleFunc("/sign/:slug/witness", s.handlePostSignWitness, http.MethodPost)
	r.HandleFunc("/sign/:slug/complete", s.handleGetSignComplete, http.MethodGet)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/employers", s.handleEmployerList, http.MethodGet)
		r.HandleFunc("/employers/new", s.handleGetEmployerForm, http.MethodGet)
		r.HandleFunc("/employers/new", s.handlePostEmployerForm, http.MethodPost)
		r.HandleFunc("/employers/:id/edit", s.handleGetEmployerForm, http.MethodGet)
		r.HandleFunc("/employers/:id/edit", s.handlePostEmployerForm, http.MethodPost)
		r.HandleFunc("/employers/:id/archive", s.handlePostEmployerArchive, http.MethodPost)

		r.HandleFunc("/maids", s.handleMaidList, http.MethodGet)
		r.HandleFunc("/maids/new", s.handleGetMaidForm, http.MethodGet)
		r.HandleFunc("/maids/new", s.handlePostMaidForm, http.MethodPost)
		r.HandleFunc("/maids/:id/edit", s.handleGetMaidForm, http.MethodGet)
		r.HandleFunc("/maids/:id/edit", s.handlePostMaidForm, http.MethodPost)
		r.HandleFunc("/maids/:id/photo", s.handlePostMaidPhoto, http.MethodPost)
		r.HandleFunc("/maids/:id/photo/delete", s.handlePostMaidPhotoDelete, http.MethodPost)

		r.HandleFunc("/docs", s.handleDocList, http.MethodGet)
		r.HandleFunc("/docs/new", s.handlePostNewDoc, http.MethodPost)
		r.HandleFunc("/docs/:id", s.handleDocDetail, http.MethodGet)
		r.HandleFunc("/docs/:id/service-fee", s.handleGetServiceFee, http.MethodGet)
		r.HandleFunc("/docs/:id/service-fee", s.handlePostServiceFee, http.MethodPost)
		r.HandleFunc("/docs/:id/service-agreement", s.handleGetServiceAgreement, http.MethodGet)
		r.HandleFunc("/docs/:id/service-agreement", s.handlePostServiceAgreement, http.MethodPost)
		r.HandleFunc("/docs/:id/employment-contract", s.handleGetEmploymentContract, http.MethodGet)
		r.HandleFunc("/docs/:id/employment-contract", s.handlePostEmploymentContract, http.MethodPost)
		r.HandleFunc("/docs/:id/status", s.handlePostDocStatus, http.MethodPost)
		r.HandleFunc("/docs/:id/signatures/:role/renew", s.handlePostRenewSlug, http.MethodPost)
		r.HandleFunc("/docs/:id/pdf/:doctype", s.handleDocPDF, http.MethodGet)

		r.HandleFunc("/enquiries", s.handleEnquiryList, http.MethodGet)
		r.HandleFunc("/agency/subscribe", s.handlePostSubscribe, http.MethodPost)
		r.HandleFunc("/agency/unsubscribe", s.handlePostUnsubscribe, http.MethodPost)
	})

	staticRoot, err := fs.Sub(uiFS, "static")
	if err != nil {
		s.logger.WithError(err).Fatal("failed to mount static assets")
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)
}

func loadTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"money": func(cents int) string {
			return fmt.Sprintf("S$%.2f", float64(cents)/100)
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"derefOr": func(s *string, defaultVal string) string {
			if s == nil {
				return defaultVal
			}
			return *s
		},
	}

	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(uiFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(uiFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) staffIDFromContext(ctx context.Context) (string, error) {
	staffID, ok := ctx.Value(contextKeyStaffID).(string)
	if !ok {
		return "", fmt.Errorf("staff id not found in context")
	}
	return staffID, nil
}

// currentStaff resolves the authenticated subject to its staff row,
// attaching the subject to its agency on first login. Registration creates
// the agency keyed by the owner's email before any Cognito subject exists,
// so the first authenticated request completes the link here.
func (s *Service) currentStaff(ctx context.Context) (*types.AgencyStaff, error) {
	staffID, err := s.staffIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	staff, err := s.agencyRepo.Staff(ctx, staffID)
	if err == nil {
		return staff, nil
	}
	if !errors.Is(err, types.ErrAgencyNotFound) {
		return nil, err
	}

	email, _ := ctx.Value(contextKeyEmail).(string)
	if email == "" {
		return nil, fmt.Errorf("staff %s has no agency and no email claim", staffID)
	}

	agency, err := s.agencyRepo.AgencyByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("no agency registered for %s: %w", email, err)
	}

	err = s.agencyRepo.UpsertStaffIdentity(ctx, staffID, agency.ID, email, "", "", types.StaffRoleOwner)
	if err != nil {
		return nil, err
	}

	return s.agencyRepo.Staff(ctx, staffID)
}
