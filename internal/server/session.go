package server

import (
	"fmt"
	"net/http"
	"time"

	"maidlink/internal"
	"maidlink/internal/signing"
)

// signingSession is the sealed cookie value carried between the challenge
// and capture steps. The slug binds the token to one signing link; the
// token's own IssuedAt enforces the 600-second expiry independently of
// cookie max-age.
type signingSession struct {
	Slug  string        `json:"slug"`
	Token signing.Token `json:"token"`
}

func (s *Service) setSigningSession(w http.ResponseWriter, slug string, token signing.Token) error {
	sealed, err := s.cookie.Encode(internal.COOKIE_SIGNING_TOKEN_NAME, signingSession{Slug: slug, Token: token})
	if err != nil {
		return fmt.Errorf("failed to seal signing session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_SIGNING_TOKEN_NAME,
		Value:    sealed,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/sign",
		MaxAge:   s.config.SignatureTokenMaxAgeSec,
	})

	return nil
}

// signingSessionFor returns the sealed token for the slug, or an error if
// the cookie is missing, unreadable, or bound to a different slug.
func (s *Service) signingSessionFor(r *http.Request, slug string) (signing.Token, error) {
	cookie, err := r.Cookie(internal.COOKIE_SIGNING_TOKEN_NAME)
	if err != nil {
		return signing.Token{}, fmt.Errorf("no signing session cookie: %w", err)
	}

	var session signingSession
	if err := s.cookie.Decode(internal.COOKIE_SIGNING_TOKEN_NAME, cookie.Value, &session); err != nil {
		return signing.Token{}, fmt.Errorf("failed to unseal signing session: %w", err)
	}

	if session.Slug != slug {
		return signing.Token{}, fmt.Errorf("signing session bound to a different link")
	}

	return session.Token, nil
}

func (s *Service) clearSigningSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_SIGNING_TOKEN_NAME,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/sign",
		MaxAge:   -1,
	})
}

func (s *Service) shortlistFromRequest(r *http.Request) []string {
	cookie, err := r.Cookie(internal.COOKIE_SHORTLIST_NAME)
	if err != nil {
		return nil
	}

	var maidIDs []string
	if err := s.cookie.Decode(internal.COOKIE_SHORTLIST_NAME, cookie.Value, &maidIDs); err != nil {
		s.logger.WithError(err).Debug("failed to unseal shortlist cookie")
		return nil
	}

	return maidIDs
}

func (s *Service) setShortlist(w http.ResponseWriter, maidIDs []string) error {
	sealed, err := s.cookie.Encode(internal.COOKIE_SHORTLIST_NAME, maidIDs)
	if err != nil {
		return fmt.Errorf("failed to seal shortlist: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_SHORTLIST_NAME,
		Value:    sealed,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   s.config.ShortlistCookieMaxAgeSec,
	})

	return nil
}

func (s *Service) rememberedEmail(r *http.Request) string {
	cookie, err := r.Cookie(internal.COOKIE_REMEMBER_EMAIL_NAME)
	if err != nil {
		return ""
	}

	var email string
	if err := s.cookie.Decode(internal.COOKIE_REMEMBER_EMAIL_NAME, cookie.Value, &email); err != nil {
		return ""
	}

	return email
}

func (s *Service) setRememberedEmail(w http.ResponseWriter, email string) {
	if email == "" {
		http.SetCookie(w, &http.Cookie{
			Name:     internal.COOKIE_REMEMBER_EMAIL_NAME,
			Value:    "",
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
			Path:     "/login",
			MaxAge:   -1,
		})
		return
	}

	sealed, err := s.cookie.Encode(internal.COOKIE_REMEMBER_EMAIL_NAME, email)
	if err != nil {
		s.logger.WithError(err).Warn("failed to seal remember-email cookie")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_REMEMBER_EMAIL_NAME,
		Value:    sealed,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/login",
		MaxAge:   int((90 * 24 * time.Hour).Seconds()),
	})
}

func (s *Service) setRedirectCookie(w http.ResponseWriter, path string, age time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_REDIRECT_NAME,
		Value:    path,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(age.Seconds()),
	})
}

func (s *Service) clearRedirectCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_REDIRECT_NAME,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}
