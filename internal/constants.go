package internal

const (
	COOKIE_ACCESS_TOKEN_NAME   = "ml_access_token"
	COOKIE_REDIRECT_NAME       = "ml_redirect"
	COOKIE_SIGNING_TOKEN_NAME  = "ml_signing_token"
	COOKIE_SHORTLIST_NAME      = "ml_shortlist"
	COOKIE_REMEMBER_EMAIL_NAME = "ml_remember_email"
)
