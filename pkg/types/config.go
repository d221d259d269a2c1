package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Cognito Auth
	CognitoUserPoolID string `envconfig:"COGNITO_USER_POOL_ID"`
	CognitoClientID   string `envconfig:"COGNITO_CLIENT_ID"`
	CognitoIssuerURL  string `envconfig:"COGNITO_ISSUER_URL"`

	// Field-level PII encryption key (base64 encoded, 16/24/32 bytes).
	// openssl rand -base64 32, or `maidlink keygen`.
	EncryptionKey string `envconfig:"ENCRYPTION_KEY"`

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes

	// S3 object storage for maid photos and generated artifacts
	StorageBucket string `envconfig:"STORAGE_BUCKET" default:"maidlink-media"`

	// Stripe billing
	StripeSecretKey          string `envconfig:"STRIPE_SECRET_KEY"`
	StripeSubscriptionPrice  string `envconfig:"STRIPE_SUBSCRIPTION_PRICE"`
	StripeTrialPeriodDays    int64  `envconfig:"STRIPE_TRIAL_PERIOD_DAYS" default:"14"`
	SignatureTokenMaxAgeSec  int    `envconfig:"SIGNATURE_TOKEN_MAX_AGE_SEC" default:"600"`
	ShortlistCookieMaxAgeSec int    `envconfig:"SHORTLIST_COOKIE_MAX_AGE_SEC" default:"604800"` // 7 days
}
