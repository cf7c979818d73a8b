// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application names, used to pick per-app defaults.
const (
	AppFyyur      = "fyyur"
	AppTrivia     = "trivia"
	AppBookmarkie = "bookmarkie"
	AppCoffeeShop = "coffeeshop"
)

// Application defaults
const (
	DefaultPort            = "8080"
	DefaultDBDriver        = DriverSQLite
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultRateLimit       = 100
	DefaultRateWindow      = time.Minute
	DefaultJWKSTTL         = 15 * time.Minute
	DefaultJWKSTimeout     = 10 * time.Second
	DefaultJWKSInterval    = 100 * time.Millisecond
	DefaultJWKSDeadline    = 30 * time.Second
	DefaultRetryCount      = 3
	DefaultRetryBase       = 500 * time.Millisecond
	DefaultMaxBodyBytes    = 1 << 20 // 1MB
)

// Per-app ports, matching the ports the apps have always listened on.
var DefaultPorts = map[string]string{
	AppFyyur:      "5000",
	AppTrivia:     "5001",
	AppBookmarkie: "8080",
	AppCoffeeShop: "5002",
}

// Per-app token audiences.
var DefaultAudiences = map[string]string{
	AppBookmarkie: "bookmarkie",
	AppCoffeeShop: "barista",
}

// Database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Trivia
const (
	QuestionsPerPage = 10
	AllCategories    = 0
)

// Permissions carried in the "permissions" claim.
const (
	PermGetBookmarks      = "get:bookmarks"
	PermPostBookmarks     = "post:bookmarks"
	PermPatchBookmarks    = "patch:bookmarks"
	PermDeleteBookmarks   = "delete:bookmarks"
	PermGetDirectories    = "get:directories"
	PermPostDirectories   = "post:directories"
	PermPatchDirectories  = "patch:directories"
	PermDeleteDirectories = "delete:directories"

	PermGetDrinksDetail = "get:drinks-detail"
	PermPostDrinks      = "post:drinks"
	PermPatchDrinks     = "patch:drinks"
	PermDeleteDrinks    = "delete:drinks"
)

// Token verification
const (
	SigningAlgorithm = "RS256"
	JWKSPath         = "/.well-known/jwks.json"
)

// Content types
const (
	MimeTypeJSON = "application/json"
	MimeTypeHTML = "text/html"
	MimeTypeForm = "application/x-www-form-urlencoded"
)

// Headers
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderAuthorization = "Authorization"
)
