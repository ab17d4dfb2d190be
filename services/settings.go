package services

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// DefaultTerms is printed on quotations that carry no terms of their own.
const DefaultTerms = "Payment: 50% deposit, 50% upon delivery."

// Settings is the runtime configuration read from the environment.
type Settings struct {
	CatalogDir           string
	CompanyName          string
	CompanyAddress       string
	CompanyEmail         string
	DefaultTerms         string
	MaxReferenceAttempts int
}

// LoadSettings reads settings from environment variables, falling back to
// defaults for anything unset. An unparsable REFERENCE_MAX_ATTEMPTS is
// logged and ignored.
func LoadSettings() Settings {
	s := Settings{
		CatalogDir:           envOr("CATALOG_DIR", "data"),
		CompanyName:          envOr("COMPANY_NAME", "Balloon Budget"),
		CompanyAddress:       envOr("COMPANY_ADDRESS", ""),
		CompanyEmail:         envOr("COMPANY_EMAIL", ""),
		DefaultTerms:         envOr("DEFAULT_TERMS", DefaultTerms),
		MaxReferenceAttempts: DefaultReferenceAttempts,
	}

	if raw := strings.TrimSpace(os.Getenv("REFERENCE_MAX_ATTEMPTS")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			log.Printf("settings: ignoring REFERENCE_MAX_ATTEMPTS=%q, using %d", raw, DefaultReferenceAttempts)
		} else {
			s.MaxReferenceAttempts = n
		}
	}
	return s
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
