// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package branding

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"clientportal/internal/models"
)

// Validation limits for branding fields.
const (
	maxCompanyNameLen = 200
	maxTitleLen       = 300
	maxDescriptionLen = 1_000
	maxURLLen         = 2_000
	maxServices       = 12
	maxLoginFeatures  = 10
)

// FieldError describes a single invalid field in a patch.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a patch violates the schema. It carries
// one entry per invalid field and always means "nothing was written".
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "invalid branding patch: " + strings.Join(parts, "; ")
}

// ValidatePatch checks every present field of the patch against the schema
// rules. Returns nil when the patch is acceptable.
func ValidatePatch(p *models.BrandingPatch) *ValidationError {
	var errs []FieldError
	add := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Message: msg})
	}

	if p == nil {
		return nil
	}

	if p.CompanyName != nil {
		name := strings.TrimSpace(*p.CompanyName)
		if name == "" {
			add("companyName", "Company name cannot be empty.")
		} else if utf8.RuneCountInString(name) > maxCompanyNameLen {
			add("companyName", fmt.Sprintf("Company name is too long (max %d characters).", maxCompanyNameLen))
		}
	}

	if p.LogoSize != nil {
		if *p.LogoSize < models.LogoSizeMin || *p.LogoSize > models.LogoSizeMax {
			add("logoSize", fmt.Sprintf("Logo size must be between %d and %d pixels.", models.LogoSizeMin, models.LogoSizeMax))
		}
	}

	if p.PrimaryColor != nil && !isHexColor(*p.PrimaryColor) {
		add("primaryColor", "Primary color must be a hex color like #1a2b3c.")
	}

	checkLen := func(field string, v *string, max int) {
		if v != nil && utf8.RuneCountInString(*v) > max {
			add(field, fmt.Sprintf("Too long (max %d characters).", max))
		}
	}
	checkLen("logo", p.LogoURL, maxURLLen)
	checkLen("favicon", p.FaviconURL, maxURLLen)
	checkLen("metaTitle", p.MetaTitle, maxTitleLen)
	checkLen("metaDescription", p.MetaDescription, maxDescriptionLen)
	checkLen("heroTitle", p.HeroTitle, maxTitleLen)
	checkLen("heroDescription", p.HeroDescription, maxDescriptionLen)
	checkLen("ctaTitle", p.CTATitle, maxTitleLen)
	checkLen("ctaDescription", p.CTADescription, maxDescriptionLen)
	checkLen("ctaButtonText", p.CTAButtonText, maxTitleLen)
	checkLen("loginTitle", p.LoginTitle, maxTitleLen)
	checkLen("loginDescription", p.LoginDescription, maxDescriptionLen)

	if p.Services != nil {
		if len(*p.Services) > maxServices {
			add("services", fmt.Sprintf("Too many services (max %d).", maxServices))
		}
		for i, svc := range *p.Services {
			if strings.TrimSpace(svc.Title) == "" {
				add(fmt.Sprintf("services[%d].title", i), "Service title is required.")
			}
			if strings.TrimSpace(svc.Description) == "" {
				add(fmt.Sprintf("services[%d].description", i), "Service description is required.")
			}
			// Icon keys are not validated: unknown keys fall back to a
			// default icon at render time.
		}
	}

	if p.LoginFeatures != nil {
		if len(*p.LoginFeatures) > maxLoginFeatures {
			add("loginFeatures", fmt.Sprintf("Too many login features (max %d).", maxLoginFeatures))
		}
		for i, f := range *p.LoginFeatures {
			if strings.TrimSpace(f) == "" {
				add(fmt.Sprintf("loginFeatures[%d]", i), "Feature text cannot be empty.")
			}
		}
	}

	if p.LoginGradient != nil {
		if !isHexColor(p.LoginGradient.From) {
			add("loginBackgroundGradient.from", "Gradient start must be a hex color.")
		}
		if !isHexColor(p.LoginGradient.To) {
			add("loginBackgroundGradient.to", "Gradient end must be a hex color.")
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// isHexColor accepts #RGB and #RRGGBB.
func isHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
