// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package portal

import (
	"strconv"

	"clientportal/internal/models"
)

// Effect ops.
const (
	EffectVariable = "variable" // set a CSS-style display variable
	EffectTitle    = "title"    // set the document title
	EffectFavicon  = "favicon"  // set the favicon URL
)

// Variable names emitted by Effects.
const (
	VarPrimaryColor = "--primary"
	VarLogoSize     = "--logo-size"
	VarGradientFrom = "--login-gradient-from"
	VarGradientTo   = "--login-gradient-to"
)

// Effect is one display mutation derived from the branding document.
type Effect struct {
	Op    string
	Name  string // variable name, only for EffectVariable
	Value string
}

// Display receives branding effects. Implementations push them to
// whatever renders the UI; a no-op implementation is valid.
type Display interface {
	SetVariable(name, value string)
	SetTitle(title string)
	SetFavicon(url string)
}

// Effects computes the display mutations for a document. It is pure and
// never fails: empty optional fields simply produce no effect, so values
// applied earlier stay untouched. Applying the same document twice yields
// the same effects.
func Effects(doc *models.BrandingSettings) []Effect {
	if doc == nil {
		return nil
	}

	var effects []Effect
	if doc.PrimaryColor != "" {
		effects = append(effects, Effect{Op: EffectVariable, Name: VarPrimaryColor, Value: doc.PrimaryColor})
	}
	if doc.LogoSize > 0 {
		size := models.ClampLogoSize(doc.LogoSize)
		effects = append(effects, Effect{Op: EffectVariable, Name: VarLogoSize, Value: strconv.Itoa(size) + "px"})
	}
	if doc.LoginGradient != nil {
		if doc.LoginGradient.From != "" {
			effects = append(effects, Effect{Op: EffectVariable, Name: VarGradientFrom, Value: doc.LoginGradient.From})
		}
		if doc.LoginGradient.To != "" {
			effects = append(effects, Effect{Op: EffectVariable, Name: VarGradientTo, Value: doc.LoginGradient.To})
		}
	}

	effects = append(effects, Effect{Op: EffectTitle, Value: doc.Title()})

	if doc.FaviconURL != "" {
		effects = append(effects, Effect{Op: EffectFavicon, Value: doc.FaviconURL})
	}
	return effects
}

// ServiceView is a render-ready services entry. Icon resolution happens
// here so displays never see an unknown key.
type ServiceView struct {
	Title       string
	Description string
	Icon        models.IconKey
}

// ServiceViews prepares the document's services section for rendering.
// The icon mapping is total: keys outside the known set resolve to the
// default icon instead of failing.
func ServiceViews(doc *models.BrandingSettings) []ServiceView {
	if doc == nil || len(doc.Services) == 0 {
		return nil
	}
	views := make([]ServiceView, len(doc.Services))
	for i, svc := range doc.Services {
		views[i] = ServiceView{
			Title:       svc.Title,
			Description: svc.Description,
			Icon:        models.ResolveIcon(svc.Icon),
		}
	}
	return views
}

// Apply pushes the document's effects to a display.
func Apply(d Display, doc *models.BrandingSettings) {
	for _, e := range Effects(doc) {
		switch e.Op {
		case EffectVariable:
			d.SetVariable(e.Name, e.Value)
		case EffectTitle:
			d.SetTitle(e.Value)
		case EffectFavicon:
			d.SetFavicon(e.Value)
		}
	}
}
