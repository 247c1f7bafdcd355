// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// IconKey identifies one of the fixed set of service icons. Unknown keys
// never error: rendering falls back to IconDefault.
type IconKey string

const (
	IconCode   IconKey = "code"
	IconCloud  IconKey = "cloud"
	IconShield IconKey = "shield"
	IconChart  IconKey = "chart"
	IconUsers  IconKey = "users"
	IconWrench IconKey = "wrench"

	// IconDefault is rendered for any key outside the known set.
	IconDefault = IconCode
)

// knownIcons is the total set of renderable icon keys.
var knownIcons = map[IconKey]bool{
	IconCode:   true,
	IconCloud:  true,
	IconShield: true,
	IconChart:  true,
	IconUsers:  true,
	IconWrench: true,
}

// ResolveIcon maps an arbitrary stored key to a renderable icon. The
// mapping is total: every input yields a known icon.
func ResolveIcon(key string) IconKey {
	k := IconKey(key)
	if knownIcons[k] {
		return k
	}
	return IconDefault
}
