package theme

import "strings"

// Role is a semantic purpose a slot can serve
type Role string

// Known roles
const (
	RolePrimaryAccent       Role = "primaryAccent"
	RoleSecondaryAccent     Role = "secondaryAccent"
	RolePrimaryBackground   Role = "primaryBackground"
	RoleSecondaryBackground Role = "secondaryBackground"
	RolePrimaryText         Role = "primaryText"
	RoleSecondaryText       Role = "secondaryText"
)

// Roles lists every role in palette order
var Roles = []Role{
	RolePrimaryAccent,
	RoleSecondaryAccent,
	RolePrimaryBackground,
	RoleSecondaryBackground,
	RolePrimaryText,
	RoleSecondaryText,
}

// roleKeywords are the usage substrings matched by the heuristic lookup.
// Matching is case-sensitive.
var roleKeywords = map[Role][]string{
	RolePrimaryAccent:       {"Primary accent"},
	RoleSecondaryAccent:     {"Secondary accent"},
	RolePrimaryBackground:   {"Primary background"},
	RoleSecondaryBackground: {"Secondary background"},
	RolePrimaryText:         {"Main text", "Primary text"},
	RoleSecondaryText:       {"Secondary text"},
}

// fallback colors per role: [dark, light]
var roleFallbacks = map[Role][2]string{
	RolePrimaryAccent:       {"#1976d2", "#1976d2"},
	RoleSecondaryAccent:     {"#90caf9", "#90caf9"},
	RolePrimaryBackground:   {"#121212", "#F8F9FA"},
	RoleSecondaryBackground: {"#1e1e1e", "#E9ECEF"},
	RolePrimaryText:         {"#ffffff", "#212529"},
	RoleSecondaryText:       {"rgba(255, 255, 255, 0.7)", "#6C757D"},
}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	_, ok := roleKeywords[r]
	return ok
}

// ResolveRole returns the hex of the first slot serving role.
// Slots tagged explicitly win; when no slot carries the tag, the first slot
// whose usage text contains a role keyword is used.
func ResolveRole(s Scheme, role Role) (string, bool) {
	for _, slot := range s.Slots {
		if slot.Role == role {
			return slot.Hex, true
		}
	}
	return matchUsage(s, role)
}

// matchUsage is the keyword heuristic over usage text in declaration order
func matchUsage(s Scheme, role Role) (string, bool) {
	keywords := roleKeywords[role]
	for _, slot := range s.Slots {
		for _, kw := range keywords {
			if strings.Contains(slot.Usage, kw) {
				return slot.Hex, true
			}
		}
	}
	return "", false
}

// RoleColor resolves role, falling back to a fixed color for the scheme's mode
func RoleColor(s Scheme, role Role) string {
	if hex, ok := ResolveRole(s, role); ok {
		return hex
	}
	return FallbackColor(role, IsLight(s.ID))
}

// FallbackColor returns the fixed color used when no slot serves role
func FallbackColor(role Role, light bool) string {
	fb, ok := roleFallbacks[role]
	if !ok {
		return "#000000"
	}
	if light {
		return fb[1]
	}
	return fb[0]
}
