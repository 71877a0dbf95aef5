package models

import (
	"fmt"
	"strings"
)

// Role is a contributor role code appended to PR titles.
type Role string

const (
	RoleBackend   Role = "BD"
	RoleFrontend  Role = "FD"
	RoleTechLead  Role = "TL"
	RoleSolutions Role = "SA"
)

// TitleRoleOrder is the order roles appear in a PR title.
var TitleRoleOrder = []Role{RoleSolutions, RoleTechLead, RoleBackend, RoleFrontend}

// PanelRoleOrder is the order roles appear as checkboxes.
var PanelRoleOrder = []Role{RoleBackend, RoleFrontend, RoleTechLead, RoleSolutions}

// MaxExtraTagPairs is the number of rows in the extra tag table.
const MaxExtraTagPairs = 4

// ParseRole accepts a role code in any case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleBackend, RoleFrontend, RoleTechLead, RoleSolutions:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// ParseToggle accepts on/off, true/false and yes/no in any case.
func ParseToggle(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("invalid toggle %q", s)
}

// Label is the human name shown next to the checkbox.
func (r Role) Label() string {
	switch r {
	case RoleBackend:
		return "Backend Dev."
	case RoleFrontend:
		return "Frontend Dev."
	case RoleTechLead:
		return "Tech Lead"
	case RoleSolutions:
		return "Solution Arch."
	}
	return string(r)
}

// RoleFlags records which role tags go into the PR title. The JSON shape is
// the per-ticket attribute format: {"BD":false,"FD":false,"TL":false,"SA":false}.
type RoleFlags struct {
	BD bool `json:"BD"`
	FD bool `json:"FD"`
	TL bool `json:"TL"`
	SA bool `json:"SA"`
}

func (f RoleFlags) Enabled(r Role) bool {
	switch r {
	case RoleBackend:
		return f.BD
	case RoleFrontend:
		return f.FD
	case RoleTechLead:
		return f.TL
	case RoleSolutions:
		return f.SA
	}
	return false
}

// With returns a copy with the role set to on.
func (f RoleFlags) With(r Role, on bool) RoleFlags {
	switch r {
	case RoleBackend:
		f.BD = on
	case RoleFrontend:
		f.FD = on
	case RoleTechLead:
		f.TL = on
	case RoleSolutions:
		f.SA = on
	}
	return f
}

// ExtraTagPair is one user defined custom tag, stored per project.
type ExtraTagPair struct {
	Branch string `json:"branch"`
	PR     string `json:"pr"`
}

func (p ExtraTagPair) Empty() bool {
	return p.Branch == "" && p.PR == ""
}

// FlattenTagPairs produces the stored form: alternating branch and PR strings.
func FlattenTagPairs(pairs []ExtraTagPair) []string {
	flat := make([]string, 0, len(pairs)*2)
	for _, p := range pairs {
		flat = append(flat, p.Branch, p.PR)
	}
	return flat
}

// PairTagValues groups a flat stored list back into pairs. A trailing odd
// value gets an empty PR tag; fewer than two values hold no pair at all.
func PairTagValues(flat []string) []ExtraTagPair {
	if len(flat) < 2 {
		return nil
	}
	pairs := make([]ExtraTagPair, 0, (len(flat)+1)/2)
	for i := 0; i < len(flat); i += 2 {
		p := ExtraTagPair{Branch: flat[i]}
		if i+1 < len(flat) {
			p.PR = flat[i+1]
		}
		pairs = append(pairs, p)
	}
	return pairs
}

// FormatOptions are the two formatting toggles. AddSpaceBetween is global;
// KeepOriginalTags is stored per ticket.
type FormatOptions struct {
	AddSpaceBetween  bool `json:"add_space_between"`
	KeepOriginalTags bool `json:"keep_original_tags"`
}
