package models

// BrandMapping is one record from the external brand reference table:
// the canonical brand name and its owner attributes.
type BrandMapping struct {
	Brand        string
	FBManager    string
	BrandManager string
	Team         string
}

const NotAssigned = "Not Assigned"

// BrandMatch is the outcome of matching an account's brand name against
// the reference table. The zero-value semantics are intentionally NOT used:
// call UnknownBrandMatch for the no-match case.
type BrandMatch struct {
	// MatchedBrand is the canonical reference name, empty when unmatched.
	MatchedBrand string
	FBManager    string
	BrandManager string
	Team         string
}

const UnknownOwner = "Unknown"

// UnknownBrandMatch is the explicit identity used when no reference record
// matches.
func UnknownBrandMatch() BrandMatch {
	return BrandMatch{
		FBManager:    UnknownOwner,
		BrandManager: UnknownOwner,
		Team:         UnknownOwner,
	}
}

// MatchFromMapping lifts a reference record into a match result, filling
// owner attributes that are absent in the table.
func MatchFromMapping(mapping BrandMapping) BrandMatch {
	match := BrandMatch{
		MatchedBrand: mapping.Brand,
		FBManager:    mapping.FBManager,
		BrandManager: mapping.BrandManager,
		Team:         mapping.Team,
	}
	if match.FBManager == "" {
		match.FBManager = NotAssigned
	}
	if match.BrandManager == "" {
		match.BrandManager = NotAssigned
	}
	if match.Team == "" {
		match.Team = NotAssigned
	}
	return match
}
