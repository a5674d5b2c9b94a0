package models

import (
	"github.com/google/uuid"

	"keywordapi/internal/validation"
)

// Keyword status constants
const (
	KeywordStatusActive      = "active"
	KeywordStatusDeactivated = "deactivated"
)

// Keyword run status constants
const (
	RunStatusSuccess = "success"
	RunStatusError   = "error"
	RunStatusRunning = "running"
)

// Scan platform constants
const (
	ScanPlatformYoutube = "Youtube"
	ScanPlatformWebsite = "Website"
)

// Keyword is a search phrase attached to a Subniche or directly to a Niche.
type Keyword struct {
	ID                  uuid.UUID      `json:"id"`
	Prefix              *string        `json:"prefix"`
	MainKeyword         string         `json:"main_keyword"`
	Suffix              *string        `json:"suffix"`
	FullKeyword         string         `json:"full_keyword"`
	SubnicheID          *uuid.UUID     `json:"subniche_id"`
	NicheID             *uuid.UUID     `json:"niche_id"`
	ScanPlatform        string         `json:"scan_platform"`
	TotalLinksScanned   int            `json:"total_links_scanned"`
	TotalLinksNew       int            `json:"total_links_new"`
	TotalLinksDuplicate int            `json:"total_links_duplicate"`
	Status              string         `json:"status"`
	StatusRun           *string        `json:"status_run"`
	Favorite            bool           `json:"favorite"`
	SchedulerConfig     map[string]any `json:"scheduler_config"`
	Audit

	Lineage *Lineage `json:"-"`
}

// IsActive returns true if the keyword is enabled for scanning.
func (k *Keyword) IsActive() bool {
	return k.Status == KeywordStatusActive
}

// ParentID returns whichever parent the keyword is attached to.
func (k *Keyword) ParentID() uuid.UUID {
	if k.SubnicheID != nil {
		return *k.SubnicheID
	}
	if k.NicheID != nil {
		return *k.NicheID
	}
	return uuid.Nil
}

// KeywordCreate is the payload for creating a keyword.
type KeywordCreate struct {
	Prefix              *string        `json:"prefix"`
	MainKeyword         string         `json:"main_keyword"`
	Suffix              *string        `json:"suffix"`
	FullKeyword         string         `json:"full_keyword"`
	SubnicheID          *uuid.UUID     `json:"subniche_id"`
	NicheID             *uuid.UUID     `json:"niche_id"`
	ScanPlatform        string         `json:"scan_platform"`
	TotalLinksScanned   int            `json:"total_links_scanned"`
	TotalLinksNew       int            `json:"total_links_new"`
	TotalLinksDuplicate int            `json:"total_links_duplicate"`
	Status              string         `json:"status"`
	StatusRun           *string        `json:"status_run"`
	Favorite            bool           `json:"favorite"`
	SchedulerConfig     map[string]any `json:"scheduler_config"`
}

// Validate normalizes the payload, fills defaults and checks invariants.
// Exactly one of SubnicheID and NicheID must be set.
func (in *KeywordCreate) Validate() error {
	if err := validateParents(in.SubnicheID, in.NicheID); err != nil {
		return err
	}
	if in.SubnicheID == nil && in.NicheID == nil {
		return validation.Errorf("one of subniche_id or niche_id is required")
	}

	if err := validation.ValidateOptionalName("prefix", in.Prefix); err != nil {
		return err
	}
	if err := validation.ValidateOptionalName("suffix", in.Suffix); err != nil {
		return err
	}
	in.MainKeyword = validation.NormalizeName(in.MainKeyword)
	in.FullKeyword = validation.NormalizeName(in.FullKeyword)
	if in.MainKeyword == "" {
		in.MainKeyword = in.FullKeyword
	}
	if err := validation.ValidateName("main_keyword", in.MainKeyword); err != nil {
		return err
	}
	if in.FullKeyword == "" {
		in.FullKeyword = validation.ComposeKeyword(in.Prefix, in.MainKeyword, in.Suffix)
	}
	if err := validation.ValidateFullKeyword(in.FullKeyword); err != nil {
		return err
	}

	if in.ScanPlatform == "" {
		in.ScanPlatform = ScanPlatformWebsite
	}
	if in.Status == "" {
		in.Status = KeywordStatusActive
	}
	return validateKeywordFields(&in.ScanPlatform, &in.Status, in.StatusRun,
		&in.TotalLinksScanned, &in.TotalLinksNew, &in.TotalLinksDuplicate)
}

// KeywordUpdate is a partial update; nil fields are left unchanged.
// Setting one parent detaches the keyword from the other. An empty
// status_run clears the run status.
type KeywordUpdate struct {
	Prefix              *string         `json:"prefix"`
	MainKeyword         *string         `json:"main_keyword"`
	Suffix              *string         `json:"suffix"`
	FullKeyword         *string         `json:"full_keyword"`
	SubnicheID          *uuid.UUID      `json:"subniche_id"`
	NicheID             *uuid.UUID      `json:"niche_id"`
	ScanPlatform        *string         `json:"scan_platform"`
	TotalLinksScanned   *int            `json:"total_links_scanned"`
	TotalLinksNew       *int            `json:"total_links_new"`
	TotalLinksDuplicate *int            `json:"total_links_duplicate"`
	Status              *string         `json:"status"`
	StatusRun           *string         `json:"status_run"`
	Favorite            *bool           `json:"favorite"`
	SchedulerConfig     *map[string]any `json:"scheduler_config"`
}

// IsEmpty reports whether the update changes nothing.
func (in *KeywordUpdate) IsEmpty() bool {
	return in.Prefix == nil && in.MainKeyword == nil && in.Suffix == nil &&
		in.FullKeyword == nil && in.SubnicheID == nil && in.NicheID == nil &&
		in.ScanPlatform == nil && in.TotalLinksScanned == nil &&
		in.TotalLinksNew == nil && in.TotalLinksDuplicate == nil &&
		in.Status == nil && in.StatusRun == nil && in.Favorite == nil &&
		in.SchedulerConfig == nil
}

// Validate normalizes and checks the payload.
func (in *KeywordUpdate) Validate() error {
	if in.IsEmpty() {
		return validation.Errorf("no fields to update")
	}
	if err := validateParents(in.SubnicheID, in.NicheID); err != nil {
		return err
	}
	if in.SubnicheID != nil && *in.SubnicheID == uuid.Nil {
		return validation.Fieldf("subniche_id", "must not be empty")
	}
	if in.NicheID != nil && *in.NicheID == uuid.Nil {
		return validation.Fieldf("niche_id", "must not be empty")
	}
	if err := validation.ValidateOptionalName("prefix", in.Prefix); err != nil {
		return err
	}
	if err := validation.ValidateOptionalName("suffix", in.Suffix); err != nil {
		return err
	}
	if in.MainKeyword != nil {
		*in.MainKeyword = validation.NormalizeName(*in.MainKeyword)
		if err := validation.ValidateName("main_keyword", *in.MainKeyword); err != nil {
			return err
		}
	}
	if in.FullKeyword != nil {
		*in.FullKeyword = validation.NormalizeName(*in.FullKeyword)
		if err := validation.ValidateFullKeyword(*in.FullKeyword); err != nil {
			return err
		}
	}
	// An empty status_run clears it.
	statusRun := in.StatusRun
	if statusRun != nil && *statusRun == "" {
		statusRun = nil
	}
	return validateKeywordFields(in.ScanPlatform, in.Status, statusRun,
		in.TotalLinksScanned, in.TotalLinksNew, in.TotalLinksDuplicate)
}

// KeywordFilter narrows a keyword listing. Zero values are ignored.
type KeywordFilter struct {
	Status       string
	StatusRun    string
	ScanPlatform string
	Search       string // case-insensitive substring of full_keyword
	SubnicheID   *uuid.UUID
	NicheID      *uuid.UUID
	DomainID     *uuid.UUID
	Favorite     *bool
}

// Validate checks enumerated filter values.
func (f *KeywordFilter) Validate() error {
	if f.Status != "" {
		if err := validation.ValidateOneOf("status", f.Status, KeywordStatusActive, KeywordStatusDeactivated); err != nil {
			return err
		}
	}
	if f.StatusRun != "" {
		if err := validation.ValidateOneOf("status_run", f.StatusRun, RunStatusSuccess, RunStatusError, RunStatusRunning); err != nil {
			return err
		}
	}
	return nil
}

func validateParents(subnicheID, nicheID *uuid.UUID) error {
	if subnicheID != nil && nicheID != nil {
		return validation.Errorf("subniche_id and niche_id are mutually exclusive")
	}
	return nil
}

func validateKeywordFields(platform, status, statusRun *string, counters ...*int) error {
	if platform != nil {
		if err := validation.ValidateOneOf("scan_platform", *platform, ScanPlatformYoutube, ScanPlatformWebsite); err != nil {
			return err
		}
	}
	if status != nil {
		if err := validation.ValidateOneOf("status", *status, KeywordStatusActive, KeywordStatusDeactivated); err != nil {
			return err
		}
	}
	if statusRun != nil {
		if err := validation.ValidateOneOf("status_run", *statusRun, RunStatusSuccess, RunStatusError, RunStatusRunning); err != nil {
			return err
		}
	}
	fields := []string{"total_links_scanned", "total_links_new", "total_links_duplicate"}
	for i, c := range counters {
		if c == nil {
			continue
		}
		if err := validation.ValidateCounter(fields[i], *c); err != nil {
			return err
		}
	}
	return nil
}
