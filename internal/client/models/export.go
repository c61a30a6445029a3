package models

import (
	"encoding/json"
	"fmt"

	"github.com/lumina-journal/lumina/internal/common"
)

// Export is the backup file format: the full document plus the display name
// of the user who produced it.
type Export struct {
	UserDocument
	CurrentUser string `json:"currentUser,omitempty"`
}

// MarshalExport serializes the document to an indented backup file.
func MarshalExport(d *UserDocument, currentUser string) ([]byte, error) {
	e := Export{UserDocument: *d, CurrentUser: currentUser}
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return data, nil
}

// MergeImport shallow-merges the top-level keys present in raw into dst. Any
// object containing a "logs" key is accepted; anything else is rejected with
// common.ErrValidation and dst is left untouched.
func MergeImport(dst *UserDocument, raw []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return fmt.Errorf("%w: not a JSON object", common.ErrValidation)
	}
	if _, ok := keys["logs"]; !ok {
		return fmt.Errorf("%w: missing logs key", common.ErrValidation)
	}

	var in Export
	if err := json.Unmarshal(raw, &in); err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	// Only keys present in the file override; absent keys keep the current
	// value, which is what a shallow merge of the original backup format did.
	if _, ok := keys["logs"]; ok {
		dst.Logs = in.Logs
	}
	if _, ok := keys["highlights"]; ok {
		dst.Highlights = in.Highlights
	}
	if _, ok := keys["categories"]; ok {
		dst.Categories = in.Categories
	}
	if _, ok := keys["expenditureCategories"]; ok {
		dst.ExpenditureCategories = in.ExpenditureCategories
	}
	if _, ok := keys["highlightCategories"]; ok {
		dst.HighlightCategories = in.HighlightCategories
	}
	if _, ok := keys["moods"]; ok {
		dst.Moods = in.Moods
	}
	if _, ok := keys["preferences"]; ok {
		dst.Preferences = in.Preferences
	}
	if _, ok := keys["displayName"]; ok {
		dst.DisplayName = in.DisplayName
	}
	dst.Normalize()
	return nil
}
