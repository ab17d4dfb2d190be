package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category names that take part in the compatibility cascade.
const (
	CategoryEnvelope    = "ENVELOPE"
	CategoryBasket      = "BASKET"
	CategoryBurner      = "BURNER"
	CategoryBurnerFrame = "BURNER FRAME"
)

// EnvelopeRule lists the basket and burner names an envelope admits.
type EnvelopeRule struct {
	Baskets []string `json:"baskets"`
	Burners []string `json:"burners"`
}

// CompatibilityRules maps lower-cased vendor -> envelope name -> rule.
type CompatibilityRules map[string]map[string]EnvelopeRule

// ParseCompatibilityRules decodes the rules document and lower-cases vendor keys.
func ParseCompatibilityRules(data []byte) (CompatibilityRules, error) {
	var raw map[string]map[string]EnvelopeRule
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse compatibility rules: %w", err)
	}
	rules := make(CompatibilityRules, len(raw))
	for vendor, envelopes := range raw {
		rules[strings.ToLower(vendor)] = envelopes
	}
	return rules, nil
}

func (r CompatibilityRules) envelope(vendor Vendor, envelopeName string) (EnvelopeRule, bool) {
	envelopes, ok := r[vendor.Key()]
	if !ok {
		return EnvelopeRule{}, false
	}
	rule, ok := envelopes[envelopeName]
	return rule, ok
}

// CompatibleBaskets returns the basket names allowed with an envelope.
// An unknown vendor or envelope yields no baskets.
func (r CompatibilityRules) CompatibleBaskets(vendor Vendor, envelopeName string) []string {
	rule, _ := r.envelope(vendor, envelopeName)
	return rule.Baskets
}

// CompatibleBurners returns the burner names allowed with an envelope.
func (r CompatibilityRules) CompatibleBurners(vendor Vendor, envelopeName string) []string {
	rule, _ := r.envelope(vendor, envelopeName)
	return rule.Burners
}

// frameRequirement maps a keyword found in a burner name to the keyword a
// frame name must carry. Checked in order; first match wins.
type frameRequirement struct {
	burnerKeyword string
	frameKeyword  string
}

var frameRequirements = []frameRequirement{
	{burnerKeyword: "DOUBLE", frameKeyword: "DOUBLE"},
	{burnerKeyword: "TRIPLE", frameKeyword: "TRIPLE"},
	{burnerKeyword: "QUADRUPLE", frameKeyword: "QUADRUPLE"},
	{burnerKeyword: "QUAD", frameKeyword: "QUADRUPLE"},
}

// RequiredFrameType returns the frame keyword implied by a burner name, or
// "" when the name carries none of the known keywords.
func RequiredFrameType(burnerName string) string {
	upper := strings.ToUpper(burnerName)
	for _, req := range frameRequirements {
		if strings.Contains(upper, req.burnerKeyword) {
			return req.frameKeyword
		}
	}
	return ""
}
