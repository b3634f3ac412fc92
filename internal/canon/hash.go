package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
const (
	DomainScenario = "acceptance/scenario/v1"
	DomainCatalog  = "acceptance/catalog/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ScenarioID fingerprints a scenario by its label, unexpanded argument vector
// and expected outcome class. Expected artifact content is part of the
// fingerprint when present.
func ScenarioID(label string, args []string, expect string, want string) (string, error) {
	obj := map[string]any{
		"label":  label,
		"args":   args,
		"expect": expect,
	}
	if want != "" {
		obj["want"] = want
	}
	data, err := Marshal(obj)
	if err != nil {
		return "", fmt.Errorf("ScenarioID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainScenario, data), nil
}

// CatalogDigest fingerprints an ordered list of scenario IDs.
func CatalogDigest(scenarioIDs []string) (string, error) {
	data, err := Marshal(scenarioIDs)
	if err != nil {
		return "", fmt.Errorf("CatalogDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainCatalog, data), nil
}
