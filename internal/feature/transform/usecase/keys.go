package usecase

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"slices"
	"strings"

	"advisor_backend/internal/feature/transform/domain/entity"
)

// CacheKey identifies a request in the result cache.
func CacheKey(req *entity.Request) string {
	return hashPayload(keyPayload(req, true))
}

// SessionKey identifies a request for duplicate in-flight suppression.
func SessionKey(req *entity.Request) string {
	return hashPayload(keyPayload(req, false))
}

func keyPayload(req *entity.Request, withFetchType bool) map[string]any {
	action := req.Action
	if action == "" {
		action = entity.ActionStart
	}
	p := map[string]any{
		"company_name": strings.ToLower(strings.TrimSpace(req.CompanyName)),
		"company_url":  strings.ToLower(strings.TrimSpace(req.CompanyURL)),
		"action":       string(action),
	}
	if req.Prompt != "" {
		p["prompt_hash"] = md5Hex(req.Prompt)[:16]
	}
	if len(req.Files) > 0 {
		hashes := make([]string, len(req.Files))
		for i, f := range req.Files {
			hashes[i] = md5Hex(f)[:8]
		}
		slices.Sort(hashes)
		p["file_hashes"] = hashes
	}
	if action == entity.ActionSelect || (action == entity.ActionFetch && len(req.SelectedUseCaseIDs) > 0) {
		ids := slices.Clone(req.SelectedUseCaseIDs)
		if ids == nil {
			ids = []string{}
		}
		slices.Sort(ids)
		p["selected_use_case_ids"] = ids
	}
	if withFetchType && action == entity.ActionFetch {
		p["fetch_type"] = req.FetchType
	}
	return p
}

// hashPayload hashes the JSON encoding of p. encoding/json sorts map keys.
func hashPayload(p map[string]any) string {
	b, _ := json.Marshal(p)
	return md5Hex(string(b))
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
