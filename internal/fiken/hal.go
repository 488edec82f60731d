package fiken

// relPrefix is the namespace Fiken uses for embedded collections and link
// relations. It stays fixed at the production value regardless of which
// base URL the client talks to, because it is an identifier inside
// response bodies, not a request target.
const relPrefix = "https://fiken.no/api/v1/rel/"

// AttachmentsRel is the key under which a purchase or sale lists its
// attachments after flattening.
const AttachmentsRel = relPrefix + "attachments"

// flatten converts one HAL object into a plain map: _links is dropped and
// nested objects are inlined so their values appear as if they belonged to
// the parent. Arrays (such as purchase lines) are kept as-is.
func flatten(obj map[string]any) map[string]any {
	out := make(map[string]any, len(obj))
	for key, value := range obj {
		if key == "_links" {
			continue
		}
		if nested, ok := value.(map[string]any); ok {
			for nk, nv := range flatten(nested) {
				out[nk] = nv
			}
			continue
		}
		out[key] = value
	}
	return out
}

// embedded extracts the embedded collection for the given rel name from a
// HAL response. A response without the collection is an empty result, not
// an error.
func embedded(body map[string]any, rel string) []map[string]any {
	emb, ok := body["_embedded"].(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := emb[relPrefix+rel].([]any)
	if !ok {
		return nil
	}
	items := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		if m, ok := entry.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items
}
