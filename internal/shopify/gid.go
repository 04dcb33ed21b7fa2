package shopify

import (
	"fmt"
	"strconv"
	"strings"
)

const gidPrefix = "gid://shopify/"

// GID builds a global id such as gid://shopify/Product/123
func GID(kind, id string) string {
	if id == "" || strings.HasPrefix(id, gidPrefix) {
		return id
	}
	return gidPrefix + kind + "/" + id
}

// IsGID reports whether id is a global id of the given kind
func IsGID(id, kind string) bool {
	return strings.HasPrefix(id, gidPrefix+kind+"/")
}

// ExtractIDFromGID returns the numeric tail of a global id
func ExtractIDFromGID(gid string) (int64, error) {
	// GID format: "gid://shopify/DraftOrder/123456"
	parts := strings.Split(gid, "/")
	if len(parts) < 4 {
		return 0, fmt.Errorf("invalid GID format: %s", gid)
	}

	// Some ids carry a query suffix, e.g. ?inventory_item_id=1
	tail, _, _ := strings.Cut(parts[len(parts)-1], "?")
	id, err := strconv.ParseInt(tail, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse ID from GID: %w", err)
	}

	return id, nil
}
