package domain

// NativeRecord is a record in a platform's own shape. Each platform package
// declares its concrete record types; a normalizer picks the conversion with a
// type switch on them.
type NativeRecord interface {
	Platform() Platform
	Entity() EntityType
	// NativeID is the platform identifier, empty for create payloads
	NativeID() string
}

// Patch is a partial update sent to a destination
type Patch map[string]interface{}
