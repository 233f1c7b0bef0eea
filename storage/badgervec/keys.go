package badgervec

// Key prefixes. Vectors and metadata live under separate prefixes so that
// id enumeration and metadata reads never touch vector payloads.
const (
	vectorPrefix   = "vec:"
	metadataPrefix = "meta:"
)

// makeVectorKey generates the key holding the embedding for an id.
func makeVectorKey(id string) []byte {
	return []byte(vectorPrefix + id)
}

// makeMetadataKey generates the key holding the metadata map for an id.
func makeMetadataKey(id string) []byte {
	return []byte(metadataPrefix + id)
}

// idFromVectorKey recovers the record id from a vector key.
func idFromVectorKey(key []byte) string {
	return string(key[len(vectorPrefix):])
}

// idFromMetadataKey recovers the record id from a metadata key.
func idFromMetadataKey(key []byte) string {
	return string(key[len(metadataPrefix):])
}
