package redis

const (
	// KeyPrefixService is the prefix for service documents
	KeyPrefixService = "statuspage:service:"
	// KeyServiceIndex is the sorted set of service IDs scored by creation time
	KeyServiceIndex = "statuspage:services:index"
)

// ServiceKey returns the Redis key for a service by ID
func ServiceKey(id string) string {
	return KeyPrefixService + id
}

// IndexKey returns the key of the service index
func IndexKey() string {
	return KeyServiceIndex
}
