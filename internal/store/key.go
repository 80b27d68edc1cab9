package store

// DefaultNamespace prefixes every preference key.
const DefaultNamespace = "dashboardLayout"

// Key derives the storage key of a user's layout record: <namespace>_<uid>.
func Key(namespace, uid string) string {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return namespace + "_" + uid
}
