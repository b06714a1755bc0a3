package domain

// KeyPrefix namespaces every key skipool writes to the store.
const KeyPrefix = "skipool:"
