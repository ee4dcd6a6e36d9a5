package services

import (
	"stridehub/config"
	"stridehub/matching"
)

var (
	cfg              *config.Config
	catalog          *matching.Catalog
	assignmentPolicy matching.Policy
)

// Init wires the loaded configuration and the tag catalog into the service
// layer. Must be called before any service function.
func Init(c *config.Config) {
	cfg = c
	catalog = matching.DefaultCatalog()
	assignmentPolicy = matching.ParsePolicy(c.Assignment.Policy)
}

// Catalog returns the shared tag and activity catalog.
func Catalog() *matching.Catalog {
	return catalog
}
