package handler

import (
	"github.com/Olocraft/propady/internal/chain"
	"github.com/Olocraft/propady/pkg/storage"
)

// Storage buckets used by the upload endpoints
const (
	propertiesBucket   = "properties"
	crowdfundingBucket = "crowdfunding"
)

var (
	storageClient *storage.Client
	verifier      *chain.Verifier
)

// Initialize wires the handlers' external collaborators. Called once from
// main before routes are registered; tests substitute their own.
func Initialize(sc *storage.Client, v *chain.Verifier) {
	storageClient = sc
	verifier = v
}
