// Package hooks contains the built-in feature catalog: guards that can
// block an action, validators that check post-conditions, and trackers
// that record data or inject context.
package hooks

import (
	"context"

	"github.com/klauern/hookline/internal/core"
)

// Feature categories
const (
	CategoryGuard     = "guard"
	CategoryValidator = "validator"
	CategoryTracker   = "tracker"
)

// Catalog returns lazy descriptors for every built-in feature in
// registration order. Loaders only construct objects; all real work
// waits until the pipeline invokes the handler.
func Catalog() []*core.LazyDescriptor {
	return []*core.LazyDescriptor{
		lazy(securityMeta, newSecurityModule),
		lazy(protectedFilesMeta, newProtectedFilesModule),
		lazy(protectedBranchesMeta, newProtectedBranchesModule),
		lazy(secretsMeta, newSecretsModule),
		lazy(checksMeta, newChecksModule),
		lazy(auditMeta, newAuditModule),
		lazy(sessionMeta, newSessionModule),
		lazy(webhookMeta, newWebhookModule),
	}
}

// RegisterBuiltins fills r with the built-in feature catalog.
func RegisterBuiltins(r *core.LazyRegistry) {
	for _, d := range Catalog() {
		r.Register(d)
	}
}

func lazy(meta core.FeatureMeta, build func() *core.FeatureModule) *core.LazyDescriptor {
	return &core.LazyDescriptor{
		Meta: meta,
		Load: func(context.Context) (*core.FeatureModule, error) {
			return build(), nil
		},
	}
}
