package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/cargo-easydep/internal/domain/entities"
	"github.com/rios0rios0/cargo-easydep/internal/domain/services"
)

func TestFeatureReconciler_Reconcile(t *testing.T) {
	t.Parallel()

	t.Run("should copy each member's original features verbatim", func(t *testing.T) {
		t.Parallel()

		// given
		withDerive := record("a", "serde", entities.KindNormal, "1.0", 0)
		withDerive.Features = []string{"derive"}
		optedOut := record("b", "serde", entities.KindNormal, "1.0.2", 1)
		optedOut.DefaultFeatures = false

		decisions := []entities.PromotionDecision{{
			Key:          entities.GroupKey{Name: "serde", Kind: entities.KindNormal},
			Source:       entities.RegistrySource("1.0"),
			Contributors: []entities.DependencyRecord{withDerive, optedOut},
		}}

		// when
		rewrites := services.NewFeatureReconciler().Reconcile(decisions)

		// then
		require.Len(t, rewrites, 2)
		assert.Equal(t, []string{"derive"}, rewrites[0].Override.Features)
		assert.True(t, rewrites[0].Override.DefaultFeatures)
		assert.Empty(t, rewrites[1].Override.Features)
		assert.False(t, rewrites[1].Override.DefaultFeatures)
	})

	t.Run("should make the implicit default-features explicit", func(t *testing.T) {
		t.Parallel()

		// given - no explicit features, default-features unspecified (implicit true)
		implicit := record("a", "serde", entities.KindNormal, "1.0", 0)
		plain := record("b", "serde", entities.KindNormal, "1.0", 1)

		decisions := []entities.PromotionDecision{{
			Key:          entities.GroupKey{Name: "serde", Kind: entities.KindNormal},
			Source:       entities.RegistrySource("1.0"),
			Contributors: []entities.DependencyRecord{implicit, plain},
		}}

		// when
		rewrites := services.NewFeatureReconciler().Reconcile(decisions)

		// then - the workspace entry forces false, so true must be written out
		require.Len(t, rewrites, 2)
		for _, rewrite := range rewrites {
			assert.True(t, rewrite.Override.DefaultFeatures)
		}
	})

	t.Run("should preserve the effective feature pair for every member", func(t *testing.T) {
		t.Parallel()

		// given
		records := []entities.DependencyRecord{
			func() entities.DependencyRecord {
				r := record("a", "serde", entities.KindNormal, "1.0", 0)
				r.Features = []string{"derive", "rc"}
				return r
			}(),
			func() entities.DependencyRecord {
				r := record("b", "serde", entities.KindNormal, "1.0", 1)
				r.DefaultFeatures = false
				r.Features = []string{"alloc"}
				return r
			}(),
		}
		decisions := []entities.PromotionDecision{{
			Key:          entities.GroupKey{Name: "serde", Kind: entities.KindNormal},
			Source:       entities.RegistrySource("1.0"),
			Contributors: records,
		}}

		// when
		rewrites := services.NewFeatureReconciler().Reconcile(decisions)

		// then - override (features, default_features) equals the original pair
		require.Len(t, rewrites, len(records))
		for i, rewrite := range rewrites {
			assert.Equal(t, records[i].Features, rewrite.Override.Features)
			assert.Equal(t, records[i].DefaultFeatures, rewrite.Override.DefaultFeatures)
		}
	})

	t.Run("should never union feature sets across members", func(t *testing.T) {
		t.Parallel()

		// given
		a := record("a", "serde", entities.KindNormal, "1.0", 0)
		a.Features = []string{"derive"}
		b := record("b", "serde", entities.KindNormal, "1.0", 1)
		b.Features = []string{"rc"}

		decisions := []entities.PromotionDecision{{
			Key:          entities.GroupKey{Name: "serde", Kind: entities.KindNormal},
			Source:       entities.RegistrySource("1.0"),
			Contributors: []entities.DependencyRecord{a, b},
		}}

		// when
		rewrites := services.NewFeatureReconciler().Reconcile(decisions)

		// then
		require.Len(t, rewrites, 2)
		assert.Equal(t, []string{"derive"}, rewrites[0].Override.Features)
		assert.Equal(t, []string{"rc"}, rewrites[1].Override.Features)
	})
}
