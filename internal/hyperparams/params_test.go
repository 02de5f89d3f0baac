package hyperparams

import (
	"testing"

	"github.com/DjordjeVuckovic/tabular-bench/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pinGPUs(t *testing.T, n int) {
	t.Helper()
	prev := GPUCount
	GPUCount = func() int { return n }
	t.Cleanup(func() { GPUCount = prev })
}

var allProblemTypes = []domain.ProblemType{domain.Binary, domain.Multiclass, domain.Regression}

func TestResolve_FixedAndTunableAreDisjoint(t *testing.T) {
	fixed := Fixed()
	for _, k := range TunableKeys() {
		assert.False(t, fixed.Has(k), "key %q is both fixed and tunable", k)
	}
}

func TestResolve_KeysAreUnionOfFixedAndTunable(t *testing.T) {
	want := append(FixedKeys(), TunableKeys()...)

	for _, pt := range allProblemTypes {
		t.Run(string(pt), func(t *testing.T) {
			got := Resolve(pt, 7)
			assert.ElementsMatch(t, want, got.Keys())
			assert.Len(t, got, len(Fixed())+len(Tunable()))
		})
	}
}

func TestResolve_Idempotent(t *testing.T) {
	pinGPUs(t, 0)

	for _, pt := range allProblemTypes {
		t.Run(string(pt), func(t *testing.T) {
			assert.Equal(t, Resolve(pt, 4), Resolve(pt, 4))
		})
	}
}

func TestResolve_UnknownProblemTypeFallsBackToBinary(t *testing.T) {
	pinGPUs(t, 0)

	for _, pt := range []domain.ProblemType{"", "quantile", "BINARY"} {
		t.Run(string(pt), func(t *testing.T) {
			var got Table
			require.NotPanics(t, func() { got = Resolve(pt, 0) })
			assert.Equal(t, Resolve(domain.Binary, 0), got)
		})
	}
}

func TestResolve_Defaults(t *testing.T) {
	pinGPUs(t, 0)
	p := Resolve(domain.Regression, 0)

	assert.Equal(t, 300, p[NumEpochs])
	assert.Equal(t, CPU, p[Ctx])
	assert.Nil(t, p[SeedValue])
	assert.Equal(t, "median", p[ImputeStrategy])
	assert.Equal(t, "widedeep", p[NetworkType])
	assert.Equal(t, 512, p[BatchSize])
	assert.Equal(t, "adam", p[Optimizer])
	assert.InDelta(t, 3e-4, p[LearningRate], 1e-12)
	assert.Equal(t, 20, p[EpochsWoImprove])
	assert.True(t, p.Has(YRange))
	assert.Nil(t, p[YRange])
}

func TestResolve_DeviceFollowsHardware(t *testing.T) {
	pinGPUs(t, 2)
	assert.Equal(t, GPU, Resolve(domain.Binary, 0)[Ctx])

	pinGPUs(t, 0)
	assert.Equal(t, CPU, Resolve(domain.Binary, 0)[Ctx])
}

func TestResolve_OverridesWin(t *testing.T) {
	pinGPUs(t, 1)

	got := Resolve(domain.Multiclass, 3,
		Table{NumEpochs: 3, Ctx: CPU},
		Table{NumEpochs: 5, "extra": "x"},
	)

	assert.Equal(t, 5, got[NumEpochs])
	assert.Equal(t, CPU, got[Ctx])
	assert.Equal(t, "x", got["extra"])
	assert.Equal(t, 512, got[BatchSize])
}

func TestResolve_OverrideDoesNotLeakIntoNextCall(t *testing.T) {
	_ = Resolve(domain.Binary, 0, Table{BatchSize: 32})
	assert.Equal(t, 512, Resolve(domain.Binary, 0)[BatchSize])
}

func TestTable_Merge(t *testing.T) {
	base := Table{"a": 1, "b": 2}
	override := Table{"b": 3, "c": 4}

	got := base.Merge(override)

	assert.Equal(t, Table{"a": 1, "b": 3, "c": 4}, got)
	assert.Equal(t, Table{"a": 1, "b": 2}, base)
	assert.Equal(t, Table{"b": 3, "c": 4}, override)
}

func TestTable_MergeNil(t *testing.T) {
	base := Table{"a": 1}
	assert.Equal(t, base, base.Merge(nil))
	assert.Equal(t, Table{"a": 1}, Table(nil).Merge(base))
}

func TestTable_UnionPanicsOnSharedKey(t *testing.T) {
	assert.Panics(t, func() { Table{"a": 1}.Union(Table{"a": 2}) })
	assert.Equal(t, Table{"a": 1, "b": 2}, Table{"a": 1}.Union(Table{"b": 2}))
}

func TestTable_Keys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Table{"c": 0, "a": 0, "b": 0}.Keys())
}

func TestVisibleGPUs_CudaVisibleDevices(t *testing.T) {
	t.Setenv("CUDA_VISIBLE_DEVICES", "0,1")
	assert.Equal(t, 2, visibleGPUs())

	t.Setenv("CUDA_VISIBLE_DEVICES", "-1")
	assert.Equal(t, 0, visibleGPUs())

	t.Setenv("CUDA_VISIBLE_DEVICES", "")
	assert.Equal(t, 0, visibleGPUs())
}
