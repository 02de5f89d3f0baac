// Package hyperparams holds the default neural-network hyperparameter tables
// handed to the AutoML engine for each problem type.
package hyperparams

import "github.com/DjordjeVuckovic/tabular-bench/internal/domain"

// Fixed parameters: not eligible for hyperparameter search.
const (
	NumEpochs             = "num_epochs"
	NumDataloadingWorkers = "num_dataloading_workers"
	Ctx                   = "ctx"
	SeedValue             = "seed_value"
	EmbedMinCategories    = "proc.embed_min_categories"
	ImputeStrategy        = "proc.impute_strategy"
	MaxCategoryLevels     = "proc.max_category_levels"
	SkewThreshold         = "proc.skew_threshold"
)

// Tunable parameters: architecture and training knobs.
const (
	NetworkType         = "network_type"
	Layers              = "layers"
	NumericEmbedDim     = "numeric_embed_dim"
	Activation          = "activation"
	MaxLayerWidth       = "max_layer_width"
	EmbeddingSizeFactor = "embedding_size_factor"
	EmbedExponent       = "embed_exponent"
	MaxEmbeddingDim     = "max_embedding_dim"
	YRange              = "y_range"
	YRangeExtend        = "y_range_extend"
	UseBatchnorm        = "use_batchnorm"
	DropoutProb         = "dropout_prob"
	BatchSize           = "batch_size"
	LossFunction        = "loss_function"
	Optimizer           = "optimizer"
	LearningRate        = "learning_rate"
	WeightDecay         = "weight_decay"
	ClipGradient        = "clip_gradient"
	Momentum            = "momentum"
	EpochsWoImprove     = "epochs_wo_improve"
)

// Fixed returns the parameters that cannot be searched during HPO.
// The Ctx entry is probed from the live hardware on every call.
func Fixed() Table {
	return Table{
		NumEpochs:             300,
		NumDataloadingWorkers: 1, // overwritten by threads per trial
		Ctx:                   DetectDevice(),
		SeedValue:             nil, // nil disables seeding
		EmbedMinCategories:    4,
		ImputeStrategy:        "median",
		MaxCategoryLevels:     500,
		SkewThreshold:         0.99,
	}
}

// Tunable returns the parameters that can be tuned during HPO.
func Tunable() Table {
	return Table{
		NetworkType:         "widedeep",
		Layers:              nil, // scaled from training size and problem type
		NumericEmbedDim:     nil,
		Activation:          "relu",
		MaxLayerWidth:       2056,
		EmbeddingSizeFactor: 1.0,
		EmbedExponent:       0.56,
		MaxEmbeddingDim:     100,
		YRange:              nil, // must stay nil for classification
		YRangeExtend:        0.05,
		UseBatchnorm:        true,
		DropoutProb:         0.1,
		BatchSize:           512,
		LossFunction:        nil,
		Optimizer:           "adam",
		LearningRate:        3e-4,
		WeightDecay:         1e-6,
		ClipGradient:        100.0,
		Momentum:            0.9, // sgd only
		EpochsWoImprove:     20,
	}
}

func FixedKeys() []string   { return Fixed().Keys() }
func TunableKeys() []string { return Tunable().Keys() }

// Resolve returns the default table for a problem type with the overrides
// applied in order. An unrecognized problem type gets the binary table.
// numClasses only matters for multiclass problems.
func Resolve(problemType domain.ProblemType, numClasses int, overrides ...Table) Table {
	var t Table
	switch problemType {
	case domain.Binary:
		t = binaryParams()
	case domain.Multiclass:
		t = multiclassParams(numClasses)
	case domain.Regression:
		t = regressionParams()
	default:
		t = binaryParams()
	}

	for _, o := range overrides {
		t = t.Merge(o)
	}
	return t
}

func binaryParams() Table {
	return Fixed().Union(Tunable())
}

func multiclassParams(_ int) Table {
	return Fixed().Union(Tunable())
}

func regressionParams() Table {
	return Fixed().Union(Tunable())
}
