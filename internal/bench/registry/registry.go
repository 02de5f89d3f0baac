// Package registry holds the catalogue of benchmark datasets.
package registry

import "github.com/DjordjeVuckovic/tabular-bench/internal/domain"

const remoteRoot = "https://autogluon.s3-us-west-2.amazonaws.com/datasets/"

// Default returns the historical benchmark datasets in run order.
func Default() []domain.DatasetDescriptor {
	return []domain.DatasetDescriptor{
		{
			Name:                "toyRegression",
			RemoteLocation:      remoteRoot + "toyRegression.zip",
			LabelColumn:         "y",
			ProblemType:         domain.Regression,
			BaselinePerformance: 0.183,
		},
		{
			Name:                "toyClassification",
			RemoteLocation:      remoteRoot + "toyClassification.zip",
			LabelColumn:         "y",
			ProblemType:         domain.Multiclass,
			BaselinePerformance: 0.436,
		},
		{
			Name:                "AdultIncomeBinaryClassification",
			RemoteLocation:      remoteRoot + "AdultIncomeBinaryClassification.zip",
			LabelColumn:         "class",
			ProblemType:         domain.Binary,
			BaselinePerformance: 0.129,
		},
		{
			Name:                "AmesHousingPriceRegression",
			RemoteLocation:      remoteRoot + "AmesHousingPriceRegression.zip",
			LabelColumn:         "SalePrice",
			ProblemType:         domain.Regression,
			BaselinePerformance: 0.076,
		},
		{
			Name:                "CoverTypeMulticlassClassification",
			RemoteLocation:      remoteRoot + "CoverTypeMulticlassClassification.zip",
			LabelColumn:         "Cover_Type",
			ProblemType:         domain.Multiclass,
			BaselinePerformance: 0.032,
		},
	}
}

// Find returns the descriptor with the given name.
func Find(datasets []domain.DatasetDescriptor, name string) (domain.DatasetDescriptor, bool) {
	for _, d := range datasets {
		if d.Name == name {
			return d, true
		}
	}
	return domain.DatasetDescriptor{}, false
}

// Baselines returns the baseline performance of every descriptor, in order.
func Baselines(datasets []domain.DatasetDescriptor) []float64 {
	out := make([]float64, len(datasets))
	for i, d := range datasets {
		out[i] = d.BaselinePerformance
	}
	return out
}
