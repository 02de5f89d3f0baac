package domain

// DatasetDescriptor describes one benchmark dataset. Descriptors are static
// configuration: they are built once and passed around by value.
type DatasetDescriptor struct {
	Name           string      `yaml:"name" json:"name" validate:"required,excludesall=/\\"`
	RemoteLocation string      `yaml:"url" json:"url" validate:"required,url"`
	LabelColumn    string      `yaml:"label_column" json:"label_column" validate:"required"`
	ProblemType    ProblemType `yaml:"problem_type" json:"problem_type" validate:"required,problem_type"`
	// BaselinePerformance is the previously recorded performance value
	// (lower is better, normalized to [0,1]).
	BaselinePerformance float64 `yaml:"performance_val" json:"performance_val" validate:"gte=0,lte=1"`
}
