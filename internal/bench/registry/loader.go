package registry

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/DjordjeVuckovic/tabular-bench/internal/apperr"
	"github.com/DjordjeVuckovic/tabular-bench/internal/domain"
)

// File is the YAML shape of an alternative registry.
type File struct {
	Datasets []domain.DatasetDescriptor `yaml:"datasets" validate:"required,min=1,dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("problem_type", validateProblemType)
}

func validateProblemType(fl validator.FieldLevel) bool {
	return domain.ProblemType(fl.Field().String()).Valid()
}

// LoadFromFile reads a YAML registry. {{NAME}} placeholders are filled from
// the environment before parsing, e.g. a dataset mirror base URL.
func LoadFromFile(path string) ([]domain.DatasetDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry file: %w", err)
	}
	rendered, err := Render(string(data), envLookup)
	if err != nil {
		return nil, apperr.NewValidationWrap("render registry file", err)
	}
	return Parse([]byte(rendered))
}

func Parse(data []byte) ([]domain.DatasetDescriptor, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse registry YAML: %w", err)
	}
	if err := Validate(f.Datasets); err != nil {
		return nil, err
	}
	return f.Datasets, nil
}

// Validate checks every descriptor and rejects duplicate names.
func Validate(datasets []domain.DatasetDescriptor) error {
	if len(datasets) == 0 {
		return apperr.NewValidation("registry has no datasets")
	}
	seen := make(map[string]struct{}, len(datasets))
	for i, d := range datasets {
		if err := validate.Struct(d); err != nil {
			return apperr.NewValidationWrap(fmt.Sprintf("dataset at index %d is invalid", i), err)
		}
		if _, dup := seen[d.Name]; dup {
			return apperr.NewValidation(fmt.Sprintf("duplicate dataset name %q", d.Name))
		}
		seen[d.Name] = struct{}{}
	}
	return nil
}
