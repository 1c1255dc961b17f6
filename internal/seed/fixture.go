package seed

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fullstack-nd/trivia-coffee-api/internal/domain"
)

//go:embed fixtures/*.yaml
var fixtureFS embed.FS

// DefaultFixture is the embedded fixture used when no file is given.
const DefaultFixture = "fixtures/trivia.yaml"

// Fixture is the YAML document of categories and questions to seed.
type Fixture struct {
	Categories []domain.Category `yaml:"categories"`
	Questions  []QuestionFixture `yaml:"questions"`
}

// QuestionFixture is one question in a fixture file.
type QuestionFixture struct {
	Question   string `yaml:"question"`
	Answer     string `yaml:"answer"`
	Category   int    `yaml:"category"`
	Difficulty int    `yaml:"difficulty"`
}

// Parse decodes a fixture and validates it. Unknown keys are rejected.
func Parse(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("fixture is empty")
		}
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile reads a fixture from path.
func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	return Parse(bytes.NewReader(data))
}

// LoadDefault reads the embedded fixture.
func LoadDefault() (*Fixture, error) {
	data, err := fixtureFS.ReadFile(DefaultFixture)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded fixture: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Validate checks that every category has a unique positive id and a type,
// and that every question is valid and references a listed category.
func (f *Fixture) Validate() error {
	ids := make(map[int]struct{}, len(f.Categories))
	for i, c := range f.Categories {
		if c.ID <= 0 {
			return domain.NewValidationError(fmt.Sprintf("categories[%d].id", i), "must be positive", nil)
		}
		if c.Type == "" {
			return domain.NewValidationError(fmt.Sprintf("categories[%d].type", i), "cannot be empty", nil)
		}
		if _, dup := ids[c.ID]; dup {
			return domain.NewValidationError(fmt.Sprintf("categories[%d].id", i), "is duplicated", nil)
		}
		ids[c.ID] = struct{}{}
	}

	for i, qf := range f.Questions {
		q := qf.toDomain()
		if err := q.Validate(); err != nil {
			return fmt.Errorf("questions[%d]: %w", i, err)
		}
		if _, ok := ids[q.Category]; !ok {
			return domain.NewValidationError(
				fmt.Sprintf("questions[%d].category", i),
				fmt.Sprintf("references unknown category %d", q.Category),
				nil,
			)
		}
	}
	return nil
}

func (qf QuestionFixture) toDomain() domain.Question {
	return domain.Question{
		Question:   qf.Question,
		Answer:     qf.Answer,
		Category:   qf.Category,
		Difficulty: qf.Difficulty,
	}
}
